package sprig

import (
	"errors"
	"testing"
)

// testNode is a minimal Node used to build annotated trees in tests.
type testNode struct {
	id       string
	bbox     Rect
	children []Node
}

func (n *testNode) ID() string       { return n.id }
func (n *testNode) BBox() Rect       { return n.bbox }
func (n *testNode) Children() []Node { return n.children }

func node(id string, bbox Rect, children ...Node) *testNode {
	return &testNode{id: id, bbox: bbox, children: children}
}

// boardTree is a small document: a scaled board with a clickable cell, a
// HUD anchored to the right edge and a loose clickable at the root.
func boardTree() Node {
	return node("root", Rect{Width: 800, Height: 600},
		node("board#layout{x='scale', y='scale'}", Rect{Width: 400, Height: 300},
			node("cell#clickable", Rect{X: 10, Y: 10, Width: 40, Height: 40}),
		),
		node("hud#clickable#layout{x='end', y='start'}", Rect{Width: 100, Height: 50},
			node("score", Rect{X: 10, Y: 10, Width: 80, Height: 20}),
		),
		node("loose#clickable", Rect{X: 600, Y: 500, Width: 100, Height: 50}),
	)
}

func loadedMachine(t *testing.T) *LayoutMachine {
	t.Helper()
	m := NewLayoutMachine(Constraint{X: Start(0), Y: Start(0)})
	if err := m.Load(boardTree()); err != nil {
		t.Fatal(err)
	}
	m.Resize(800, 600)
	return m
}

// --- registration ---

func TestLoadRegistersInTraversalOrder(t *testing.T) {
	m := loadedMachine(t)
	layouts := m.Layouts()
	if len(layouts) != 2 || layouts[0].ID != "board" || layouts[1].ID != "hud" {
		t.Fatalf("layouts = %+v", layouts)
	}
	if layouts[0].Slot() != 1 || layouts[1].Slot() != 2 {
		t.Errorf("slots = %d, %d", layouts[0].Slot(), layouts[1].Slot())
	}

	clicks := m.Clickables()
	ids := make([]string, len(clicks))
	for i, c := range clicks {
		ids[i] = c.ID
	}
	if len(ids) != 3 || ids[0] != "cell" || ids[1] != "hud" || ids[2] != "loose" {
		t.Errorf("clickables = %v", ids)
	}
	if clicks[0].Source.Kind != SourceBBox || clicks[0].Source.Layout != "board" {
		t.Errorf("cell source = %+v", clicks[0].Source)
	}
	if clicks[1].Source.Kind != SourceLayout {
		t.Errorf("hud source = %+v", clicks[1].Source)
	}
	if clicks[2].Source.Layout != "" {
		t.Errorf("loose source layout = %q, want root", clicks[2].Source.Layout)
	}
}

func TestTransformID(t *testing.T) {
	m := loadedMachine(t)
	tests := []struct {
		id   string
		want int
	}{
		{"root", 0},
		{"board", 1},
		{"cell", 1},
		{"hud", 2},
		{"score", 2},
		{"loose", 0},
	}
	for _, tt := range tests {
		got, ok := m.TransformID(tt.id)
		if !ok || got != tt.want {
			t.Errorf("TransformID(%q) = %d, %v; want %d", tt.id, got, ok, tt.want)
		}
	}
	if _, ok := m.TransformID("nope"); ok {
		t.Error("TransformID(nope) ok = true")
	}
}

func TestNestedLayoutParent(t *testing.T) {
	tree := node("root", Rect{Width: 800, Height: 600},
		node("board#layout{x='scale', y='scale'}", Rect{Width: 400, Height: 300},
			node("token#layout{x={start=10}, y={start=10}}", Rect{X: 50, Y: 50, Width: 20, Height: 20}),
		),
	)
	m := NewLayoutMachine(Constraint{})
	if err := m.Load(tree); err != nil {
		t.Fatal(err)
	}
	m.Resize(800, 600)

	token, ok := m.Layout("token")
	if !ok {
		t.Fatal("token not registered")
	}
	if token.ParentID != "board" || token.Depth() != 2 {
		t.Errorf("token parent = %q depth = %d", token.ParentID, token.Depth())
	}
	// Board is 2 px/unit, so the token starts 20 px from the left.
	pl := token.Placement()
	assertNear(t, "token x", pl.Rect.X, 20)
	assertNear(t, "token w", pl.Rect.Width, 40)
	assertPoint(t, "token", token.Matrix(), 50, 50, -1+40.0/800, -1+40.0/600)
}

func TestAddLayoutMissingParentFallsBackToViewport(t *testing.T) {
	m := NewLayoutMachine(Constraint{})
	err := m.AddLayout("orphan", Constraint{X: Start(0), Y: Start(0)}, Rect{Width: 10, Height: 10}, "ghost")
	if err != nil {
		t.Fatal(err)
	}
	m.Resize(800, 600)
	l, _ := m.Layout("orphan")
	if l.ParentID != "" {
		t.Errorf("ParentID = %q, want root", l.ParentID)
	}
	if !l.Resolved() {
		t.Fatal("orphan not resolved")
	}
	assertPoint(t, "orphan", l.Matrix(), 0, 0, -1, -1)
}

func TestAddLayoutDuplicate(t *testing.T) {
	m := NewLayoutMachine(Constraint{})
	bbox := Rect{Width: 10, Height: 10}
	if err := m.AddLayout("a", Constraint{}, bbox, ""); err != nil {
		t.Fatal(err)
	}
	err := m.AddLayout("a", Constraint{}, bbox, "")
	if !errors.Is(err, ErrDuplicateLayout) {
		t.Errorf("err = %v, want ErrDuplicateLayout", err)
	}
}

func TestLoadRejectsBadDescriptor(t *testing.T) {
	tree := node("root", Rect{Width: 10, Height: 10},
		node("bad#layout{x='diagonal'}", Rect{Width: 10, Height: 10}),
	)
	err := NewLayoutMachine(Constraint{}).Load(tree)
	var le *LayoutError
	if !errors.As(err, &le) || le.ID != "bad" || !errors.Is(err, ErrUnknownConstraintAxis) {
		t.Errorf("err = %v", err)
	}
}

// --- resolution ---

func TestResolveSkipsDegenerateLayout(t *testing.T) {
	tree := node("root", Rect{Width: 800, Height: 600},
		node("flat#layout{x='start', y='start'}", Rect{Width: 0, Height: 10}),
		node("ok#layout{x='end', y='end'}", Rect{Width: 10, Height: 10}),
	)
	m := NewLayoutMachine(Constraint{})
	if err := m.Load(tree); err != nil {
		t.Fatal(err)
	}
	m.Resize(800, 600)

	flat, _ := m.Layout("flat")
	if flat.Resolved() {
		t.Error("flat resolved")
	}
	if mat, _ := m.SlotMatrix(flat.Slot()); !mat.IsZero() {
		t.Errorf("flat slot = %v, want zero", mat)
	}
	ok, _ := m.Layout("ok")
	if !ok.Resolved() {
		t.Error("ok not resolved")
	}
	assertPoint(t, "ok", ok.Matrix(), 10, 10, 1, 1)
}

func TestResolveWithoutViewport(t *testing.T) {
	m := NewLayoutMachine(Constraint{})
	if err := m.Load(boardTree()); err != nil {
		t.Fatal(err)
	}
	m.Resolve()
	for _, mat := range m.Matrices() {
		if !mat.IsZero() {
			t.Errorf("matrix before resize = %v, want zero", mat)
		}
	}
}

func TestRootSlotMatrix(t *testing.T) {
	m := loadedMachine(t)
	root, ok := m.SlotMatrix(0)
	if !ok {
		t.Fatal("no root slot")
	}
	assertMat4(t, "root", root, DeviceFromPixels(Size{Width: 800, Height: 600}))
	if _, ok := m.SlotMatrix(99); ok {
		t.Error("SlotMatrix(99) ok = true")
	}
}

func TestResizeRecomputes(t *testing.T) {
	m := loadedMachine(t)
	board, _ := m.Layout("board")
	assertNear(t, "fill at 800", board.Placement().ScaleX, 2)

	v := m.Version()
	m.Resize(1600, 1200)
	if m.Version() == v {
		t.Error("Resize did not bump the version")
	}
	assertNear(t, "fill at 1600", board.Placement().ScaleX, 4)
}

func TestResolveIsIdempotent(t *testing.T) {
	m := loadedMachine(t)
	v := m.Version()
	m.Resolve()
	m.Resolve()
	if m.Version() != v {
		t.Errorf("Resolve on a clean registry bumped the version %d -> %d", v, m.Version())
	}
}

func TestResizeSameSizeIsBitIdentical(t *testing.T) {
	m := loadedMachine(t)
	before := append([]Mat4(nil), m.Matrices()...)

	m.Resize(800, 600)
	after := m.Matrices()
	if len(after) != len(before) {
		t.Fatalf("slots = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("slot %d changed on re-resolution:\n got %v\nwant %v", i, after[i], before[i])
		}
	}
}

// --- local transforms ---

func TestSetLocal(t *testing.T) {
	m := loadedMachine(t)
	hud, _ := m.Layout("hud")

	v := m.Version()
	if err := m.SetLocal("hud", Identity()); err != nil {
		t.Fatal(err)
	}
	if m.Version() != v {
		t.Error("SetLocal with an unchanged value bumped the version")
	}

	local := Translate(-50, 0, 0)
	if err := m.SetLocal("hud", local); err != nil {
		t.Fatal(err)
	}
	if m.Version() == v {
		t.Error("SetLocal did not bump the version")
	}
	got, _ := m.SlotMatrix(hud.Slot())
	assertMat4(t, "hud slot", got, hud.Matrix().Mul(local))
	byID, ok := m.Matrix("hud")
	if !ok {
		t.Fatal("Matrix(hud) not found")
	}
	assertMat4(t, "hud by id", byID, got)
	if _, ok := m.Matrix("score"); ok {
		t.Error("Matrix found a non-layout element")
	}

	if err := m.SetLocal("score", local); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("SetLocal(score) = %v, want ErrUnknownLayout", err)
	}
}

func TestHandleEventResize(t *testing.T) {
	m := loadedMachine(t)
	if _, ok := m.HandleEvent(ResizeEvent(400, 300)); ok {
		t.Error("resize reported a click")
	}
	if d := m.Display(); d.Width != 400 || d.Height != 300 {
		t.Errorf("Display = %v", d)
	}
}
