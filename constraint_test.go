package sprig

import (
	"errors"
	"testing"
)

var display800 = Size{Width: 800, Height: 600}

// --- per-axis anchoring ---

func TestStartAnchorsLeftEdge(t *testing.T) {
	bbox := Rect{X: 20, Y: 10, Width: 100, Height: 50}
	m, pl, err := Constraint{X: Start(0), Y: Start(0)}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	// Start edge of the bbox lands on the device start edge.
	assertPoint(t, "m", m, 20, 10, -1, -1)
	// One unit per pixel.
	assertPoint(t, "m", m, 120, 60, -1+200.0/800, -1+100.0/600)
	if pl.Rect != (Rect{X: 0, Y: 0, Width: 100, Height: 50}) {
		t.Errorf("placement = %v", pl.Rect)
	}
}

func TestStartOffset(t *testing.T) {
	bbox := Rect{Width: 100, Height: 50}
	m, pl, err := Constraint{X: Start(40), Y: Start(30)}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertPoint(t, "m", m, 0, 0, -1+80.0/800, -1+60.0/600)
	assertNear(t, "placement x", pl.Rect.X, 40)
	assertNear(t, "placement y", pl.Rect.Y, 30)
}

func TestEndAnchorsRightEdge(t *testing.T) {
	bbox := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	m, pl, err := Constraint{X: End(0), Y: End(0)}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertPoint(t, "m", m, 100, 50, 1, 1)
	assertPoint(t, "m", m, 0, 0, 1-200.0/800, 1-100.0/600)
	if pl.Rect != (Rect{X: 700, Y: 550, Width: 100, Height: 50}) {
		t.Errorf("placement = %v", pl.Rect)
	}
}

func TestEndOffsetMovesInward(t *testing.T) {
	bbox := Rect{Width: 100, Height: 50}
	m, _, err := Constraint{X: End(12), Y: Start(0)}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	// Right edge sits 12 px left of the viewport edge.
	assertPoint(t, "m", m, 100, 0, 1-24.0/800, -1)
}

func TestCenterAnchorsMiddle(t *testing.T) {
	bbox := Rect{X: 10, Y: 10, Width: 100, Height: 40}
	m, pl, err := Constraint{X: Center(0), Y: Center(-20)}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertPoint(t, "m", m, 60, 30, 0, -40.0/600)
	assertNear(t, "placement x", pl.Rect.X, 350)
	assertNear(t, "placement y", pl.Rect.Y, 260)
}

func TestScaleFillsParent(t *testing.T) {
	bbox := Rect{Width: 200, Height: 150}
	m, pl, err := Constraint{X: ScaleFill(), Y: ScaleFill()}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "fill x", pl.ScaleX, 4)
	assertNear(t, "fill y", pl.ScaleY, 4)
	assertPoint(t, "m", m, 0, 0, -1, -1)
	assertPoint(t, "m", m, 100, 75, 0, 0)
	assertPoint(t, "m", m, 200, 150, 1, 1)
}

func TestScaleIsPerAxis(t *testing.T) {
	bbox := Rect{Width: 100, Height: 100}
	_, pl, err := Constraint{X: ScaleFill(), Y: ScaleFill()}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "fill x", pl.ScaleX, 8)
	assertNear(t, "fill y", pl.ScaleY, 6)
}

func TestStartAndEndStretches(t *testing.T) {
	bbox := Rect{Width: 100, Height: 100}
	m, pl, err := Constraint{X: StartAndEnd(10, 10), Y: StartAndEnd(0, 0)}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "fill x", pl.ScaleX, 7.8)
	assertNear(t, "fill y", pl.ScaleY, 6)
	assertPoint(t, "m", m, 0, 0, -1+20.0/800, -1)
	assertPoint(t, "m", m, 100, 100, 1-20.0/800, 1)
}

func TestZeroConstraintIsFullBleed(t *testing.T) {
	bbox := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	m, _, err := Constraint{}.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertPoint(t, "m", m, 5, 5, -1, -1)
	assertPoint(t, "m", m, 15, 15, 1, 1)
}

// --- nesting ---

func TestNestedPlacementUsesParentUnits(t *testing.T) {
	parentBBox := Rect{Width: 400, Height: 300}
	_, parent, err := Constraint{X: ScaleFill(), Y: ScaleFill()}.ToMat4(parentBBox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}

	child := Rect{X: 50, Y: 60, Width: 20, Height: 10}
	m, pl, err := Constraint{X: Start(10), Y: End(5)}.ToMat4(child, parent, display800)
	if err != nil {
		t.Fatal(err)
	}
	// 10 parent units at 2 px/unit from the left edge.
	assertPoint(t, "m", m, 50, 60, -1+2*20.0/800, 1-2*(10+20.0)/600)
	assertNear(t, "placement x", pl.Rect.X, 20)
	assertNear(t, "placement w", pl.Rect.Width, 40)
	assertNear(t, "placement y", pl.Rect.Y, 570)
}

// --- degenerate geometry ---

func TestDegenerateGeometry(t *testing.T) {
	tests := []struct {
		name    string
		c       Constraint
		bbox    Rect
		display Size
	}{
		{"zero width bbox", Constraint{X: Start(0), Y: Start(0)}, Rect{Width: 0, Height: 10}, display800},
		{"zero height bbox", Constraint{X: Start(0), Y: Start(0)}, Rect{Width: 10, Height: 0}, display800},
		{"zero display", Constraint{X: Start(0), Y: Start(0)}, Rect{Width: 10, Height: 10}, Size{}},
		{"offsets overlap", Constraint{X: StartAndEnd(400, 400)}, Rect{Width: 10, Height: 10}, display800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.c.ToMat4(tt.bbox, RootPlacement(tt.display), tt.display)
			if !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("err = %v, want ErrDegenerateGeometry", err)
			}
		})
	}
}

func TestUnknownAxisKind(t *testing.T) {
	ac := AxisConstraint{Kind: AxisKind(42)}
	_, err := ac.ResolveAxis(0, 0, 10, RootPlacement(display800), 800)
	if !errors.Is(err, ErrUnknownConstraintAxis) {
		t.Errorf("err = %v, want ErrUnknownConstraintAxis", err)
	}
}

// --- resize ---

func TestResizeRescalesFill(t *testing.T) {
	c := Constraint{X: ScaleFill(), Y: ScaleFill()}
	bbox := Rect{Width: 800, Height: 600}

	big := Size{Width: 1600, Height: 1200}
	_, pl, err := c.ToMat4(bbox, RootPlacement(big), big)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "fill at 1600", pl.ScaleX, 2)

	_, pl, err = c.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "fill at 800", pl.ScaleX, 1)
}

func TestToMat4Idempotent(t *testing.T) {
	c := Constraint{X: End(3), Y: Center(7)}
	bbox := Rect{X: 1, Y: 2, Width: 30, Height: 40}
	a, pa, err := c.ToMat4(bbox, RootPlacement(display800), display800)
	if err != nil {
		t.Fatal(err)
	}
	b, pb, _ := c.ToMat4(bbox, RootPlacement(display800), display800)
	if a != b || pa != pb {
		t.Errorf("ToMat4 not deterministic: %v/%v vs %v/%v", a, pa, b, pb)
	}
}

func TestDeviceFromPixels(t *testing.T) {
	m := DeviceFromPixels(display800)
	assertPoint(t, "m", m, 0, 0, -1, -1)
	assertPoint(t, "m", m, 400, 300, 0, 0)
	assertPoint(t, "m", m, 800, 600, 1, 1)
}

func TestAxisKindString(t *testing.T) {
	if got := AxisEnd.String(); got != "end" {
		t.Errorf("String = %q", got)
	}
	if got := AxisKind(9).String(); got != "AxisKind(9)" {
		t.Errorf("String = %q", got)
	}
}
