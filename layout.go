package sprig

import (
	"errors"
	"fmt"
)

// Layout is a registered element with a constraint. Everything except the
// resolved matrix, placement and local transform is immutable after
// registration.
type Layout struct {
	ID         string
	Constraint Constraint
	BBox       Rect
	// ParentID is the id of the enclosing layout, empty for root-parented
	// layouts (including those whose declared parent was missing).
	ParentID string

	// ancestors holds layout indices from the outermost ancestor to this
	// layout (inclusive).
	ancestors []int
	slot      int

	matrix    Mat4
	placement Placement
	local     Mat4
	resolved  bool
}

// Slot returns the layout's index in the uploaded matrix array.
func (l *Layout) Slot() int {
	return l.slot
}

// Resolved reports whether the layout produced a matrix in the last
// resolution. Layouts with degenerate geometry are skipped.
func (l *Layout) Resolved() bool {
	return l.resolved
}

// Matrix returns the resolved device-space matrix (without the local
// transform).
func (l *Layout) Matrix() Mat4 {
	return l.matrix
}

// Placement returns the resolved pixel-space placement.
func (l *Layout) Placement() Placement {
	return l.placement
}

// Local returns the element-local transform applied after the resolved
// matrix (identity unless animated).
func (l *Layout) Local() Mat4 {
	return l.local
}

// Depth returns the number of layouts in the ancestor chain, this one
// included.
func (l *Layout) Depth() int {
	return len(l.ancestors)
}

// LayoutMachine owns every Layout and Clickable, resolves them against the
// current viewport, and exposes the matrix array for upload. Slot 0 of the
// array is the root content transform; layout i uses slot i+1.
type LayoutMachine struct {
	layouts    []Layout
	index      map[string]int
	clickables []Clickable
	// slots maps every visited node id to the slot of its nearest
	// enclosing layout.
	slots map[string]int

	rootConstraint Constraint
	rootBBox       Rect

	display  Size
	camera   Mat4
	matrices Tracked[[]Mat4]
	dirty    bool
}

// NewLayoutMachine creates an empty registry. root is the constraint of
// slot 0, applied to the bbox of the tree passed to Load.
func NewLayoutMachine(root Constraint) *LayoutMachine {
	return &LayoutMachine{
		index:          make(map[string]int),
		slots:          make(map[string]int),
		rootConstraint: root,
		camera:         Identity(),
		matrices:       NewTracked([]Mat4{{}}),
		dirty:          true,
	}
}

// Load registers every annotated node of the tree in one depth-first
// traversal. Layout and clickable registration follow traversal order, so
// an ancestor is always registered before its descendants.
func (m *LayoutMachine) Load(root Node) error {
	m.rootBBox = root.BBox()
	if err := m.visit(root, -1); err != nil {
		return err
	}
	m.dirty = true
	Logger().Info("layouts loaded", "layouts", len(m.layouts), "clickables", len(m.clickables))
	return nil
}

func (m *LayoutMachine) visit(n Node, enclosing int) error {
	tags, err := ParseTags(n.ID())
	if err != nil {
		return err
	}

	owner := enclosing
	if tags.Layout != nil && tags.Name != "" {
		parentID := ""
		if enclosing >= 0 {
			parentID = m.layouts[enclosing].ID
		}
		idx, err := m.addLayout(tags.Name, *tags.Layout, n.BBox(), parentID)
		if err != nil {
			return err
		}
		owner = idx
	}

	if tags.Name != "" {
		m.slots[tags.Name] = owner + 1
		if tags.Clickable {
			if owner != enclosing {
				m.clickables = append(m.clickables, Clickable{ID: tags.Name, Source: LayoutRef(tags.Name)})
			} else {
				ownerID := ""
				if enclosing >= 0 {
					ownerID = m.layouts[enclosing].ID
				}
				m.clickables = append(m.clickables, Clickable{ID: tags.Name, Source: BBoxOf(n.BBox(), ownerID)})
			}
		}
	}

	for _, child := range n.Children() {
		if err := m.visit(child, owner); err != nil {
			return err
		}
	}
	return nil
}

// AddLayout registers a layout programmatically. An empty parentID makes
// the layout root-parented. An unknown parentID is logged and treated the
// same way.
func (m *LayoutMachine) AddLayout(id string, c Constraint, bbox Rect, parentID string) error {
	if _, err := m.addLayout(id, c, bbox, parentID); err != nil {
		return err
	}
	m.dirty = true
	return nil
}

func (m *LayoutMachine) addLayout(id string, c Constraint, bbox Rect, parentID string) (int, error) {
	if _, ok := m.index[id]; ok {
		return 0, &LayoutError{ID: id, Err: ErrDuplicateLayout}
	}

	var ancestors []int
	if parentID != "" {
		pi, ok := m.index[parentID]
		if ok {
			ancestors = append(ancestors, m.layouts[pi].ancestors...)
		} else {
			Logger().Warn("parent layout not registered, using viewport",
				"id", id, "parent", parentID, "err", ErrMissingParentLayout)
			parentID = ""
		}
	}

	idx := len(m.layouts)
	ancestors = append(ancestors, idx)
	m.layouts = append(m.layouts, Layout{
		ID:         id,
		Constraint: c,
		BBox:       bbox,
		ParentID:   parentID,
		ancestors:  ancestors,
		slot:       idx + 1,
		local:      Identity(),
	})
	m.index[id] = idx
	m.slots[id] = idx + 1
	return idx, nil
}

// AddClickable registers a clickable programmatically. Registration order is
// the hit-test tie-break.
func (m *LayoutMachine) AddClickable(c Clickable) {
	m.clickables = append(m.clickables, c)
}

// Layout returns the layout registered under id.
func (m *LayoutMachine) Layout(id string) (*Layout, bool) {
	i, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return &m.layouts[i], true
}

// Layouts returns the registered layouts in registration order. The returned
// slice MUST NOT be mutated.
func (m *LayoutMachine) Layouts() []Layout {
	return m.layouts
}

// Clickables returns the registered clickables in registration order.
func (m *LayoutMachine) Clickables() []Clickable {
	return m.clickables
}

// TransformID returns the matrix slot used by the node with the given
// element id: its own slot when it is a layout, otherwise the slot of its
// nearest enclosing layout (0 for the root).
func (m *LayoutMachine) TransformID(id string) (int, bool) {
	s, ok := m.slots[id]
	return s, ok
}

// Display returns the current viewport size.
func (m *LayoutMachine) Display() Size {
	return m.display
}

// Resize sets the viewport size and recomputes every matrix.
func (m *LayoutMachine) Resize(w, h float64) {
	m.display = Size{Width: w, Height: h}
	m.dirty = true
	m.Resolve()
	Logger().Info("viewport resized", "width", w, "height", h)
}

// SetCamera sets the global (pan/zoom) transform applied before every
// element matrix. It only affects hit testing; the renderer composes the
// camera itself.
func (m *LayoutMachine) SetCamera(c Mat4) {
	m.camera = c
}

// Camera returns the current global transform.
func (m *LayoutMachine) Camera() Mat4 {
	return m.camera
}

// Dirty reports whether matrices are stale.
func (m *LayoutMachine) Dirty() bool {
	return m.dirty
}

// Resolve recomputes every matrix if the registry changed since the last
// resolution. Layouts with degenerate geometry are skipped: their slot
// holds a zero matrix and they are not hit-testable until the next
// successful resolution.
func (m *LayoutMachine) Resolve() {
	if !m.dirty {
		return
	}
	m.dirty = false

	mats := m.matrices.GetMut()
	if cap(*mats) >= len(m.layouts)+1 {
		*mats = (*mats)[:len(m.layouts)+1]
	} else {
		*mats = make([]Mat4, len(m.layouts)+1)
	}

	if !m.display.Valid() {
		clear(*mats)
		for i := range m.layouts {
			m.layouts[i].resolved = false
		}
		return
	}

	root, _, err := m.rootConstraint.ToMat4(m.rootBBox, RootPlacement(m.display), m.display)
	if err != nil {
		// An empty document has no bbox; fall back to one unit per pixel.
		root = DeviceFromPixels(m.display)
	}
	(*mats)[0] = root

	for i := range m.layouts {
		l := &m.layouts[i]
		mat, pl, err := m.fold(l)
		if err != nil {
			Logger().Warn("skipping layout", "id", l.ID, "err", err)
			l.resolved = false
			l.matrix = Mat4{}
			l.placement = Placement{}
			(*mats)[l.slot] = Mat4{}
			continue
		}
		l.resolved = true
		l.matrix = mat
		l.placement = pl
		(*mats)[l.slot] = mat.Mul(l.local)
	}
}

// fold resolves a layout by folding its ancestor chain from the outermost
// ancestor inward, each step using the previous placement as its parent.
func (m *LayoutMachine) fold(l *Layout) (Mat4, Placement, error) {
	parent := RootPlacement(m.display)
	var mat Mat4
	for _, ai := range l.ancestors {
		a := &m.layouts[ai]
		var err error
		mat, parent, err = a.Constraint.ToMat4(a.BBox, parent, m.display)
		if err != nil {
			if ai != l.ancestors[len(l.ancestors)-1] {
				return Mat4{}, Placement{}, fmt.Errorf("ancestor %q: %w", a.ID, err)
			}
			return Mat4{}, Placement{}, err
		}
	}
	return mat, parent, nil
}

// SetLocal sets the element-local transform of a layout and updates its
// uploaded matrix. The version is only bumped when the value changes.
func (m *LayoutMachine) SetLocal(id string, local Mat4) error {
	i, ok := m.index[id]
	if !ok {
		return &LayoutError{ID: id, Err: ErrUnknownLayout}
	}
	l := &m.layouts[i]
	if l.local == local {
		return nil
	}
	l.local = local
	if l.resolved && !m.dirty {
		mats := m.matrices.GetMut()
		(*mats)[l.slot] = l.matrix.Mul(local)
	}
	return nil
}

// Matrices returns the matrix array for upload, indexed by transform slot.
// The returned slice MUST NOT be mutated.
func (m *LayoutMachine) Matrices() []Mat4 {
	return m.matrices.Get()
}

// Version returns the change counter of the matrix array.
func (m *LayoutMachine) Version() uint64 {
	return m.matrices.Version()
}

// Matrix returns the uploaded matrix (resolved times local) of layout id.
func (m *LayoutMachine) Matrix(id string) (Mat4, bool) {
	l, ok := m.Layout(id)
	if !ok {
		return Mat4{}, false
	}
	return m.SlotMatrix(l.slot)
}

// SlotMatrix returns the uploaded matrix of a slot.
func (m *LayoutMachine) SlotMatrix(slot int) (Mat4, bool) {
	mats := m.matrices.Get()
	if slot < 0 || slot >= len(mats) {
		return Mat4{}, false
	}
	return mats[slot], true
}

// HandleEvent applies a normalized input event. Resize events recompute
// every matrix. Press events (mouse down or touch start) are hit tested and
// return the first registered clickable under the pointer.
func (m *LayoutMachine) HandleEvent(ev Event) (string, bool) {
	switch ev.Type {
	case EventResize:
		m.Resize(ev.Width, ev.Height)
	case EventPointerDown:
		m.Resolve()
		return m.ClickDetection(Vec2{X: ev.X, Y: ev.Y}, m.display)
	case EventTouch:
		if ev.Phase == TouchStarted {
			m.Resolve()
			return m.ClickDetection(Vec2{X: ev.X, Y: ev.Y}, m.display)
		}
	}
	return "", false
}

// errNotResolved is returned by hitMatrix for clickables whose layout was
// skipped.
var errNotResolved = errors.New("layout not resolved")
