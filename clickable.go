package sprig

// SourceKind selects where a Clickable takes its bounding matrix from.
type SourceKind uint8

const (
	SourceBBox   SourceKind = iota // a raw bbox matrix carried by the enclosing layout
	SourceLayout                   // the current resolution of a registered layout
)

// BBoxSource is the bounding-matrix source of a Clickable.
type BBoxSource struct {
	Kind SourceKind
	// Matrix is the bbox matrix in SVG units (SourceBBox only).
	Matrix Mat4
	// Layout is the referenced layout (SourceLayout) or the enclosing
	// layout whose transform carries Matrix (SourceBBox, empty for the root
	// slot).
	Layout string
}

// BBoxOf returns a SourceBBox for a raw bbox drawn inside the given layout
// (empty for root content).
func BBoxOf(r Rect, layout string) BBoxSource {
	return BBoxSource{Kind: SourceBBox, Matrix: r.Matrix(), Layout: layout}
}

// LayoutRef returns a SourceLayout referencing the layout registered as id.
func LayoutRef(id string) BBoxSource {
	return BBoxSource{Kind: SourceLayout, Layout: id}
}

// Clickable is a hit-testable element.
type Clickable struct {
	ID     string
	Source BBoxSource
}

// hitMatrix returns the matrix mapping the clickable's canonical
// [-1, 1] square into device space (before the camera).
func (m *LayoutMachine) hitMatrix(c Clickable) (Mat4, error) {
	switch c.Source.Kind {
	case SourceLayout:
		l, ok := m.Layout(c.Source.Layout)
		if !ok {
			return Mat4{}, &LayoutError{ID: c.Source.Layout, Err: ErrUnknownLayout}
		}
		if !l.resolved {
			return Mat4{}, errNotResolved
		}
		return l.matrix.Mul(l.local).Mul(l.BBox.Matrix()), nil

	default:
		slot := 0
		if c.Source.Layout != "" {
			l, ok := m.Layout(c.Source.Layout)
			if !ok {
				return Mat4{}, &LayoutError{ID: c.Source.Layout, Err: ErrUnknownLayout}
			}
			if !l.resolved {
				return Mat4{}, errNotResolved
			}
			slot = l.slot
		}
		base, ok := m.SlotMatrix(slot)
		if !ok {
			return Mat4{}, errNotResolved
		}
		return base.Mul(c.Source.Matrix), nil
	}
}

// PixelToDevice converts a viewport pixel position to device coordinates.
func PixelToDevice(pos Vec2, display Size) (float32, float32) {
	return DeviceFromPixels(display).TransformPoint(float32(pos.X), float32(pos.Y))
}

// ClickDetection returns the first registered clickable containing the
// pointer position (viewport pixels). Clickables whose matrix cannot be
// inverted are skipped.
func (m *LayoutMachine) ClickDetection(pos Vec2, display Size) (string, bool) {
	if !display.Valid() {
		return "", false
	}
	dx, dy, ok := m.cameraLocal(pos, display)
	if !ok {
		return "", false
	}
	for _, c := range m.clickables {
		if m.contains(c, dx, dy) {
			return c.ID, true
		}
	}
	return "", false
}

// HitTest reports whether the pointer position lies inside the clickable
// registered as id.
func (m *LayoutMachine) HitTest(id string, pos Vec2, display Size) bool {
	if !display.Valid() {
		return false
	}
	dx, dy, ok := m.cameraLocal(pos, display)
	if !ok {
		return false
	}
	for _, c := range m.clickables {
		if c.ID == id {
			return m.contains(c, dx, dy)
		}
	}
	return false
}

// cameraLocal converts pixels to device space and removes the camera.
func (m *LayoutMachine) cameraLocal(pos Vec2, display Size) (float32, float32, bool) {
	dx, dy := PixelToDevice(pos, display)
	inv, ok := m.camera.Invert()
	if !ok {
		Logger().Debug("camera transform not invertible")
		return 0, 0, false
	}
	dx, dy = inv.TransformPoint(dx, dy)
	return dx, dy, true
}

func (m *LayoutMachine) contains(c Clickable, dx, dy float32) bool {
	hm, err := m.hitMatrix(c)
	if err != nil {
		Logger().Debug("skipping clickable", "id", c.ID, "err", err)
		return false
	}
	inv, ok := hm.Invert()
	if !ok {
		Logger().Debug("skipping clickable", "id", c.ID, "err", ErrDegenerateGeometry)
		return false
	}
	lx, ly := inv.TransformPoint(dx, dy)
	return abs32(lx) < 1 && abs32(ly) < 1
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
