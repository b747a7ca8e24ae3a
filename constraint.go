package sprig

import (
	"fmt"
	"strconv"
)

// AxisKind selects how an element is anchored on one axis.
type AxisKind uint8

const (
	AxisStartAndEnd AxisKind = iota // stretch between both parent edges (zero value: full bleed)
	AxisStart                       // anchor to the parent's start edge (left/top)
	AxisEnd                         // anchor to the parent's end edge (right/bottom)
	AxisCenter                      // anchor to the parent's center
	AxisScale                       // fill the parent extent on this axis
)

// String returns the descriptor name of the kind.
func (k AxisKind) String() string {
	switch k {
	case AxisStartAndEnd:
		return "start_and_end"
	case AxisStart:
		return "start"
	case AxisEnd:
		return "end"
	case AxisCenter:
		return "center"
	case AxisScale:
		return "scale"
	default:
		return fmt.Sprintf("AxisKind(%d)", uint8(k))
	}
}

// AxisConstraint is the anchoring rule for one axis. Offsets are in
// parent-local units. For End the offset is measured inward from the end
// edge; for Center it points toward the end direction. EndOffset is only
// used by AxisStartAndEnd.
type AxisConstraint struct {
	Kind      AxisKind
	Offset    float32
	EndOffset float32
}

// Start anchors the element's start edge offset units after the parent's start edge.
func Start(offset float32) AxisConstraint {
	return AxisConstraint{Kind: AxisStart, Offset: offset}
}

// End anchors the element's end edge offset units before the parent's end edge.
func End(offset float32) AxisConstraint {
	return AxisConstraint{Kind: AxisEnd, Offset: offset}
}

// Center anchors the element's center offset units past the parent's center.
func Center(offset float32) AxisConstraint {
	return AxisConstraint{Kind: AxisCenter, Offset: offset}
}

// ScaleFill scales the element so it fills the parent extent on the axis.
func ScaleFill() AxisConstraint {
	return AxisConstraint{Kind: AxisScale}
}

// StartAndEnd stretches the element between the parent's start edge plus
// start and the parent's end edge minus end.
func StartAndEnd(start, end float32) AxisConstraint {
	return AxisConstraint{Kind: AxisStartAndEnd, Offset: start, EndOffset: end}
}

// String returns the axis in layout descriptor syntax.
func (a AxisConstraint) String() string {
	switch a.Kind {
	case AxisScale:
		return "'scale'"
	case AxisStartAndEnd:
		if a.Offset == 0 && a.EndOffset == 0 {
			return "'stretch'"
		}
		return "{start=" + formatOffset(a.Offset) + ", end=" + formatOffset(a.EndOffset) + "}"
	case AxisStart, AxisEnd, AxisCenter:
		if a.Offset == 0 {
			return "'" + a.Kind.String() + "'"
		}
		return "{" + a.Kind.String() + "=" + formatOffset(a.Offset) + "}"
	}
	return a.Kind.String()
}

func formatOffset(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Constraint pairs the X and Y anchoring rules of an element. The zero
// value stretches the element over its whole parent on both axes.
type Constraint struct {
	X, Y AxisConstraint
}

// String returns the constraint as a layout descriptor record accepted by
// ParseConstraint.
func (c Constraint) String() string {
	return "{x=" + c.X.String() + ", y=" + c.Y.String() + "}"
}

// Placement is a resolved element in pixel space: its rectangle on screen
// and the number of pixels one SVG unit covers on each axis. A placement
// is the parent of the next step when an ancestor chain is folded.
type Placement struct {
	Rect           Rect
	ScaleX, ScaleY float32
}

// RootPlacement is the placement of the full display, the base case for
// every ancestor chain.
func RootPlacement(display Size) Placement {
	return Placement{
		Rect:   Rect{Width: float32(display.Width), Height: float32(display.Height)},
		ScaleX: 1,
		ScaleY: 1,
	}
}

// span is the one-axis projection of a placement.
type span struct {
	start, extent, unit float32
}

func (p Placement) axis(axis int) span {
	if axis == 0 {
		return span{start: p.Rect.X, extent: p.Rect.Width, unit: p.ScaleX}
	}
	return span{start: p.Rect.Y, extent: p.Rect.Height, unit: p.ScaleY}
}

// AxisResolution is the result of resolving one axis: a pre-transform in
// pixel space, a post-transform correcting for the -1..1 device range, the
// pixels-per-unit fill factor and the resolved pixel span.
type AxisResolution struct {
	Pre, Post Mat4
	Fill      float32
	Start     float32
	Extent    float32
}

// ResolveAxis resolves a single axis (0 = x, 1 = y). own0 and ownExt are the
// element's bbox origin and extent in SVG units, display is the viewport
// extent in pixels on the same axis.
func (a AxisConstraint) ResolveAxis(axis int, own0, ownExt float32, parent Placement, display float32) (AxisResolution, error) {
	if !(ownExt > minExtent) || !(display > minExtent) {
		return AxisResolution{}, ErrDegenerateGeometry
	}
	p := parent.axis(axis)

	var r AxisResolution
	switch a.Kind {
	case AxisStart:
		anchor := p.start + a.Offset*p.unit
		r.Fill = p.unit
		r.Pre = axisTranslate(axis, anchor).Mul(axisScale(axis, r.Fill)).Mul(axisTranslate(axis, -own0))
		r.Post = axisTranslate(axis, -1)
		r.Start = anchor

	case AxisEnd:
		anchor := p.start + p.extent - a.Offset*p.unit
		r.Fill = p.unit
		r.Pre = axisTranslate(axis, anchor-display).Mul(axisScale(axis, r.Fill)).Mul(axisTranslate(axis, -(own0 + ownExt)))
		r.Post = axisTranslate(axis, 1)
		r.Start = anchor - r.Fill*ownExt

	case AxisCenter:
		anchor := p.start + p.extent/2 + a.Offset*p.unit
		r.Fill = p.unit
		r.Pre = axisTranslate(axis, anchor-display/2).Mul(axisScale(axis, r.Fill)).Mul(axisTranslate(axis, -(own0 + ownExt/2)))
		r.Post = Identity()
		r.Start = anchor - r.Fill*ownExt/2

	case AxisScale:
		anchor := p.start + p.extent/2
		r.Fill = p.extent / ownExt
		if !(r.Fill > 0) {
			return AxisResolution{}, ErrDegenerateGeometry
		}
		r.Pre = axisTranslate(axis, anchor-display/2).Mul(axisScale(axis, r.Fill)).Mul(axisTranslate(axis, -(own0 + ownExt/2)))
		r.Post = Identity()
		r.Start = anchor - r.Fill*ownExt/2

	case AxisStartAndEnd:
		avail := p.extent - (a.Offset+a.EndOffset)*p.unit
		if !(avail > minExtent) {
			return AxisResolution{}, ErrDegenerateGeometry
		}
		anchor := p.start + a.Offset*p.unit
		r.Fill = avail / ownExt
		r.Pre = axisTranslate(axis, anchor).Mul(axisScale(axis, r.Fill)).Mul(axisTranslate(axis, -own0))
		r.Post = axisTranslate(axis, -1)
		r.Start = anchor

	default:
		return AxisResolution{}, fmt.Errorf("%w: %v", ErrUnknownConstraintAxis, a.Kind)
	}
	r.Extent = r.Fill * ownExt
	return r, nil
}

// NormalizeScale maps viewport pixels to a 0..2 range on both axes. The
// per-axis post-transforms shift the result into the -1..1 device range.
func NormalizeScale(display Size) Mat4 {
	return Scale(float32(2/display.Width), float32(2/display.Height), 1)
}

// DeviceFromPixels maps viewport pixels directly to device space.
func DeviceFromPixels(display Size) Mat4 {
	return Translate(-1, -1, 0).Mul(NormalizeScale(display))
}

// ToMat4 compiles the constraint for an element with the given bbox (SVG
// units) inside parent (pixels) on a display of the given size. It returns
// the device-space matrix
//
//	post_x * post_y * NormalizeScale(display) * pre_x * pre_y
//
// together with the element's resolved placement.
func (c Constraint) ToMat4(bbox Rect, parent Placement, display Size) (Mat4, Placement, error) {
	if !display.Valid() {
		return Mat4{}, Placement{}, ErrDegenerateGeometry
	}
	if err := bbox.Validate(); err != nil {
		return Mat4{}, Placement{}, err
	}
	rx, err := c.X.ResolveAxis(0, bbox.X, bbox.Width, parent, float32(display.Width))
	if err != nil {
		return Mat4{}, Placement{}, err
	}
	ry, err := c.Y.ResolveAxis(1, bbox.Y, bbox.Height, parent, float32(display.Height))
	if err != nil {
		return Mat4{}, Placement{}, err
	}

	m := rx.Post.Mul(ry.Post).Mul(NormalizeScale(display)).Mul(rx.Pre).Mul(ry.Pre)
	pl := Placement{
		Rect:   Rect{X: rx.Start, Y: ry.Start, Width: rx.Extent, Height: ry.Extent},
		ScaleX: rx.Fill,
		ScaleY: ry.Fill,
	}
	return m, pl, nil
}
