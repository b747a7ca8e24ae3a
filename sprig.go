package sprig

// Vec2 is a 2D vector used for pointer positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Size is a viewport size in pixels.
type Size struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// minExtent is the smallest width or height an element may have before it
// is treated as degenerate.
const minExtent = 1e-6

// Rect is an axis-aligned rectangle in SVG user units (or pixels, for
// resolved placements). The origin is the top-left corner, Y grows downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Union returns the smallest rectangle containing both r and o. An empty
// rectangle (zero width and height at the origin) is treated as absent.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Validate returns ErrDegenerateGeometry when either extent is zero, negative
// or too small to invert.
func (r Rect) Validate() error {
	if !(r.Width > minExtent) || !(r.Height > minExtent) {
		return ErrDegenerateGeometry
	}
	return nil
}

// Matrix returns the scale-rotation-translation matrix that maps the
// canonical square [-1, 1]x[-1, 1] onto the rectangle. Scale is half the
// size, translation is the center, rotation is the identity.
func (r Rect) Matrix() Mat4 {
	cx, cy := r.Center()
	return Translate(cx, cy, 0).Mul(Scale(r.Width/2, r.Height/2, 1))
}

// Node is a single element of the SVG tree as seen by the layout registry.
// IDs carry the annotation tags parsed by ParseTags. BBox is expressed in
// root SVG user units with every ancestor transform already applied.
type Node interface {
	ID() string
	BBox() Rect
	Children() []Node
}

// EventType identifies a kind of normalized input event.
type EventType uint8

const (
	EventResize      EventType = iota // viewport resized to Width x Height
	EventPointerMove                  // pointer moved to (X, Y)
	EventPointerDown                  // primary button pressed at (X, Y)
	EventPointerUp                    // primary button released at (X, Y)
	EventWheel                        // wheel or pixel-delta scroll (DX, DY)
	EventTouch                        // touch TouchID changed Phase at (X, Y)
)

// TouchPhase is the lifecycle stage of a single touch.
type TouchPhase uint8

const (
	TouchStarted   TouchPhase = iota // finger placed
	TouchMoved                       // finger moved
	TouchEnded                       // finger lifted
	TouchCancelled                   // touch aborted by the platform
)

// Event is a normalized input event. A single flat struct is used for every
// event type; fields that do not apply to a type are zero.
type Event struct {
	Type EventType

	// Pointer and touch position in viewport pixels.
	X, Y float64
	// Wheel deltas.
	DX, DY float64
	// New viewport size for EventResize.
	Width, Height float64

	TouchID int64
	Phase   TouchPhase
}

// ResizeEvent returns an EventResize.
func ResizeEvent(w, h float64) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

// PointerMoveEvent returns an EventPointerMove.
func PointerMoveEvent(x, y float64) Event {
	return Event{Type: EventPointerMove, X: x, Y: y}
}

// PointerDownEvent returns an EventPointerDown.
func PointerDownEvent(x, y float64) Event {
	return Event{Type: EventPointerDown, X: x, Y: y}
}

// PointerUpEvent returns an EventPointerUp.
func PointerUpEvent(x, y float64) Event {
	return Event{Type: EventPointerUp, X: x, Y: y}
}

// WheelEvent returns an EventWheel.
func WheelEvent(dx, dy float64) Event {
	return Event{Type: EventWheel, DX: dx, DY: dy}
}

// TouchEvent returns an EventTouch.
func TouchEvent(id int64, phase TouchPhase, x, y float64) Event {
	return Event{Type: EventTouch, TouchID: id, Phase: phase, X: x, Y: y}
}

// InteractionType distinguishes interaction events forwarded to an
// EntityStore.
type InteractionType uint8

const (
	InteractionClick InteractionType = iota // a clickable element was pressed
	InteractionTap                          // a low-movement release anywhere
)

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type InteractionType
	// ID is the clicked element id (empty for taps).
	ID   string
	X, Y float64
}

// EntityStore is the interface for optional ECS integration.
// When set on a View, click and tap events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}
