package sprig

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateGeometry reports a bounding box or viewport with zero or
	// near-zero extent on an axis that must be inverted. Per-frame
	// occurrences are logged and the element is skipped.
	ErrDegenerateGeometry = errors.New("sprig: degenerate geometry")

	// ErrUnknownConstraintAxis reports a layout descriptor that names an
	// unknown axis, kind or combination of anchors. It is raised while
	// content is loaded, never while rendering.
	ErrUnknownConstraintAxis = errors.New("sprig: unknown constraint axis")

	// ErrMalformedTags reports a node id whose tag braces do not balance.
	ErrMalformedTags = errors.New("sprig: malformed tags")

	// ErrMissingParentLayout reports a layout whose parent id is not
	// registered. The layout falls back to the full viewport.
	ErrMissingParentLayout = errors.New("sprig: missing parent layout")

	// ErrDuplicateLayout reports a second layout registered under an id
	// that is already taken.
	ErrDuplicateLayout = errors.New("sprig: duplicate layout id")

	// ErrUnknownLayout reports an operation on an id that is not a layout.
	ErrUnknownLayout = errors.New("sprig: unknown layout")

	// ErrInvalidDamping reports a spring damping ratio outside (0, 1].
	ErrInvalidDamping = errors.New("sprig: damping ratio outside (0, 1]")

	// ErrInvalidSpring reports a non-positive angular frequency, step or
	// epsilon.
	ErrInvalidSpring = errors.New("sprig: invalid spring parameters")

	// ErrInvalidConfig reports a configuration file that cannot be used.
	ErrInvalidConfig = errors.New("sprig: invalid config")
)

// LayoutError attaches the offending element id to a layout error.
type LayoutError struct {
	ID  string
	Err error
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout %q: %v", e.ID, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *LayoutError) Unwrap() error {
	return e.Err
}
