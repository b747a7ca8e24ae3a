package svgtree

import (
	"errors"
	"fmt"

	"github.com/phanxgames/sprig"
)

// ErrUnknownComponent is returned when an include names a component that
// the document does not define.
var ErrUnknownComponent = errors.New("svgtree: unknown component")

// maxIncludeDepth bounds nested includes, which also catches cycles.
const maxIncludeDepth = 8

// collectComponents detaches component templates from the tree, and drops
// non-rendered containers once their components have been collected.
func collectComponents(e *Element, comps map[string]*Element) {
	kept := e.children[:0]
	for _, c := range e.children {
		switch {
		case c.Tags.Component != "":
			if _, dup := comps[c.Tags.Component]; dup {
				sprig.Logger().Warn("component redefined", "component", c.Tags.Component)
			}
			comps[c.Tags.Component] = c
			collectComponents(c, comps)
		case nonRendered[c.Tag]:
			collectComponents(c, comps)
		default:
			collectComponents(c, comps)
			kept = append(kept, c)
		}
	}
	clear(e.children[len(kept):])
	e.children = kept
}

// expandIncludes appends a clone of the named component's children to
// every include element. Clones are moved so the component's origin lands
// on the includer's origin, and their names are prefixed with the
// includer's name ("die1.pip").
func expandIncludes(e *Element, comps map[string]*Element, depth int) error {
	if depth > maxIncludeDepth {
		return fmt.Errorf("svgtree: includes nested deeper than %d (cycle?)", maxIncludeDepth)
	}
	for _, c := range e.children {
		if err := expandIncludes(c, comps, depth); err != nil {
			return err
		}
	}

	name := e.Tags.Include
	if name == "" {
		return nil
	}
	comp, ok := comps[name]
	if !ok {
		return &sprig.LayoutError{ID: e.Tags.Name, Err: fmt.Errorf("%w: %q", ErrUnknownComponent, name)}
	}
	dx := e.origin.X - comp.origin.X
	dy := e.origin.Y - comp.origin.Y
	for _, c := range comp.children {
		clone := cloneElement(c, e.Tags.Name, dx, dy)
		if err := expandIncludes(clone, comps, depth+1); err != nil {
			return err
		}
		e.children = append(e.children, clone)
	}
	return nil
}

// cloneElement deep-copies e, shifting geometry by (dx, dy) and prefixing
// every non-empty name.
func cloneElement(e *Element, prefix string, dx, dy float64) *Element {
	c := *e
	if prefix != "" && e.Tags.Name != "" {
		c.Tags.Name = prefix + "." + e.Tags.Name
		c.RawID = prefix + "." + e.RawID
	}
	c.origin = sprig.Vec2{X: e.origin.X + dx, Y: e.origin.Y + dy}
	if e.Outline != nil {
		c.Outline = make([]sprig.Vec2, len(e.Outline))
		for i, p := range e.Outline {
			c.Outline[i] = sprig.Vec2{X: p.X + dx, Y: p.Y + dy}
		}
	}
	c.children = make([]*Element, len(e.children))
	for i, child := range e.children {
		c.children[i] = cloneElement(child, prefix, dx, dy)
	}
	return &c
}
