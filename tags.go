package sprig

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tags is the annotation vocabulary embedded in an SVG node id:
//
//	name#clickable#layout{x={end=12},y='center'}#include{die}
//
// The part before the first '#' is the element id used everywhere else.
type Tags struct {
	Name      string
	Clickable bool
	// Layout is non-nil when the node carries a layout tag.
	Layout    *Constraint
	Include   string
	Component string
}

// tagPattern matches a single tag: a keyword optionally followed by a
// brace-delimited argument.
var tagPattern = regexp.MustCompile(`^([a-z_]+)(\{(.*)\})?$`)

// ParseTags splits an annotated node id into its element name and tags.
// Unknown keywords are ignored so that ids can carry annotations for other
// tools. Unbalanced braces and any malformed layout tag are authoring errors.
func ParseTags(id string) (Tags, error) {
	parts, balanced := splitTags(id)
	t := Tags{Name: parts[0]}
	if !balanced {
		if strings.Contains(strings.ToLower(id), "#layout") {
			return Tags{}, &LayoutError{ID: t.Name, Err: fmt.Errorf("%w: unbalanced braces", ErrUnknownConstraintAxis)}
		}
		return Tags{}, fmt.Errorf("%w: unbalanced braces in %q", ErrMalformedTags, id)
	}
	for _, p := range parts[1:] {
		m := tagPattern.FindStringSubmatch(p)
		if m == nil {
			if isLayoutTag(p) {
				return Tags{}, &LayoutError{ID: t.Name, Err: fmt.Errorf("%w: malformed tag %q", ErrUnknownConstraintAxis, p)}
			}
			continue
		}
		switch m[1] {
		case "clickable":
			t.Clickable = true
		case "layout":
			c, err := ParseConstraint(m[2])
			if err != nil {
				return Tags{}, &LayoutError{ID: t.Name, Err: err}
			}
			t.Layout = &c
		case "include":
			t.Include = m[3]
		case "component":
			t.Component = m[3]
		}
	}
	return t, nil
}

// isLayoutTag reports whether p was meant as a layout tag: the keyword in
// any case, followed by nothing, a brace or whitespace.
func isLayoutTag(p string) bool {
	if len(p) < len("layout") || !strings.EqualFold(p[:len("layout")], "layout") {
		return false
	}
	rest := p[len("layout"):]
	return rest == "" || rest[0] == '{' || rest[0] == ' ' || rest[0] == '\t'
}

// splitTags splits on '#' outside of braces, so descriptor records may
// contain '#' inside quoted strings. balanced is false when a '{' is never
// closed or a '}' has no opener.
func splitTags(id string) (parts []string, balanced bool) {
	depth, start := 0, 0
	balanced = true
	for i, r := range id {
		switch r {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				balanced = false
				continue
			}
			depth--
		case '#':
			if depth == 0 {
				parts = append(parts, id[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, id[start:]), balanced && depth == 0
}

// ParseConstraint parses a layout descriptor record. The record is a TOML
// inline table keyed by axis; each axis is either a kind name or a table of
// anchor offsets:
//
//	{x='scale', y='scale'}
//	{x={end=12}, y={center=-4}}
//	{x={start=8, end=8}}        stretch between two offsets
//
// A missing axis defaults to full-bleed stretch. An empty record yields the
// zero Constraint.
func ParseConstraint(record string) (Constraint, error) {
	record = strings.TrimSpace(record)
	if record == "" {
		return Constraint{}, nil
	}

	var doc struct {
		Layout map[string]any `toml:"layout"`
	}
	if _, err := toml.Decode("layout = "+record, &doc); err != nil {
		return Constraint{}, fmt.Errorf("%w: %v", ErrUnknownConstraintAxis, err)
	}

	var c Constraint
	for _, key := range sortedKeys(doc.Layout) {
		ac, err := parseAxis(doc.Layout[key])
		if err != nil {
			return Constraint{}, fmt.Errorf("axis %s: %w", key, err)
		}
		switch key {
		case "x":
			c.X = ac
		case "y":
			c.Y = ac
		default:
			return Constraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraintAxis, key)
		}
	}
	return c, nil
}

func parseAxis(v any) (AxisConstraint, error) {
	switch val := v.(type) {
	case string:
		switch val {
		case "start":
			return Start(0), nil
		case "end":
			return End(0), nil
		case "center":
			return Center(0), nil
		case "scale", "fill":
			return ScaleFill(), nil
		case "stretch", "start_and_end":
			return StartAndEnd(0, 0), nil
		}
		return AxisConstraint{}, fmt.Errorf("%w: kind %q", ErrUnknownConstraintAxis, val)

	case map[string]any:
		offsets := make(map[string]float32, len(val))
		for k, raw := range val {
			f, ok := toFloat32(raw)
			if !ok {
				return AxisConstraint{}, fmt.Errorf("%w: %s is not a number", ErrUnknownConstraintAxis, k)
			}
			offsets[k] = f
		}
		_, hasStart := offsets["start"]
		_, hasEnd := offsets["end"]
		_, hasCenter := offsets["center"]
		switch {
		case len(offsets) == 2 && hasStart && hasEnd:
			return StartAndEnd(offsets["start"], offsets["end"]), nil
		case len(offsets) == 1 && hasStart:
			return Start(offsets["start"]), nil
		case len(offsets) == 1 && hasEnd:
			return End(offsets["end"]), nil
		case len(offsets) == 1 && hasCenter:
			return Center(offsets["center"]), nil
		}
		return AxisConstraint{}, fmt.Errorf("%w: anchors %v", ErrUnknownConstraintAxis, sortedKeys(val))
	}
	return AxisConstraint{}, fmt.Errorf("%w: unsupported value %v", ErrUnknownConstraintAxis, v)
}

func toFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case int64:
		return float32(n), true
	case float64:
		return float32(n), true
	}
	return 0, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
