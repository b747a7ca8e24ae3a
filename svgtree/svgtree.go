// Package svgtree parses annotated SVG documents into a tree of elements
// that the sprig layout registry can load.
//
// Geometry is flattened at parse time: every outline and bounding box is
// expressed in root user units with all ancestor transforms applied.
// Elements tagged component{name} are removed from the rendered tree and
// cloned into every element tagged include{name}.
package svgtree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/sprig"
)

// ErrNoRoot is returned when the input has no <svg> element.
var ErrNoRoot = errors.New("svgtree: no <svg> root element")

// Element is a node of the parsed document.
type Element struct {
	// Tag is the XML element name (svg, g, rect, circle, path, text, ...).
	Tag string
	// RawID is the full id attribute including annotation tags.
	RawID string
	Tags  sprig.Tags

	Fill    color.RGBA
	HasFill bool

	// Outline is the shape's vertices in root units. Closed outlines are
	// filled as polygons.
	Outline []sprig.Vec2
	Closed  bool

	Text     string
	FontSize float64

	bbox     sprig.Rect
	children []*Element
	// origin is where the element's local (0, 0) lands in root units.
	origin sprig.Vec2
}

// ID implements sprig.Node.
func (e *Element) ID() string { return e.RawID }

// BBox implements sprig.Node.
func (e *Element) BBox() sprig.Rect { return e.bbox }

// Children implements sprig.Node.
func (e *Element) Children() []sprig.Node {
	out := make([]sprig.Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Elements returns the child elements.
func (e *Element) Elements() []*Element { return e.children }

// Name returns the element id without annotation tags.
func (e *Element) Name() string { return e.Tags.Name }

// Document is a parsed SVG.
type Document struct {
	Root *Element
	// Width and Height are the document extent in user units (viewBox size
	// when present, else the width and height attributes).
	Width, Height float64
	ViewBox       sprig.Rect
	// Components holds the templates removed from the tree, by name.
	Components map[string]*Element
}

// Find returns the first element (depth-first) whose name is name.
func (d *Document) Find(name string) (*Element, bool) {
	var found *Element
	d.Walk(func(e *Element, _ int) bool {
		if e.Tags.Name == name {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// Walk visits every element depth-first with its depth. Returning false
// stops the walk.
func (d *Document) Walk(fn func(e *Element, depth int) bool) {
	if d.Root != nil {
		walk(d.Root, 0, fn)
	}
}

func walk(e *Element, depth int, fn func(*Element, int) bool) bool {
	if !fn(e, depth) {
		return false
	}
	for _, c := range e.children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// ParseFile reads and parses an SVG file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open svg: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// nonRendered elements are dropped after component collection.
var nonRendered = map[string]bool{
	"defs": true, "title": true, "desc": true, "metadata": true, "style": true,
	"script": true, "clipPath": true, "mask": true, "linearGradient": true,
	"radialGradient": true, "pattern": true, "symbol": true, "marker": true,
	"namedview": true,
}

// frame is the inherited state of an open element.
type frame struct {
	el        *Element
	transform sprig.Mat4
	fill      color.RGBA
	hasFill   bool
	fontSize  float64
}

// Parse decodes an SVG document.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{Components: make(map[string]*Element)}

	var stack []frame
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode token: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := frame{transform: sprig.Identity(), fill: color.RGBA{A: 255}, hasFill: true, fontSize: 16}
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			} else if t.Name.Local != "svg" {
				return nil, ErrNoRoot
			}
			fr, err := openElement(t, parent)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				doc.readRootSize(t)
			}
			stack = append(stack, fr)

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1].el
				if top.Tag == "text" || top.Tag == "tspan" {
					top.Text += string(t)
				}
			}

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			closeElement(fr.el)
			if len(stack) == 0 {
				doc.Root = fr.el
				continue
			}
			parent := stack[len(stack)-1].el
			if fr.el.Tag == "tspan" {
				parent.Text += fr.el.Text
				continue
			}
			parent.children = append(parent.children, fr.el)
		}
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}

	collectComponents(doc.Root, doc.Components)
	if err := expandIncludes(doc.Root, doc.Components, 0); err != nil {
		return nil, err
	}
	computeBBoxes(doc.Root)
	if doc.Width > 0 && doc.Height > 0 {
		doc.Root.bbox = doc.ViewBox
	}
	sprig.Logger().Debug("svg parsed", "width", doc.Width, "height", doc.Height, "components", len(doc.Components))
	return doc, nil
}

func (d *Document) readRootSize(t xml.StartElement) {
	var w, h float64
	for _, a := range t.Attr {
		switch a.Name.Local {
		case "viewBox":
			parts := strings.Fields(strings.ReplaceAll(a.Value, ",", " "))
			if len(parts) == 4 {
				var vb [4]float64
				for i, p := range parts {
					vb[i], _ = strconv.ParseFloat(p, 64)
				}
				d.ViewBox = sprig.Rect{X: float32(vb[0]), Y: float32(vb[1]), Width: float32(vb[2]), Height: float32(vb[3])}
			}
		case "width":
			w = parseLength(a.Value)
		case "height":
			h = parseLength(a.Value)
		}
	}
	if d.ViewBox.Width > 0 && d.ViewBox.Height > 0 {
		d.Width, d.Height = float64(d.ViewBox.Width), float64(d.ViewBox.Height)
		return
	}
	d.Width, d.Height = w, h
	d.ViewBox = sprig.Rect{Width: float32(w), Height: float32(h)}
}

func openElement(t xml.StartElement, parent frame) (frame, error) {
	el := &Element{Tag: t.Name.Local}
	attrs := make(map[string]string, len(t.Attr))
	for _, a := range t.Attr {
		attrs[a.Name.Local] = a.Value
	}

	el.RawID = attrs["id"]
	tags, err := sprig.ParseTags(el.RawID)
	if err != nil {
		return frame{}, err
	}
	el.Tags = tags

	fr := parent
	fr.el = el
	if tr, ok := attrs["transform"]; ok {
		m, err := parseTransform(tr)
		if err != nil {
			return frame{}, fmt.Errorf("element %q: %w", el.RawID, err)
		}
		fr.transform = parent.transform.Mul(m)
	}
	if fill, ok := styleValue(attrs, "fill"); ok {
		fr.fill, fr.hasFill = parseColor(fill)
	}
	if fs, ok := styleValue(attrs, "font-size"); ok {
		if v := parseLength(fs); v > 0 {
			fr.fontSize = v
		}
	}
	el.Fill, el.HasFill = fr.fill, fr.hasFill
	ox, oy := fr.transform.TransformPoint(0, 0)
	el.origin = sprig.Vec2{X: float64(ox), Y: float64(oy)}

	if err := buildShape(el, attrs, fr); err != nil {
		return frame{}, fmt.Errorf("element %q: %w", el.RawID, err)
	}
	return fr, nil
}

// closeElement trims text content.
func closeElement(el *Element) {
	if el.Tag == "text" {
		el.Text = strings.TrimSpace(el.Text)
	}
}

// computeBBoxes sets every element's bbox bottom-up: shapes use their
// outline, containers the union of their children.
func computeBBoxes(e *Element) sprig.Rect {
	var r sprig.Rect
	if len(e.Outline) > 0 {
		r = bounds(e.Outline)
	}
	for _, c := range e.children {
		r = r.Union(computeBBoxes(c))
	}
	e.bbox = r
	return r
}

func bounds(pts []sprig.Vec2) sprig.Rect {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return sprig.Rect{X: float32(minX), Y: float32(minY), Width: float32(maxX - minX), Height: float32(maxY - minY)}
}

// styleValue looks a presentation property up in the style attribute
// first, then in the attribute of the same name.
func styleValue(attrs map[string]string, key string) (string, bool) {
	if style, ok := attrs["style"]; ok {
		for _, p := range strings.Split(style, ";") {
			kv := strings.SplitN(strings.TrimSpace(p), ":", 2)
			if len(kv) == 2 && strings.TrimSpace(strings.ToLower(kv[0])) == key {
				return strings.TrimSpace(kv[1]), true
			}
		}
	}
	v, ok := attrs[key]
	return strings.TrimSpace(v), ok
}

// parseLength parses a number with an optional px suffix. Other units are
// read as user units.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '-' || s[end] == '+' || s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	v, _ := strconv.ParseFloat(s[:end], 64)
	return v
}
