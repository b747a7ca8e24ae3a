package svgtree

import (
	"math"

	"github.com/phanxgames/sprig"
)

// ellipseSegments is the number of edges used to outline circles and
// ellipses.
const ellipseSegments = 32

// buildShape fills in the outline of a geometry element, transformed into
// root units. Containers and unknown elements are left empty.
func buildShape(el *Element, attrs map[string]string, fr frame) error {
	num := func(key string) float64 { return parseLength(attrs[key]) }

	var pts []sprig.Vec2
	switch el.Tag {
	case "rect":
		x, y, w, h := num("x"), num("y"), num("width"), num("height")
		pts = []sprig.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
		el.Closed = true

	case "circle":
		r := num("r")
		pts = ellipse(num("cx"), num("cy"), r, r)
		el.Closed = true

	case "ellipse":
		pts = ellipse(num("cx"), num("cy"), num("rx"), num("ry"))
		el.Closed = true

	case "line":
		pts = []sprig.Vec2{{X: num("x1"), Y: num("y1")}, {X: num("x2"), Y: num("y2")}}

	case "polyline", "polygon":
		var err error
		pts, err = parsePointsList(attrs["points"])
		if err != nil {
			return err
		}
		el.Closed = el.Tag == "polygon"

	case "path":
		d := attrs["d"]
		if hasUnsupportedCommands(d) {
			sprig.Logger().Debug("skipping path with unsupported commands", "id", el.RawID)
			return nil
		}
		var err error
		pts, el.Closed, err = parseSimplePath(d)
		if err != nil {
			return err
		}

	case "text":
		// Approximate the text box from the baseline anchor; glyph metrics
		// belong to the renderer.
		fs := fr.fontSize
		el.FontSize = fs
		x, y := num("x"), num("y")
		pts = []sprig.Vec2{{X: x, Y: y - fs}, {X: x + fs, Y: y - fs}, {X: x + fs, Y: y}, {X: x, Y: y}}
	}

	for i := range pts {
		px, py := fr.transform.TransformPoint(float32(pts[i].X), float32(pts[i].Y))
		pts[i] = sprig.Vec2{X: float64(px), Y: float64(py)}
	}
	el.Outline = pts
	return nil
}

func ellipse(cx, cy, rx, ry float64) []sprig.Vec2 {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	pts := make([]sprig.Vec2, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = sprig.Vec2{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return pts
}
