package svgtree

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phanxgames/sprig"
)

// curveFlatness is the largest distance, in user units, a flattened cubic
// may deviate from the curve.
const curveFlatness = 0.25

func parsePointsList(s string) ([]sprig.Vec2, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in points list")
	}

	pts := make([]sprig.Vec2, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 64)
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("invalid coordinate pair %q,%q", fields[i], fields[i+1])
		}
		pts = append(pts, sprig.Vec2{X: x, Y: y})
	}
	return pts, nil
}

// parseSimplePath parses a limited subset of SVG path syntax:
// M/m, L/l, H/h, V/v, C/c and Z/z.
func parseSimplePath(d string) ([]sprig.Vec2, bool, error) {
	tokens := tokenizePathData(d)
	if len(tokens) == 0 {
		return nil, false, nil
	}

	var pts []sprig.Vec2
	var cur, start sprig.Vec2
	var cmd byte
	closed := false
	i := 0

	next := func(n int) ([]float64, error) {
		if i+n > len(tokens) {
			return nil, fmt.Errorf("command %q needs %d numbers", string(cmd), n)
		}
		vals := make([]float64, n)
		for k := range vals {
			v, err := strconv.ParseFloat(tokens[i+k], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", tokens[i+k])
			}
			vals[k] = v
		}
		i += n
		return vals, nil
	}
	add := func(p sprig.Vec2) {
		if len(pts) == 0 {
			start = p
		}
		cur = p
		pts = append(pts, p)
	}

	for i < len(tokens) {
		if isCommand(tokens[i]) {
			cmd = tokens[i][0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				if len(pts) > 0 {
					closed = true
					cur = start
				}
			}
			continue
		}
		if cmd == 0 {
			return nil, false, errors.New("path data must start with a command (M/m)")
		}

		rel := cmd >= 'a'
		switch cmd {
		case 'M', 'm', 'L', 'l':
			v, err := next(2)
			if err != nil {
				return nil, false, err
			}
			p := sprig.Vec2{X: v[0], Y: v[1]}
			if rel {
				p = sprig.Vec2{X: cur.X + v[0], Y: cur.Y + v[1]}
			}
			add(p)
			// Coordinates following a moveto are implicit linetos.
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}

		case 'H', 'h':
			v, err := next(1)
			if err != nil {
				return nil, false, err
			}
			p := sprig.Vec2{X: v[0], Y: cur.Y}
			if rel {
				p.X = cur.X + v[0]
			}
			add(p)

		case 'V', 'v':
			v, err := next(1)
			if err != nil {
				return nil, false, err
			}
			p := sprig.Vec2{X: cur.X, Y: v[0]}
			if rel {
				p.Y = cur.Y + v[0]
			}
			add(p)

		case 'C', 'c':
			v, err := next(6)
			if err != nil {
				return nil, false, err
			}
			if rel {
				for k := 0; k < 6; k += 2 {
					v[k] += cur.X
					v[k+1] += cur.Y
				}
			}
			p1 := sprig.Vec2{X: v[0], Y: v[1]}
			p2 := sprig.Vec2{X: v[2], Y: v[3]}
			p3 := sprig.Vec2{X: v[4], Y: v[5]}
			var seg []sprig.Vec2
			flattenCubicBezier(cur, p1, p2, p3, curveFlatness, 0, &seg)
			for _, s := range seg {
				add(s)
			}
			cur = p3

		default:
			return nil, false, fmt.Errorf("unsupported path command %q", string(cmd))
		}
	}
	return pts, closed, nil
}

func isCommand(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	switch tok[0] {
	case 'C', 'c', 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Z', 'z':
		return true
	}
	return false
}

// hasUnsupportedCommands reports whether d uses path commands other than
// the ones parseSimplePath understands.
func hasUnsupportedCommands(d string) bool {
	for _, r := range d {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			switch r {
			case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Z', 'z', 'C', 'c', 'e', 'E':
			default:
				return true
			}
		}
	}
	return false
}

// tokenizePathData splits path data into command letters and numbers.
// A sign starts a new number unless it follows an exponent.
func tokenizePathData(d string) []string {
	var b strings.Builder
	var prev rune
	for _, r := range d {
		switch {
		case strings.ContainsRune("MmLlHhVvZzCc", r):
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		case r == ',':
			b.WriteRune(' ')
		case r == '-' && prev != 'e' && prev != 'E':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return strings.Fields(b.String())
}

// maxFlattenDepth bounds the subdivision of degenerate curves.
const maxFlattenDepth = 10

// flattenCubicBezier recursively subdivides a cubic until its control
// points lie within flatness of the chord, appending the end points.
func flattenCubicBezier(p0, p1, p2, p3 sprig.Vec2, flatness float64, depth int, out *[]sprig.Vec2) {
	if depth >= maxFlattenDepth || (distPointToLine(p1, p0, p3) <= flatness && distPointToLine(p2, p0, p3) <= flatness) {
		*out = append(*out, p3)
		return
	}
	p01 := lerp(p0, p1, 0.5)
	p12 := lerp(p1, p2, 0.5)
	p23 := lerp(p2, p3, 0.5)
	p012 := lerp(p01, p12, 0.5)
	p123 := lerp(p12, p23, 0.5)
	mid := lerp(p012, p123, 0.5)
	flattenCubicBezier(p0, p01, p012, mid, flatness, depth+1, out)
	flattenCubicBezier(mid, p123, p23, p3, flatness, depth+1, out)
}

func lerp(a, b sprig.Vec2, t float64) sprig.Vec2 {
	return sprig.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func distPointToLine(p, a, b sprig.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
