package svgtree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phanxgames/sprig"
)

// parseTransform parses an SVG transform list such as
// "translate(10,20) scale(2)". Functions apply right to left, as in SVG.
func parseTransform(s string) (sprig.Mat4, error) {
	m := sprig.Identity()
	s = strings.TrimSpace(s)
	for s != "" {
		open := strings.IndexByte(s, '(')
		close := strings.IndexByte(s, ')')
		if open < 0 || close < open {
			return sprig.Mat4{}, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(s[:open])
		args, err := parseArgs(s[open+1 : close])
		if err != nil {
			return sprig.Mat4{}, fmt.Errorf("transform %s: %w", name, err)
		}
		fn, err := transformFunc(name, args)
		if err != nil {
			return sprig.Mat4{}, err
		}
		m = m.Mul(fn)
		s = strings.TrimLeft(s[close+1:], " \t\n,")
	}
	return m, nil
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	args := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		args[i] = v
	}
	return args, nil
}

func transformFunc(name string, a []float64) (sprig.Mat4, error) {
	arity := func(allowed ...int) error {
		for _, n := range allowed {
			if len(a) == n {
				return nil
			}
		}
		return fmt.Errorf("transform %s: got %d arguments", name, len(a))
	}

	switch name {
	case "translate":
		if err := arity(1, 2); err != nil {
			return sprig.Mat4{}, err
		}
		ty := 0.0
		if len(a) == 2 {
			ty = a[1]
		}
		return sprig.Translate(float32(a[0]), float32(ty), 0), nil

	case "scale":
		if err := arity(1, 2); err != nil {
			return sprig.Mat4{}, err
		}
		sy := a[0]
		if len(a) == 2 {
			sy = a[1]
		}
		return sprig.Scale(float32(a[0]), float32(sy), 1), nil

	case "rotate":
		if err := arity(1, 3); err != nil {
			return sprig.Mat4{}, err
		}
		sin, cos := math.Sincos(a[0] * math.Pi / 180)
		r := sprig.Mat4{
			float32(cos), float32(-sin), 0, 0,
			float32(sin), float32(cos), 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}
		if len(a) == 3 {
			cx, cy := float32(a[1]), float32(a[2])
			return sprig.Translate(cx, cy, 0).Mul(r).Mul(sprig.Translate(-cx, -cy, 0)), nil
		}
		return r, nil

	case "matrix":
		if err := arity(6); err != nil {
			return sprig.Mat4{}, err
		}
		return sprig.Mat4{
			float32(a[0]), float32(a[2]), 0, float32(a[4]),
			float32(a[1]), float32(a[3]), 0, float32(a[5]),
			0, 0, 1, 0,
			0, 0, 0, 1,
		}, nil
	}
	return sprig.Mat4{}, fmt.Errorf("unsupported transform %q", name)
}
