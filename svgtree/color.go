package svgtree

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":  {A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 128, A: 255},
	"lime":   {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"orange": {R: 255, G: 165, A: 255},
	"purple": {R: 128, B: 128, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"grey":   {R: 128, G: 128, B: 128, A: 255},
}

// parseColor parses a fill value. ok is false for "none" and for values
// that cannot be read, which leave the element unfilled.
func parseColor(s string) (c color.RGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return color.RGBA{}, false

	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true

	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args, err := parseArgs(s[4 : len(s)-1])
		if err != nil || len(args) != 3 {
			return color.RGBA{}, false
		}
		return color.RGBA{R: clampByte(args[0]), G: clampByte(args[1]), B: clampByte(args[2]), A: 255}, true
	}
	c, ok = namedColors[s]
	return c, ok
}

func clampByte(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}
