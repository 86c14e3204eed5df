package raster

import (
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]color.Color{
	"black":     drawing.ColorBlack,
	"white":     drawing.ColorWhite,
	"red":       drawing.ColorRed,
	"green":     drawing.ColorGreen,
	"blue":      drawing.ColorBlue,
	"orange":    drawing.ColorFromHex("ffa500"),
	"gray":      drawing.ColorFromHex("808080"),
	"grey":      drawing.ColorFromHex("808080"),
	"lightgray": drawing.ColorFromHex("d3d3d3"),
	"lightgrey": drawing.ColorFromHex("d3d3d3"),
	"steelblue": drawing.ColorFromHex("4682b4"),
	"crimson":   drawing.ColorFromHex("dc143c"),
	"purple":    drawing.ColorFromHex("800080"),
	"yellow":    drawing.ColorFromHex("ffff00"),
}

// parseColor resolves a CSS color name or #rgb/#rrggbb value.
// ok is false for "none", "transparent" and anything unrecognized, meaning
// nothing should be painted.
func parseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return nil, false
	case "currentcolor":
		return drawing.ColorBlack, true
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	hex, found := strings.CutPrefix(s, "#")
	if !found || (len(hex) != 3 && len(hex) != 6) || !isHex(hex) {
		return nil, false
	}
	return drawing.ColorFromHex(hex), true
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
