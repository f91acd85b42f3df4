// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// parseColor parses a color spec: "#rgb", "#rrggbb", "#rrggbbaa", or
// an SVG 1.1 color name ("firebrick").
func parseColor(spec string) (color.Color, bool) {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" {
		return nil, false
	}
	if spec[0] == '#' {
		return parseHexColor(spec[1:])
	}
	c, ok := colornames.Map[spec]
	return c, ok
}

func parseHexColor(hex string) (color.Color, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return nil, false
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return nil, false
	}
	c := color.NRGBA{A: 0xff}
	if len(hex) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, true
}

// withAlpha scales c's alpha by a in [0, 1].
func withAlpha(c color.Color, a float64) color.Color {
	if c == nil {
		return nil
	}
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = uint8(float64(nc.A) * a)
	return nc
}

// dashesFor maps a line style name to a vg dash pattern. Unknown
// names draw solid.
func dashesFor(style string) []vg.Length {
	switch style {
	case "dashed", "--":
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case "dotted", ":":
		return []vg.Length{vg.Points(1), vg.Points(2.5)}
	case "dashdot", "-.":
		return []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)}
	}
	return nil
}

// glyphFor maps a marker style name to a glyph drawer.
func glyphFor(style string) draw.GlyphDrawer {
	switch style {
	case "ring", "o":
		return draw.RingGlyph{}
	case "square", "s":
		return draw.BoxGlyph{}
	case "triangle", "^":
		return draw.PyramidGlyph{}
	case "plus", "+":
		return draw.PlusGlyph{}
	case "cross", "x":
		return draw.CrossGlyph{}
	}
	return draw.CircleGlyph{}
}
