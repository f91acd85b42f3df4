// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// colorMapFor maps a style color_map name to a gonum color map. The
// map's range is unset; callers set it to their data range.
func colorMapFor(name string) palette.ColorMap {
	switch name {
	case "extended_kindlmann":
		return moreland.ExtendedKindlmann()
	case "blackbody":
		return moreland.BlackBody()
	case "extended_blackbody":
		return moreland.ExtendedBlackBody()
	case "coolwarm":
		return moreland.SmoothBlueRed()
	}
	return moreland.Kindlmann()
}

type listPalette []color.Color

func (p listPalette) Colors() []color.Color { return p }

// paletteFor samples the named color map into an n-color palette.
func paletteFor(name string, n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	if name == "heat" {
		return palette.Heat(n, 1)
	}
	cm := colorMapFor(name)
	cm.SetMin(0)
	cm.SetMax(1)
	cols := make(listPalette, n)
	for i := range cols {
		c, err := cm.At(float64(i) / float64(n-1))
		if err != nil {
			c = color.Black
		}
		cols[i] = c
	}
	return cols
}
