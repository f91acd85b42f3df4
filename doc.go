// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figkit assembles publication-quality figures declaratively.
//
// Users construct small value objects describing what to draw (a
// Curve, a Scatter, a Histogram, a Heatmap, a Polygon) and hand them
// to a Figure. Figures may in turn be placed on the spanning grid of
// a MultiFigure, which may nest other MultiFigures. Rendering,
// including axes, ticks, legends and file export, is delegated to
// gonum.org/v1/plot.
//
// Display parameters are resolved at render time with a fixed
// precedence: a value set explicitly on an object always wins, then
// the nearest enclosing container's override for that object type,
// then the named style preset (see the style package), then the
// library's built-in fallback. The same order holds at any nesting
// depth.
package figkit
