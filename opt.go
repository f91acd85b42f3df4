// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import "image/color"

// Display parameters on plottables are tri-state: unset, or set to a
// concrete value. The zero value of each Opt type is "unset", which
// lets resolution fall through to container overrides, the style
// preset, and finally the built-in fallback. Set values always win.

// OptFloat is an optional float64 parameter.
type OptFloat struct {
	value float64
	set   bool
}

// Float returns a set OptFloat.
func Float(v float64) OptFloat { return OptFloat{v, true} }

// IsSet reports whether the parameter was explicitly set.
func (o OptFloat) IsSet() bool { return o.set }

// Get returns the value and whether it was set.
func (o OptFloat) Get() (float64, bool) { return o.value, o.set }

// Or returns the value if set, else def.
func (o OptFloat) Or(def float64) float64 {
	if o.set {
		return o.value
	}
	return def
}

// Unset clears the parameter back to the unset state.
func (o *OptFloat) Unset() { *o = OptFloat{} }

// OptInt is an optional int parameter.
type OptInt struct {
	value int
	set   bool
}

// Int returns a set OptInt.
func Int(v int) OptInt { return OptInt{v, true} }

func (o OptInt) IsSet() bool      { return o.set }
func (o OptInt) Get() (int, bool) { return o.value, o.set }
func (o *OptInt) Unset()          { *o = OptInt{} }
func (o OptInt) Or(def int) int {
	if o.set {
		return o.value
	}
	return def
}

// OptBool is an optional bool parameter.
type OptBool struct {
	value bool
	set   bool
}

// Bool returns a set OptBool.
func Bool(v bool) OptBool { return OptBool{v, true} }

func (o OptBool) IsSet() bool       { return o.set }
func (o OptBool) Get() (bool, bool) { return o.value, o.set }
func (o *OptBool) Unset()           { *o = OptBool{} }

func (o OptBool) Or(def bool) bool {
	if o.set {
		return o.value
	}
	return def
}

// OptString is an optional string parameter.
type OptString struct {
	value string
	set   bool
}

// String returns a set OptString.
func String(v string) OptString { return OptString{v, true} }

func (o OptString) IsSet() bool         { return o.set }
func (o OptString) Get() (string, bool) { return o.value, o.set }
func (o *OptString) Unset()             { *o = OptString{} }
func (o OptString) Or(def string) string {
	if o.set {
		return o.value
	}
	return def
}

// OptColor is an optional color parameter. It may be set from a
// color.Color or from a color spec string ("#rrggbb" or an SVG 1.1
// color name such as "firebrick").
type OptColor struct {
	value color.Color
	name  string
	set   bool
}

// Color returns a set OptColor.
func Color(c color.Color) OptColor { return OptColor{value: c, set: true} }

// NamedColor returns a set OptColor from a color spec string. The
// spec is parsed at resolution time; an unparseable spec resolves to
// the fallback.
func NamedColor(spec string) OptColor { return OptColor{name: spec, set: true} }

func (o OptColor) IsSet() bool { return o.set }
func (o *OptColor) Unset()     { *o = OptColor{} }

// Get returns the color and whether it was set. A named color that
// does not parse reports unset.
func (o OptColor) Get() (color.Color, bool) {
	if !o.set {
		return nil, false
	}
	if o.value != nil {
		return o.value, true
	}
	c, ok := parseColor(o.name)
	return c, ok
}
