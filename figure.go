// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"github.com/figkit/figkit/style"
)

// pkgStore is the lazily created process-wide style store. Like the
// rest of the package, it is not safe for concurrent use.
var pkgStore *style.Store

func defaultStore() *style.Store {
	if pkgStore == nil {
		pkgStore = style.NewStore()
	}
	return pkgStore
}

// A Figure is a single axes region: a titled coordinate frame holding
// plottable elements. Figures render on their own via Save and SaveTo,
// or as cells of a MultiFigure.
type Figure struct {
	Title  string
	XLabel string
	YLabel string

	// Axis limits. Unset limits are computed from the data.
	XMin, XMax, YMin, YMax OptFloat

	// LogX and LogY switch the corresponding axis to a log scale.
	LogX, LogY bool

	// Axis visibility.
	HideAxes   bool
	HideXTicks bool
	HideYTicks bool

	// ShowGrid overrides the style's show_grid setting.
	ShowGrid OptBool

	// Width and Height override the style's figure size, in inches.
	Width, Height OptFloat

	// Legend controls the per-figure legend. Unset shows the legend
	// whenever any element has a label.
	Legend         OptBool
	LegendLocation OptString

	styleName string
	overrides Overrides
	store     *style.Store

	elements []Plottable

	twin      *Figure
	twinLabel string
}

// NewFigure returns an empty figure using the process default style.
func NewFigure() *Figure {
	return &Figure{overrides: make(Overrides)}
}

// SetStore directs the figure at an alternate style store. Mainly
// useful for tests.
func (f *Figure) SetStore(s *style.Store) { f.store = s }

func (f *Figure) storeFor() *style.Store {
	if f.store != nil {
		return f.store
	}
	return defaultStore()
}

// SetStyle selects the named style preset for this figure and
// everything in it. The preset is validated immediately; an unknown
// name is an error and leaves the figure unchanged.
func (f *Figure) SetStyle(name string) error {
	if _, err := f.storeFor().Load(name); err != nil {
		return err
	}
	f.styleName = name
	return nil
}

// StyleName returns the figure's preset name, or "" if it uses the
// process default.
func (f *Figure) StyleName() string { return f.styleName }

// SetOverride sets a figure-level parameter override for every object
// of the given type in this figure. Overrides sit between an object's
// own explicit values and the style preset.
func (f *Figure) SetOverride(objectType, param string, value interface{}) {
	f.overrides.Set(objectType, param, value)
}

// ClearOverride removes a figure-level override.
func (f *Figure) ClearOverride(objectType, param string) {
	f.overrides.Clear(objectType, param)
}

// AddElements appends plottable elements to the figure. Elements draw
// in insertion order.
func (f *Figure) AddElements(es ...Plottable) {
	f.elements = append(f.elements, es...)
}

// RemoveElement removes the first element identical to e. It reports
// whether anything was removed.
func (f *Figure) RemoveElement(e Plottable) bool {
	for i, el := range f.elements {
		if el == e {
			f.elements = append(f.elements[:i], f.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Elements returns the figure's elements in insertion order.
func (f *Figure) Elements() []Plottable { return f.elements }

// TwinY returns a secondary figure sharing this figure's x axis but
// scaled against an independent right-hand y axis with the given
// label. Add elements to the returned figure to plot them on the twin
// axis. Calling TwinY again returns the same twin.
func (f *Figure) TwinY(label string) *Figure {
	if f.twin == nil {
		f.twin = NewFigure()
		f.twin.store = f.store
		f.twin.styleName = f.styleName
	}
	f.twinLabel = label
	return f.twin
}

// effectiveStyle returns the preset name resolution should use.
func (f *Figure) effectiveStyle(s *style.Store) string {
	if f.styleName != "" {
		return f.styleName
	}
	return s.Default()
}

// resolver builds the figure's root resolver, optionally nested under
// a parent container's resolver.
func (f *Figure) resolver(s *style.Store, parent *resolver) *resolver {
	if parent == nil {
		return newResolver(s, f.effectiveStyle(s), []Overrides{f.overrides})
	}
	return parent.child(f.styleName, f.overrides)
}
