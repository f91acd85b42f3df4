// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"image/color"

	"github.com/figkit/figkit/style"
)

// Overrides holds container-level explicit parameter overrides, keyed
// by object type name and parameter name. An override applies to
// every object of that type below the container, unless the object
// (or a nearer container) sets the parameter itself.
type Overrides map[string]map[string]interface{}

// Set sets an override. Values use the same representation as style
// files: numbers, bools, strings (including color specs), or
// color.Color.
func (o Overrides) Set(objectType, param string, value interface{}) {
	t, ok := o[objectType]
	if !ok {
		t = make(map[string]interface{})
		o[objectType] = t
	}
	t[param] = value
}

// Clear removes an override, letting resolution fall through to the
// style preset again.
func (o Overrides) Clear(objectType, param string) {
	if t, ok := o[objectType]; ok {
		delete(t, param)
	}
}

func (o Overrides) lookup(objectType, param string) (interface{}, bool) {
	t, ok := o[objectType]
	if !ok {
		return nil, false
	}
	v, ok := t[param]
	return v, ok
}

// colorCycle is the per-figure rotation of default colors. Objects
// whose color resolves to the "cycle" marker consume the next entry.
type colorCycle struct {
	colors []color.Color
	next   int
}

func (c *colorCycle) take() color.Color {
	if len(c.colors) == 0 {
		return color.Black
	}
	col := c.colors[c.next%len(c.colors)]
	c.next++
	return col
}

// resolver computes effective parameter values for one render pass.
// Lookup order: explicit instance value, container override chain
// (nearest first), style preset under the effective preset name,
// built-in fallback. Resolution never mutates the source objects, so
// resolving twice yields identical results (up to color-cycle
// consumption order, which is also deterministic).
type resolver struct {
	store  *style.Store
	preset string
	chain  []Overrides
	cycle  *colorCycle
}

func newResolver(st *style.Store, preset string, chain []Overrides) *resolver {
	r := &resolver{store: st, preset: preset, chain: chain, cycle: &colorCycle{}}
	if v, ok := r.lookup("Figure", "color_cycle"); ok {
		if list, ok := v.([]interface{}); ok {
			for _, e := range list {
				if s, ok := e.(string); ok {
					if c, ok := parseColor(s); ok {
						r.cycle.colors = append(r.cycle.colors, c)
					}
				}
			}
		}
	}
	return r
}

// forObject returns a resolver for a single object, honoring the
// object's own preset name if it has one. An unknown preset name is
// an error, not a fall-through to built-in fallbacks. The color cycle
// is shared.
func (r *resolver) forObject(preset OptString) (*resolver, error) {
	name, ok := preset.Get()
	if !ok || name == r.preset {
		return r, nil
	}
	if _, err := r.store.Load(name); err != nil {
		return nil, err
	}
	nr := *r
	nr.preset = name
	return &nr, nil
}

// child returns a resolver for a nested container with its own
// overrides (and possibly its own preset). The nested container's
// overrides are nearer than the parent's.
func (r *resolver) child(preset string, o Overrides) *resolver {
	chain := make([]Overrides, 0, len(r.chain)+1)
	if o != nil {
		chain = append(chain, o)
	}
	chain = append(chain, r.chain...)
	if preset == "" {
		preset = r.preset
	}
	return newResolver(r.store, preset, chain)
}

func (r *resolver) lookup(objType, param string) (interface{}, bool) {
	for _, o := range r.chain {
		if v, ok := o.lookup(objType, param); ok {
			return v, true
		}
	}
	v, err := r.store.Resolve(r.preset, objType, param)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (r *resolver) float(objType, param string, o OptFloat, fb float64) float64 {
	if v, ok := o.Get(); ok {
		return v
	}
	if v, ok := r.lookup(objType, param); ok {
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return fb
}

func (r *resolver) integer(objType, param string, o OptInt, fb int) int {
	if v, ok := o.Get(); ok {
		return v
	}
	if v, ok := r.lookup(objType, param); ok {
		if f, ok := toFloat(v); ok {
			return int(f)
		}
	}
	return fb
}

func (r *resolver) boolean(objType, param string, o OptBool, fb bool) bool {
	if v, ok := o.Get(); ok {
		return v
	}
	if v, ok := r.lookup(objType, param); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fb
}

func (r *resolver) str(objType, param string, o OptString, fb string) string {
	if v, ok := o.Get(); ok {
		return v
	}
	if v, ok := r.lookup(objType, param); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fb
}

// colorVal resolves a color parameter. The style value "cycle" takes
// the next figure cycle color; a "same as <param>" sentinel resolves
// to fb, which call sites pass as the already-resolved related
// parameter.
func (r *resolver) colorVal(objType, param string, o OptColor, fb color.Color) color.Color {
	if c, ok := o.Get(); ok {
		return c
	}
	v, ok := r.lookup(objType, param)
	if !ok {
		return fb
	}
	switch cv := v.(type) {
	case color.Color:
		return cv
	case string:
		if cv == "cycle" {
			return r.cycle.take()
		}
		if _, ok := style.SameAs(cv); ok {
			return fb
		}
		if c, ok := parseColor(cv); ok {
			return c
		}
	}
	return fb
}
