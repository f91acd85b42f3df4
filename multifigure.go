// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"github.com/figkit/figkit/style"
)

// A MultiFigure arranges Figures (and nested MultiFigures) on a grid.
// It is an explicit tree: a container can never appear inside its own
// subtree.
type MultiFigure struct {
	Title string

	// Width and Height override the style's figure size, in inches.
	Width, Height OptFloat

	// GeneralLegend collects the labels of every element in the tree
	// into one combined legend below the grid, instead of per-figure
	// legends.
	GeneralLegend bool

	// RefLabels annotates cells "a)", "b)", ... in row-major order of
	// their top-left corners.
	RefLabels bool

	grid      *Grid
	styleName string
	overrides Overrides
	store     *style.Store
}

// NewMultiFigure returns an empty rows x cols container.
func NewMultiFigure(rows, cols int) (*MultiFigure, error) {
	g, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	return &MultiFigure{grid: g, overrides: make(Overrides)}, nil
}

// FromRow arranges cells left to right on a single row. Nil cells
// leave their column empty.
func FromRow(cells ...Cell) (*MultiFigure, error) {
	return FromGrid(1, len(cells), cells...)
}

// FromStack arranges cells top to bottom in a single column. Nil
// cells leave their row empty.
func FromStack(cells ...Cell) (*MultiFigure, error) {
	return FromGrid(len(cells), 1, cells...)
}

// FromGrid arranges cells row-major on a rows x cols grid. Nil cells
// leave their span empty; extra cells are an error.
func FromGrid(rows, cols int, cells ...Cell) (*MultiFigure, error) {
	m, err := NewMultiFigure(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(cells) > rows*cols {
		return nil, mismatched("FromGrid", "%d cells for %dx%d grid", len(cells), rows, cols)
	}
	for i, c := range cells {
		if c == nil {
			continue
		}
		if err := m.Place(c, i/cols, i%cols, 1, 1); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Grid returns the container's layout grid, for ratio and padding
// adjustments.
func (m *MultiFigure) Grid() *Grid { return m.grid }

// Place puts content on the span (row, col, rowSpan, colSpan). Beyond
// the grid's own placement errors, placing a container inside itself
// or its own subtree is rejected.
func (m *MultiFigure) Place(content Cell, row, col, rowSpan, colSpan int) error {
	if nested, ok := content.(*MultiFigure); ok && nested.inSubtree(m) {
		return mismatched("Place", "container cannot contain itself")
	}
	return m.grid.Place(content, row, col, rowSpan, colSpan)
}

// inSubtree reports whether target is m or any container below m.
// Iterative walk; the tree is acyclic by construction.
func (m *MultiFigure) inSubtree(target *MultiFigure) bool {
	stack := []*MultiFigure{m}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		for i := range cur.grid.places {
			if nested, ok := cur.grid.places[i].content.(*MultiFigure); ok {
				stack = append(stack, nested)
			}
		}
	}
	return false
}

// Remove vacates an exact span. See Grid.Remove for the exact-match
// rule.
func (m *MultiFigure) Remove(row, col, rowSpan, colSpan int) bool {
	return m.grid.Remove(row, col, rowSpan, colSpan)
}

// Resize changes the grid dimensions. See Grid.Resize.
func (m *MultiFigure) Resize(rows, cols int) error {
	return m.grid.Resize(rows, cols)
}

// SetStore directs the container at an alternate style store.
func (m *MultiFigure) SetStore(s *style.Store) { m.store = s }

func (m *MultiFigure) storeFor() *style.Store {
	if m.store != nil {
		return m.store
	}
	return defaultStore()
}

// SetStyle selects the named style preset for the container and, by
// cascade, everything below it. Unknown names are an error and leave
// the container unchanged.
func (m *MultiFigure) SetStyle(name string) error {
	if _, err := m.storeFor().Load(name); err != nil {
		return err
	}
	m.styleName = name
	return nil
}

// StyleName returns the container's preset name, or "" if it uses the
// process default.
func (m *MultiFigure) StyleName() string { return m.styleName }

// SetOverride sets a container-level parameter override. It applies
// to every matching object in the subtree unless a nearer container
// or the object itself sets the parameter.
func (m *MultiFigure) SetOverride(objectType, param string, value interface{}) {
	m.overrides.Set(objectType, param, value)
}

// ClearOverride removes a container-level override.
func (m *MultiFigure) ClearOverride(objectType, param string) {
	m.overrides.Clear(objectType, param)
}

func (m *MultiFigure) effectiveStyle(s *style.Store) string {
	if m.styleName != "" {
		return m.styleName
	}
	return s.Default()
}

func (m *MultiFigure) resolver(s *style.Store, parent *resolver) *resolver {
	if parent == nil {
		return newResolver(s, m.effectiveStyle(s), []Overrides{m.overrides})
	}
	return parent.child(m.styleName, m.overrides)
}

// legendEntries collects (label, thumbnail) pairs from every figure in
// the subtree, in reference order, recursing into nested containers
// unless a nested container declares its own general legend. Labels
// are not deduplicated.
func (m *MultiFigure) legendEntries(s *style.Store, r *resolver) ([]legendEntry, error) {
	var entries []legendEntry
	for _, p := range m.grid.ordered() {
		switch c := p.content.(type) {
		case *Figure:
			fr := c.resolver(s, r)
			for _, e := range c.elements {
				_, les, err := e.plotters(fr)
				if err != nil {
					return nil, err
				}
				entries = append(entries, les...)
			}
		case *MultiFigure:
			if c.GeneralLegend {
				continue
			}
			les, err := c.legendEntries(s, c.resolver(s, r))
			if err != nil {
				return nil, err
			}
			entries = append(entries, les...)
		}
	}
	return entries, nil
}
