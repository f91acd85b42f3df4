// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"errors"
	"fmt"
)

// errNoMinimum reports a fit whose objective stayed non-finite.
var errNoMinimum = errors.New("objective did not reach a finite minimum")

// OverlapError reports a grid placement whose span intersects an
// already-occupied span. The grid is left unmodified.
type OverlapError struct {
	Row, Col, RowSpan, ColSpan int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("figkit: span (%d,%d,%d,%d) overlaps an occupied cell",
		e.Row, e.Col, e.RowSpan, e.ColSpan)
}

// OutOfBoundsError reports a grid placement whose span does not fit
// inside the grid. The grid is left unmodified.
type OutOfBoundsError struct {
	Row, Col, RowSpan, ColSpan int
	Rows, Cols                 int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("figkit: span (%d,%d,%d,%d) outside %dx%d grid",
		e.Row, e.Col, e.RowSpan, e.ColSpan, e.Rows, e.Cols)
}

// GridInUseError reports a resize that would drop occupied cells. The
// grid is left unmodified.
type GridInUseError struct {
	Rows, Cols int // requested dimensions
}

func (e *GridInUseError) Error() string {
	return fmt.Sprintf("figkit: cannot resize to %dx%d: occupied cells would fall outside the grid",
		e.Rows, e.Cols)
}

// MismatchedDataError reports an operation between data objects whose
// shapes are incompatible, such as arithmetic between curves with
// differing sample points. No partial result is produced.
type MismatchedDataError struct {
	Op     string
	Detail string
}

func (e *MismatchedDataError) Error() string {
	return fmt.Sprintf("figkit: %s: %s", e.Op, e.Detail)
}

// FitConvergenceError reports that the fitting backend failed to
// converge. The backend's diagnostic is preserved and available via
// Unwrap.
type FitConvergenceError struct {
	Model string
	Err   error
}

func (e *FitConvergenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("figkit: %s fit did not converge", e.Model)
	}
	return fmt.Sprintf("figkit: %s fit did not converge: %v", e.Model, e.Err)
}

func (e *FitConvergenceError) Unwrap() error { return e.Err }

func mismatched(op, format string, args ...interface{}) *MismatchedDataError {
	return &MismatchedDataError{Op: op, Detail: fmt.Sprintf(format, args...)}
}
