// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figkit

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name  string
		cells [][]string
		ok    bool
	}{
		{"empty", nil, false},
		{"emptyRow", [][]string{{}}, false},
		{"single", [][]string{{"a"}}, true},
		{"rect", [][]string{{"a", "b"}, {"c", "d"}}, true},
		{"ragged", [][]string{{"a", "b"}, {"c"}}, false},
	}
	for _, test := range tests {
		_, err := NewTable(test.cells)
		if (err == nil) != test.ok {
			t.Errorf("%s: NewTable error = %v, want ok = %v", test.name, err, test.ok)
		}
		if err != nil {
			var merr *MismatchedDataError
			if !errors.As(err, &merr) {
				t.Errorf("%s: error type = %T", test.name, err)
			}
		}
	}
}

func TestTableLabels(t *testing.T) {
	tb, err := NewTable([][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := tb.SetColLabels("x"); err == nil {
		t.Fatalf("SetColLabels accepted 1 label for 2 columns")
	}
	if err := tb.SetColLabels("x", "y"); err != nil {
		t.Fatalf("SetColLabels: %v", err)
	}
	if err := tb.SetRowLabels("a", "b"); err == nil {
		t.Fatalf("SetRowLabels accepted 2 labels for 3 rows")
	}
	if err := tb.SetRowLabels("a", "b", "c"); err != nil {
		t.Fatalf("SetRowLabels: %v", err)
	}
}

func TestTableCopyIsDeep(t *testing.T) {
	tb, err := NewTable([][]string{{"1", "2"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := tb.SetColLabels("x", "y"); err != nil {
		t.Fatal(err)
	}
	cp := tb.Copy()
	cp.Cells[0][0] = "changed"
	cp.colLabels[0] = "changed"
	if tb.Cells[0][0] != "1" || tb.colLabels[0] != "x" {
		t.Fatalf("Copy shares data with the original")
	}
}

func TestTableRender(t *testing.T) {
	tb, err := NewTable([][]string{{"1.0", "2.0"}, {"3.0", "4.0"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := tb.SetColLabels("slope", "offset"); err != nil {
		t.Fatal(err)
	}
	if err := tb.SetRowLabels("run 1", "run 2"); err != nil {
		t.Fatal(err)
	}
	tb.Style.Location = String("lower right")

	f := NewFigure()
	f.SetStore(testStore(t))
	c, _ := NewCurve([]float64{0, 1}, []float64{0, 1})
	f.AddElements(c, tb)

	var buf bytes.Buffer
	if err := f.SaveTo(&buf, "png"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("render wrote nothing")
	}
}
