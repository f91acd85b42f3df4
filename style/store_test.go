// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(t.TempDir())
}

func TestLoadBundled(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"plain", "dark", "dim"} {
		p, err := s.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if _, ok := p.Lookup("Curve", "line_width"); !ok {
			t.Errorf("Load(%q): no Curve line_width", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("no-such-style")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Load(no-such-style) = %v, want *NotFoundError", err)
	}
	if nf.Name != "no-such-style" {
		t.Errorf("NotFoundError.Name = %q", nf.Name)
	}
}

func TestPassthroughAlwaysLoads(t *testing.T) {
	s := testStore(t)
	p, err := s.Load(Passthrough)
	if err != nil {
		t.Fatalf("Load(%q): %v", Passthrough, err)
	}
	if len(p.Tables) != 0 {
		t.Errorf("passthrough preset has %d tables, want 0", len(p.Tables))
	}
}

func TestBasedOnIsFlattened(t *testing.T) {
	s := testStore(t)
	dark, err := s.Load("dark")
	if err != nil {
		t.Fatal(err)
	}
	// Inherited from plain, not redefined by dark.
	if v, ok := dark.Lookup("Curve", "line_width"); !ok || v != 2 {
		t.Errorf("dark Curve line_width = %v, %v; want 2 via based_on", v, ok)
	}
	// Overridden by dark.
	if v, _ := dark.Lookup("Figure", "background_color"); v != "#2b2b2b" {
		t.Errorf("dark Figure background_color = %v", v)
	}
}

func TestResolveMissingParamFallsBackToPlain(t *testing.T) {
	s := testStore(t)
	// Write a custom preset that lacks Curve line_width entirely.
	p := &Preset{
		Name: "sparse",
		Tables: map[string]map[string]interface{}{
			"Curve": {"color": "#123456"},
		},
	}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	v, err := s.Resolve("sparse", "Curve", "line_width")
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Errorf("Resolve(sparse, Curve, line_width) = %v, want plain's 2", v)
	}
	// A parameter absent everywhere resolves to nil, not an error.
	v, err = s.Resolve("sparse", "Curve", "no_such_param")
	if err != nil || v != nil {
		t.Errorf("Resolve missing param = %v, %v; want nil, nil", v, err)
	}
}

func TestResolveUnknownPresetErrors(t *testing.T) {
	s := testStore(t)
	_, err := s.Resolve("typo", "Curve", "color")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve(typo, ...) = %v, want *NotFoundError", err)
	}
}

func TestCustomShadowsBundled(t *testing.T) {
	s := testStore(t)
	p := &Preset{
		Name: "plain",
		Tables: map[string]map[string]interface{}{
			"Curve": {"line_width": 9},
		},
	}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	v, err := s.Resolve("plain", "Curve", "line_width")
	if err != nil {
		t.Fatal(err)
	}
	if v != 9 {
		t.Errorf("shadowed plain Curve line_width = %v, want 9", v)
	}
	if err := s.Delete("plain"); err != nil {
		t.Fatal(err)
	}
	v, _ = s.Resolve("plain", "Curve", "line_width")
	if v != 2 {
		t.Errorf("after delete, plain Curve line_width = %v, want 2", v)
	}
}

func TestSaveDeleteList(t *testing.T) {
	s := testStore(t)
	p := &Preset{
		Name:   "mine",
		Tables: map[string]map[string]interface{}{"Curve": {"color": "#000000"}},
	}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	builtin, custom := s.List()
	if !reflect.DeepEqual(builtin, []string{"dark", "dim", "plain"}) {
		t.Errorf("builtin = %v", builtin)
	}
	if !reflect.DeepEqual(custom, []string{"mine"}) {
		t.Errorf("custom = %v", custom)
	}
	if err := s.Delete("mine"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("mine"); err == nil {
		t.Error("second Delete succeeded, want error")
	}
}

func TestSameAs(t *testing.T) {
	for _, test := range []struct {
		v     interface{}
		param string
		ok    bool
	}{
		{"same as color", "color", true},
		{"same as face_color", "face_color", true},
		{"solid", "", false},
		{3, "", false},
	} {
		param, ok := SameAs(test.v)
		if param != test.param || ok != test.ok {
			t.Errorf("SameAs(%v) = %q, %v; want %q, %v", test.v, param, ok, test.param, test.ok)
		}
	}
}

func TestDefaultStylePersistence(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreAt(dir)
	if got := s.Default(); got != Plain {
		t.Fatalf("Default() = %q, want %q", got, Plain)
	}
	if err := s.SetDefault("dark"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config not persisted: %v", err)
	}
	// A fresh store re-reads the persisted value.
	s2 := NewStoreAt(dir)
	if got := s2.Default(); got != "dark" {
		t.Errorf("fresh store Default() = %q, want dark", got)
	}
	// Setting an unknown default fails fast.
	if err := s.SetDefault("missing"); err == nil {
		t.Error("SetDefault(missing) succeeded, want error")
	}
}

func TestReload(t *testing.T) {
	s := testStore(t)
	if _, err := s.Load("plain"); err != nil {
		t.Fatal(err)
	}
	p := &Preset{
		Name:   "plain",
		Tables: map[string]map[string]interface{}{"Curve": {"line_width": 7}},
	}
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	s.Reload()
	v, err := s.Resolve("plain", "Curve", "line_width")
	if err != nil {
		t.Fatal(err)
	}
	if v != 7 {
		t.Errorf("after Reload, plain Curve line_width = %v, want 7", v)
	}
}
