// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package style loads and resolves named style presets.
//
// A preset is a flat table mapping an object type name ("Curve",
// "Figure", ...) to parameter defaults. Presets are loaded from YAML
// files: user-defined presets from the custom_styles directory under
// the user configuration directory, falling back to the presets
// bundled with the library. Once loaded a preset is immutable; a
// based_on key is applied copy-then-override at load time and leaves
// no live inheritance link.
//
// The process-wide default preset name is persisted to the user
// configuration directory. It is read once at first use and cached
// for the process lifetime; the cache is not safe for concurrent
// mutation.
package style

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yml
var bundled embed.FS

const (
	// Plain is the reserved preset every other preset falls back
	// to for parameters it does not define.
	Plain = "plain"

	// Passthrough is the reserved preset name that defines no
	// parameters at all, deferring entirely to the library's
	// built-in fallbacks. It always loads.
	Passthrough = "default"
)

// NotFoundError reports a preset name that exists neither as a
// user-defined nor as a bundled style.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("style: no style named %q", e.Name)
}

// Preset is a loaded style: object type name to parameter table.
type Preset struct {
	Name   string
	Tables map[string]map[string]interface{}
}

// Lookup returns the preset's value for (objectType, param) and
// whether it is present.
func (p *Preset) Lookup(objectType, param string) (interface{}, bool) {
	t, ok := p.Tables[objectType]
	if !ok {
		return nil, false
	}
	v, ok := t[param]
	return v, ok
}

// SameAs reports whether a preset value is the "inherit from related
// parameter" sentinel ("same as <param>") and, if so, which parameter
// it refers to.
func SameAs(v interface{}) (param string, ok bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "same as ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "same as ")), true
}

// Store loads presets and answers default-value queries. The zero
// value is not usable; use NewStore.
type Store struct {
	configDir string
	cache     map[string]*Preset
	cfg       *config
}

// NewStore returns a Store rooted at the user configuration
// directory. The directory is created on first write, not here.
func NewStore() *Store {
	dir := ""
	if base, err := os.UserConfigDir(); err == nil {
		dir = filepath.Join(base, "figkit")
	}
	return NewStoreAt(dir)
}

// NewStoreAt returns a Store rooted at dir. Tests use this to avoid
// touching the real user configuration.
func NewStoreAt(dir string) *Store {
	return &Store{
		configDir: dir,
		cache:     make(map[string]*Preset),
		cfg:       newConfig(dir),
	}
}

func (s *Store) customDir() string {
	return filepath.Join(s.configDir, "custom_styles")
}

// CustomPath returns the path the named user-defined preset is (or
// would be) stored at.
func (s *Store) CustomPath(name string) string {
	return filepath.Join(s.customDir(), name+".yml")
}

// Exists reports whether name would load.
func (s *Store) Exists(name string) bool {
	_, err := s.Load(name)
	return err == nil
}

// Load returns the preset with the given name, reading it from disk
// or from the bundled presets on first use. It returns a
// *NotFoundError if the name is unknown.
func (s *Store) Load(name string) (*Preset, error) {
	if p, ok := s.cache[name]; ok {
		return p, nil
	}
	p, err := s.load(name, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	s.cache[name] = p
	return p, nil
}

func (s *Store) load(name string, seen map[string]bool) (*Preset, error) {
	if name == Passthrough {
		return &Preset{Name: name, Tables: map[string]map[string]interface{}{}}, nil
	}
	if seen[name] {
		return nil, fmt.Errorf("style: %q: based_on cycle", name)
	}
	seen[name] = true

	raw, err := s.read(name)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("style: %q: %v", name, err)
	}
	basedOn := ""
	tables := make(map[string]map[string]interface{})
	for typ, v := range doc {
		if typ == "based_on" {
			basedOn, _ = v.(string)
			continue
		}
		t, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("style: %q: %s is not a parameter table", name, typ)
		}
		tables[typ] = t
	}

	p := &Preset{Name: name, Tables: tables}
	if basedOn != "" {
		base, err := s.load(basedOn, seen)
		if err != nil {
			return nil, err
		}
		p, err = overlay(base, p)
		if err != nil {
			return nil, fmt.Errorf("style: %q: %v", name, err)
		}
		p.Name = name
	}
	return p, nil
}

// overlay deep-copies base and applies over's tables on top of it, so
// the overlaid preset shares no values (including list values) with
// its base.
func overlay(base, over *Preset) (*Preset, error) {
	out := &Preset{Tables: make(map[string]map[string]interface{})}
	if err := deepcopy.Copy(&out.Tables, base.Tables); err != nil {
		return nil, err
	}
	for typ, t := range over.Tables {
		nt, ok := out.Tables[typ]
		if !ok {
			nt = make(map[string]interface{}, len(t))
			out.Tables[typ] = nt
		}
		for k, v := range t {
			nt[k] = v
		}
	}
	return out, nil
}

// read returns the raw YAML for name, preferring a user-defined file
// over the bundled preset of the same name.
func (s *Store) read(name string) ([]byte, error) {
	if s.configDir != "" {
		b, err := os.ReadFile(filepath.Join(s.customDir(), name+".yml"))
		if err == nil {
			return b, nil
		}
	}
	b, err := bundled.ReadFile("presets/" + name + ".yml")
	if err != nil {
		return nil, &NotFoundError{Name: name}
	}
	return b, nil
}

// Resolve returns the default value for (objectType, param) under the
// named preset. A parameter the preset does not define (for example
// one added to the library after the preset was authored) falls back
// to the plain preset; a parameter missing there too resolves to nil
// with no error. Only an unknown preset name is an error.
func (s *Store) Resolve(preset, objectType, param string) (interface{}, error) {
	p, err := s.Load(preset)
	if err != nil {
		return nil, err
	}
	if v, ok := p.Lookup(objectType, param); ok {
		return v, nil
	}
	if preset == Plain || preset == Passthrough {
		return nil, nil
	}
	plain, err := s.Load(Plain)
	if err != nil {
		return nil, nil
	}
	v, _ := plain.Lookup(objectType, param)
	return v, nil
}

// Default returns the process-wide default preset name, reading the
// user configuration on first use.
func (s *Store) Default() string {
	return s.cfg.defaultStyle()
}

// SetDefault sets and persists the process-wide default preset name.
// The name must load.
func (s *Store) SetDefault(name string) error {
	if _, err := s.Load(name); err != nil {
		return err
	}
	return s.cfg.setDefaultStyle(name)
}

// Reload drops the preset cache and re-reads the user configuration.
func (s *Store) Reload() {
	s.cache = make(map[string]*Preset)
	s.cfg = newConfig(s.configDir)
}

// Save writes a user-defined preset to the custom styles directory,
// creating it if needed. It invalidates any cached copy of the name.
func (s *Store) Save(p *Preset) error {
	if p.Name == "" || p.Name == Passthrough {
		return fmt.Errorf("style: cannot save preset with reserved name %q", p.Name)
	}
	if err := os.MkdirAll(s.customDir(), 0o777); err != nil {
		return err
	}
	b, err := yaml.Marshal(p.Tables)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.customDir(), p.Name+".yml"), b, 0o666); err != nil {
		return err
	}
	delete(s.cache, p.Name)
	return nil
}

// Delete removes a user-defined preset file. Bundled presets cannot
// be deleted; deleting a name that shadows a bundled preset reveals
// the bundled one again.
func (s *Store) Delete(name string) error {
	err := os.Remove(filepath.Join(s.customDir(), name+".yml"))
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Name: name}
		}
		return err
	}
	delete(s.cache, name)
	return nil
}

// List returns the bundled and the user-defined preset names, each
// sorted.
func (s *Store) List() (builtin, custom []string) {
	ents, err := bundled.ReadDir("presets")
	if err == nil {
		for _, e := range ents {
			builtin = append(builtin, strings.TrimSuffix(e.Name(), ".yml"))
		}
	}
	ents, err = os.ReadDir(s.customDir())
	if err == nil {
		for _, e := range ents {
			if strings.HasSuffix(e.Name(), ".yml") {
				custom = append(custom, strings.TrimSuffix(e.Name(), ".yml"))
			}
		}
	}
	sort.Strings(builtin)
	sort.Strings(custom)
	return builtin, custom
}
