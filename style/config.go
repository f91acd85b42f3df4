// Copyright 2024 The figkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// config holds the persisted library configuration: currently just
// the default style name. It is read lazily on first use and cached;
// it is not safe for concurrent mutation.
type config struct {
	dir    string
	v      *viper.Viper
	loaded bool
}

func newConfig(dir string) *config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetDefault("default_style", Plain)
	return &config{dir: dir, v: v}
}

func (c *config) ensure() {
	if c.loaded {
		return
	}
	c.loaded = true
	if c.dir == "" {
		return
	}
	// A missing config file just means defaults.
	_ = c.v.ReadInConfig()
}

func (c *config) defaultStyle() string {
	c.ensure()
	name := c.v.GetString("default_style")
	if name == "" {
		return Plain
	}
	return name
}

func (c *config) setDefaultStyle(name string) error {
	c.ensure()
	c.v.Set("default_style", name)
	if c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o777); err != nil {
		return err
	}
	return c.v.WriteConfigAs(filepath.Join(c.dir, "config.yaml"))
}
