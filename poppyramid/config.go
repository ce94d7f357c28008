// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/settings"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is the settings file. Besides the host's object groups, it
// can name the category columns and assign roles to measure columns
// when the input's column names don't follow the usual convention.
type Config struct {
	Columns struct {
		Age    string `yaml:"age"`
		Gender string `yaml:"gender"`
	} `yaml:"columns"`

	// Roles maps measure column names to their roles.
	Roles map[string][]dataview.Role `yaml:"roles"`

	// Highlights maps measure column names to the column holding
	// their highlight sub-values.
	Highlights map[string]string `yaml:"highlights"`

	Objects settings.Objects `yaml:",inline"`
}

func parseConfig(data []byte) (*Config, error) {
	cfg := new(Config)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	return cfg, nil
}

// layout returns the column layout of t, starting from what
// dataview.InferLayout guesses and overriding it with c.
func (c *Config) layout(t *table.Table) dataview.Layout {
	l := dataview.InferLayout(t)
	if c.Columns.Age != "" {
		l.Age = c.Columns.Age
	}
	if c.Columns.Gender != "" {
		l.Gender = c.Columns.Gender
	}

	have := make(map[string]bool)
	for i := range l.Measures {
		m := &l.Measures[i]
		have[m.Column] = true
		if roles, ok := c.Roles[m.Column]; ok {
			m.Roles = roles
		}
		if h, ok := c.Highlights[m.Column]; ok {
			m.Highlight = h
		}
	}
	// Columns the config assigns roles to are measures even if
	// inference skipped them, in table order.
	for _, col := range t.Columns() {
		roles, ok := c.Roles[col]
		if !ok || have[col] || col == l.Age || col == l.Gender {
			continue
		}
		l.Measures = append(l.Measures, dataview.Measure{Column: col, Roles: roles, Highlight: c.Highlights[col]})
	}
	return l
}

// load reads the file or URL at path. "-" means standard input.
func load(ctx context.Context, fs afs.Service, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	if !strings.Contains(path, "://") {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		path = abs
	}
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func loadConfig(ctx context.Context, fs afs.Service, path string) (*Config, error) {
	if path == "" {
		return new(Config), nil
	}
	data, err := load(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// loadTable reads a CSV or XLSX table. Standard input is always CSV.
func loadTable(ctx context.Context, fs afs.Service, path, sheet string) (*table.Table, error) {
	data, err := load(ctx, fs, path)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(data)
	if sheet != "" {
		t, err := dataview.ReadXLSX(r, sheet, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return t, nil
	}
	name := path
	if name == "-" {
		name = "stdin.csv"
	}
	return dataview.Read(name, r)
}
