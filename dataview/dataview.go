// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataview models the categorical data a host hands to a
// visual on every update.
//
// A DataView has category columns (for a population pyramid, the age
// band and the gender) and any number of measure columns. Each
// measure column is tagged with a set of roles that say what the
// measure means to the visual, independently of where the column
// appears. Hosts do not keep measure columns in a stable order, so
// visuals must look measures up by role on every update (see
// Resolve).
//
// A measure column may also carry a highlight sub-array, which holds
// the part of each value that survives a cross-filter applied
// elsewhere in the host.
package dataview

import (
	"fmt"
	"math"
)

// Role is the logical name of a measure, independent of its column
// position.
type Role string

const (
	// RoleValues is the primary measure drawn as solid bars.
	RoleValues Role = "values"
	// RoleReference is the comparison measure drawn as a
	// reference line.
	RoleReference Role = "reference"
)

// Roles lists every role a visual declares, in declaration order.
var Roles = []Role{RoleValues, RoleReference}

// Source describes where a column came from.
type Source struct {
	// DisplayName is the user-facing column name.
	DisplayName string

	// QueryName identifies the column in the host's query. It
	// defaults to DisplayName.
	QueryName string

	// Roles is the set of roles the user assigned to this column.
	Roles map[Role]bool
}

// Name returns the query name of s, falling back to its display
// name.
func (s Source) Name() string {
	if s.QueryName != "" {
		return s.QueryName
	}
	return s.DisplayName
}

// A CategoryColumn holds one label per row.
type CategoryColumn struct {
	Source Source
	Values []string
}

// A ValueColumn holds one measure per row.
//
// Values and Highlights use NaN for a null cell. A nil Values or
// Highlights slice means the host did not supply that array at all.
type ValueColumn struct {
	Source     Source
	Values     []float64
	Highlights []float64
}

// A DataView is the categorical data for one update.
type DataView struct {
	// Categories holds the category columns. A population
	// pyramid uses Categories[0] for the age band and
	// Categories[1] for the gender.
	Categories []CategoryColumn

	// Values holds the measure columns in host order.
	Values []ValueColumn
}

// Len returns the number of rows in v.
func (v *DataView) Len() int {
	if v == nil || len(v.Categories) == 0 {
		return 0
	}
	return len(v.Categories[0].Values)
}

// Validate checks that v is well formed for a two-category visual. It
// returns an *InvalidInputError describing the first problem found.
func (v *DataView) Validate() error {
	if v == nil {
		return &InvalidInputError{Field: "dataView", Reason: "missing"}
	}
	if len(v.Categories) < 2 {
		return &InvalidInputError{
			Field:  "categories",
			Reason: fmt.Sprintf("need 2 category columns, got %d", len(v.Categories)),
		}
	}
	n := v.Len()
	for i, c := range v.Categories[1:] {
		if len(c.Values) != n {
			return &InvalidInputError{
				Field:  c.Source.Name(),
				Reason: fmt.Sprintf("category column %d has %d rows; want %d", i+1, len(c.Values), n),
			}
		}
	}
	for _, c := range v.Values {
		if c.Values != nil && len(c.Values) != n {
			return &InvalidInputError{
				Field:  c.Source.Name(),
				Reason: fmt.Sprintf("%d values for %d rows", len(c.Values), n),
			}
		}
		if c.Highlights != nil && len(c.Highlights) != n {
			return &InvalidInputError{
				Field:  c.Source.Name(),
				Reason: fmt.Sprintf("%d highlights for %d rows", len(c.Highlights), n),
			}
		}
	}
	return nil
}

// NullColumn returns a column of n null cells.
func NullColumn(n int) []float64 {
	col := make([]float64, n)
	nan := math.NaN()
	for i := range col {
		col[i] = nan
	}
	return col
}
