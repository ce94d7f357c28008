// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataview

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// HighlightSuffix is appended to a measure column name to name the
// column holding its highlight sub-values.
const HighlightSuffix = " highlight"

// A Layout says how the columns of a table become a DataView.
type Layout struct {
	// Age and Gender name the two category columns.
	Age, Gender string

	// Measures lists the measure columns in host order.
	Measures []Measure
}

// A Measure binds a table column to a set of roles.
type Measure struct {
	Column string
	Roles  []Role

	// Highlight optionally names the column holding this
	// measure's highlight sub-values.
	Highlight string
}

// InferLayout guesses a Layout for t. The category columns are the
// columns named "age" and "gender" (ignoring case). Every other
// numeric column is a measure; a measure whose name matches a role
// name (or "value" for RoleValues) takes that role. A column named
// "<measure> highlight" is the highlight column of <measure>.
func InferLayout(t *table.Table) Layout {
	var l Layout
	cols := t.Columns()
	byLower := make(map[string]string)
	for _, c := range cols {
		byLower[strings.ToLower(c)] = c
	}
	l.Age, l.Gender = byLower["age"], byLower["gender"]

	for _, c := range cols {
		if c == l.Age || c == l.Gender || strings.HasSuffix(strings.ToLower(c), HighlightSuffix) {
			continue
		}
		if !isNumeric(t.Column(c)) {
			continue
		}
		m := Measure{Column: c}
		switch strings.ToLower(c) {
		case string(RoleValues), "value":
			m.Roles = []Role{RoleValues}
		case string(RoleReference):
			m.Roles = []Role{RoleReference}
		}
		if h, ok := byLower[strings.ToLower(c)+HighlightSuffix]; ok {
			m.Highlight = h
		}
		l.Measures = append(l.Measures, m)
	}
	return l
}

// FromTable builds a DataView from the columns of t as described by
// l.
func FromTable(t *table.Table, l Layout) (*DataView, error) {
	v := new(DataView)
	for _, name := range []string{l.Age, l.Gender} {
		labels, err := stringColumn(t, name)
		if err != nil {
			return nil, err
		}
		v.Categories = append(v.Categories, CategoryColumn{
			Source: Source{DisplayName: name},
			Values: labels,
		})
	}

	for _, m := range l.Measures {
		vals, err := floatColumn(t, m.Column)
		if err != nil {
			return nil, err
		}
		col := ValueColumn{
			Source: Source{DisplayName: m.Column, Roles: make(map[Role]bool)},
			Values: vals,
		}
		for _, r := range m.Roles {
			col.Source.Roles[r] = true
		}
		if m.Highlight != "" {
			col.Highlights, err = floatColumn(t, m.Highlight)
			if err != nil {
				return nil, err
			}
		}
		v.Values = append(v.Values, col)
	}
	return v, nil
}

// ToTable returns the rows of v as a table with one column per
// category and measure, followed by each measure's highlight column.
func ToTable(v *DataView) *table.Table {
	b := new(table.Builder)
	for _, c := range v.Categories {
		b.Add(c.Source.Name(), c.Values)
	}
	for _, c := range v.Values {
		vals := c.Values
		if vals == nil {
			vals = NullColumn(v.Len())
		}
		b.Add(c.Source.Name(), vals)
	}
	for _, c := range v.Values {
		if c.Highlights != nil {
			b.Add(c.Source.Name()+HighlightSuffix, c.Highlights)
		}
	}
	return b.Done()
}

// Fprint prints v to w as a table.
func Fprint(w io.Writer, v *DataView) error {
	return table.Fprint(w, ToTable(v))
}

func stringColumn(t *table.Table, name string) ([]string, error) {
	col := t.Column(name)
	if col == nil {
		return nil, &InvalidInputError{Field: name, Reason: "no such column"}
	}
	if s, ok := col.([]string); ok {
		return s, nil
	}
	rv := reflect.ValueOf(col)
	out := make([]string, rv.Len())
	for i := range out {
		out[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return out, nil
}

func floatColumn(t *table.Table, name string) ([]float64, error) {
	col := t.Column(name)
	if col == nil {
		return nil, &InvalidInputError{Field: name, Reason: "no such column"}
	}
	if !isNumeric(col) {
		return nil, &InvalidInputError{Field: name, Reason: fmt.Sprintf("column of %T is not numeric", col)}
	}
	var out []float64
	slice.Convert(&out, col)
	return out, nil
}

func isNumeric(col table.Slice) bool {
	if col == nil {
		return false
	}
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
