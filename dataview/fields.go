// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataview

import (
	"math"
	"sort"
)

// A FieldIndexMap maps a role to the position of the measure column
// currently holding it. Roles no column claims are absent.
type FieldIndexMap map[Role]int

// Resolve maps every declared role to the column that carries it.
//
// If several columns claim the same role, the last one wins. This is
// intentional: hosts normally prevent it, and when they don't, the
// visual draws something rather than nothing. Use Conflicts to detect
// the situation.
func Resolve(cols []ValueColumn) FieldIndexMap {
	m := make(FieldIndexMap)
	for i, col := range cols {
		for _, role := range Roles {
			if col.Source.Roles[role] {
				m[role] = i
			}
		}
	}
	return m
}

// Conflicts returns, for each role claimed by more than one column,
// the positions of all claiming columns in order. It returns nil if
// every role is claimed at most once.
func Conflicts(cols []ValueColumn) map[Role][]int {
	claims := make(map[Role][]int)
	for i, col := range cols {
		for _, role := range Roles {
			if col.Source.Roles[role] {
				claims[role] = append(claims[role], i)
			}
		}
	}
	var out map[Role][]int
	for role, idx := range claims {
		if len(idx) < 2 {
			continue
		}
		if out == nil {
			out = make(map[Role][]int)
		}
		out[role] = idx
	}
	return out
}

// An Accessor reads measures by role from a set of columns.
type Accessor struct {
	Fields FieldIndexMap
	Cols   []ValueColumn
}

// NewAccessor resolves the roles of cols and returns an Accessor for
// them.
func NewAccessor(cols []ValueColumn) Accessor {
	return Accessor{Resolve(cols), cols}
}

// Value returns the value of role at row i. ok is false if role is
// not mapped, the column has no values, i is out of range, or the
// cell is null. Callers typically treat !ok as 0.
func (a Accessor) Value(role Role, i int) (v float64, ok bool) {
	col, ok := a.column(role)
	if !ok {
		return 0, false
	}
	return cell(col.Values, i)
}

// Highlight is like Value, but reads the highlight sub-array.
func (a Accessor) Highlight(role Role, i int) (v float64, ok bool) {
	col, ok := a.column(role)
	if !ok {
		return 0, false
	}
	return cell(col.Highlights, i)
}

// Mapped reports whether some column carries role.
func (a Accessor) Mapped(role Role) bool {
	_, ok := a.column(role)
	return ok
}

// MappedRoles returns the mapped roles in sorted order.
func (a Accessor) MappedRoles() []Role {
	var roles []Role
	for role := range a.Fields {
		if a.Mapped(role) {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

func (a Accessor) column(role Role) (ValueColumn, bool) {
	idx, ok := a.Fields[role]
	if !ok || idx < 0 || idx >= len(a.Cols) {
		return ValueColumn{}, false
	}
	return a.Cols[idx], true
}

func cell(xs []float64, i int) (float64, bool) {
	if xs == nil || i < 0 || i >= len(xs) || math.IsNaN(xs[i]) {
		return 0, false
	}
	return xs[i], true
}
