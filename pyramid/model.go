// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pyramid computes the model and geometry of a population
// pyramid: a back-to-back horizontal bar chart of one measure split
// by gender across a shared axis of age bands.
//
// The host's data view is turned into a Model by Rebuild, which also
// carries selection over from the previous model. Layout then turns a
// Model into a Frame, which is everything a renderer needs: the age
// labels in axis order and, for each side, bar lengths and opacities.
package pyramid

import (
	"fmt"
	"sort"

	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/identity"
)

// A DataPoint is one (age, gender) observation.
type DataPoint struct {
	Age    string
	Gender string

	// Value and Reference are the primary and reference
	// measures. Null or unmapped measures are 0.
	Value, Reference float64

	// HighlightValue and HighlightReference are the cross-filtered
	// parts of Value and Reference, or 0.
	HighlightValue, HighlightReference float64

	// Highlighted is set if either highlight is present.
	Highlighted bool

	// Selected is the only field that changes after Rebuild.
	Selected bool

	// Identity is derived from the age category, so both genders
	// of an age band share it.
	Identity identity.ID

	SpecificIdentity identity.ID
}

func (p *DataPoint) String() string {
	return fmt.Sprintf("%s/%s=%v", p.Age, p.Gender, p.Value)
}

// A Model is the list of data points of one update.
type Model struct {
	Points []*DataPoint

	// IsHighlighted is set if any point is highlighted.
	IsHighlighted bool
}

// SaveSelection returns the selected flag of every point keyed by
// identity key. Where points share a key the last one wins.
func (m *Model) SaveSelection() map[string]bool {
	saved := make(map[string]bool)
	if m == nil {
		return saved
	}
	for _, p := range m.Points {
		saved[p.Identity.Key()] = p.Selected
	}
	return saved
}

// RestoreSelection sets the selected flag of every point from saved.
// Points whose key is not in saved become unselected.
func (m *Model) RestoreSelection(saved map[string]bool) {
	for _, p := range m.Points {
		p.Selected = saved[p.Identity.Key()]
	}
}

// Keys returns the sorted, distinct identity keys of the selected
// points.
func (m *Model) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range m.Points {
		k := p.Identity.Key()
		if p.Selected && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Rebuild builds the model for view, replacing prev.
//
// If hasSelection is set, each new point takes the selected flag of
// the point in prev with the same identity. Otherwise every new point
// is unselected.
//
// If view is malformed, Rebuild returns prev unchanged (or an empty
// model if prev is nil) along with an error wrapping a
// *dataview.InvalidInputError.
func Rebuild(prev *Model, view *dataview.DataView, ids identity.Factory, hasSelection bool) (*Model, error) {
	if err := view.Validate(); err != nil {
		if prev == nil {
			prev = new(Model)
		}
		return prev, fmt.Errorf("rebuilding pyramid: %w", err)
	}
	saved := prev.SaveSelection()

	ages, genders := &view.Categories[0], &view.Categories[1]
	a := dataview.NewAccessor(view.Values)
	m := &Model{Points: make([]*DataPoint, 0, view.Len())}
	for i := range ages.Values {
		id := ids.CreateIdentity(ages, i)
		hv, okv := a.Highlight(dataview.RoleValues, i)
		hr, okr := a.Highlight(dataview.RoleReference, i)
		// Null measures read as 0.
		v, _ := a.Value(dataview.RoleValues, i)
		r, _ := a.Value(dataview.RoleReference, i)
		p := &DataPoint{
			Age:                ages.Values[i],
			Gender:             genders.Values[i],
			Value:              v,
			Reference:          r,
			HighlightValue:     hv,
			HighlightReference: hr,
			Highlighted:        okv || okr,
			Identity:           id,
			SpecificIdentity:   id,
		}
		if p.Highlighted {
			m.IsHighlighted = true
		}
		m.Points = append(m.Points, p)
	}

	if hasSelection {
		m.RestoreSelection(saved)
	}
	return m, nil
}
