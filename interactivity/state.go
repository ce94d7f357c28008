// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interactivity manages which data points of a chart are
// selected.
//
// The selection is a set of identity keys. Points sharing an identity
// are selected together. A State is an immutable snapshot of that set
// and Transition computes the state that follows a click. Service
// keeps the current state on behalf of the host, and Behavior turns
// clicks on chart elements into Service calls.
package interactivity

import (
	"fmt"
	"sort"

	"github.com/aclements/popviz/pyramid"
)

// A State is a set of selected identity keys. The zero State has
// nothing selected. States are never modified in place.
type State struct {
	keys map[string]bool
}

// NewState returns the state with keys selected.
func NewState(keys ...string) State {
	return State{}.with(keys)
}

// HasSelection reports whether anything is selected.
func (st State) HasSelection() bool {
	return len(st.keys) > 0
}

// Contains reports whether key is selected.
func (st State) Contains(key string) bool {
	return st.keys[key]
}

// Keys returns the selected keys in sorted order.
func (st State) Keys() []string {
	keys := make([]string, 0, len(st.keys))
	for k := range st.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (st State) String() string {
	if !st.HasSelection() {
		return "NoSelection"
	}
	return fmt.Sprintf("HasSelection%v", st.Keys())
}

func (st State) with(keys []string) State {
	m := make(map[string]bool, len(st.keys)+len(keys))
	for k := range st.keys {
		m[k] = true
	}
	for _, k := range keys {
		if k != "" {
			m[k] = true
		}
	}
	return State{m}
}

// toggle applies a click on key. The key ends up selected if it was
// not, or if the click replaces a selection of several keys. A
// non-multi click drops every other key.
func (st State) toggle(key string, multi bool) State {
	if key == "" {
		return st
	}
	selected := !st.keys[key] || (!multi && len(st.keys) > 1)
	next := State{}
	if multi {
		next = st.with(nil)
	}
	if selected {
		return next.with([]string{key})
	}
	delete(next.keys, key)
	return next
}

// selectAll adds keys, first dropping the current selection unless
// multi is set. Unlike toggle it never deselects.
func (st State) selectAll(keys []string, multi bool) State {
	if !multi {
		st = State{}
	}
	return st.with(keys)
}

// EventKind identifies what was clicked.
type EventKind int

const (
	// PointClick is a click on a value bar.
	PointClick EventKind = iota
	// CategoryClick is a click on an age band label.
	CategoryClick
	// AxisLabelClick is a click on a gender caption.
	AxisLabelClick
	// BackgroundClick is a click on the chart background.
	BackgroundClick
)

var eventNames = []string{"point", "category", "axisLabel", "background"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// ParseEventKind is the inverse of EventKind.String.
func ParseEventKind(s string) (EventKind, error) {
	for i, name := range eventNames {
		if name == s {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// An Event is a click on the chart.
type Event struct {
	Kind EventKind

	// Index is the position of the clicked point among the bound
	// points, for PointClick.
	Index int

	// Label is the age band for CategoryClick and the gender
	// filter value for AxisLabelClick.
	Label string

	// Multi is set if the click extends the selection
	// (ctrl-click).
	Multi bool
}

// Transition returns the state that follows ev, given the points the
// click handlers were bound to.
func Transition(st State, ev Event, points []*pyramid.DataPoint) State {
	switch ev.Kind {
	case PointClick:
		if ev.Index < 0 || ev.Index >= len(points) {
			return st
		}
		return st.toggle(points[ev.Index].Identity.Key(), ev.Multi)
	case CategoryClick:
		return st.selectAll(keys(matching(points, byAge(ev.Label))), ev.Multi)
	case AxisLabelClick:
		return st.selectAll(keys(matching(points, byGender(ev.Label))), ev.Multi)
	case BackgroundClick:
		return State{}
	}
	return st
}

func byAge(age string) func(*pyramid.DataPoint) bool {
	return func(p *pyramid.DataPoint) bool { return p.Age == age }
}

func byGender(gender string) func(*pyramid.DataPoint) bool {
	return func(p *pyramid.DataPoint) bool { return p.Gender == gender }
}

func matching(points []*pyramid.DataPoint, keep func(*pyramid.DataPoint) bool) []*pyramid.DataPoint {
	var out []*pyramid.DataPoint
	for _, p := range points {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func keys(points []*pyramid.DataPoint) []string {
	ks := make([]string, len(points))
	for i, p := range points {
		ks[i] = p.Identity.Key()
	}
	return ks
}
