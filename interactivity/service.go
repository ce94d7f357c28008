// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interactivity

import "github.com/aclements/popviz/pyramid"

// A Handler applies selection requests. Behavior calls it in response
// to clicks.
type Handler interface {
	// Apply applies a consumed click.
	Apply(ev Event)
	HandleClearSelection()
}

// Service holds the host's selection and keeps the Selected flag of
// the bound points in step with it.
type Service struct {
	state  State
	points []*pyramid.DataPoint
}

// NewService returns a Service with nothing selected.
func NewService() *Service {
	return &Service{}
}

// HasSelection reports whether anything is selected.
func (s *Service) HasSelection() bool {
	return s.state.HasSelection()
}

// State returns the current selection.
func (s *Service) State() State {
	return s.state
}

// HandleClearSelection deselects everything.
func (s *Service) HandleClearSelection() {
	s.set(State{})
}

// Apply sets the selection to the state that follows ev on the bound
// points.
func (s *Service) Apply(ev Event) {
	s.set(Transition(s.state, ev, s.points))
}

// Keys returns the selected identity keys in sorted order.
func (s *Service) Keys() []string {
	return s.state.Keys()
}

// Restore replaces the selection with keys, for example ones saved by
// Keys in an earlier session.
func (s *Service) Restore(keys []string) {
	s.set(NewState(keys...))
}

// Mark sets the Selected flag of points from the selection without
// binding them.
func (s *Service) Mark(points []*pyramid.DataPoint) {
	for _, p := range points {
		p.Selected = s.state.Contains(p.Identity.Key())
	}
}

// Bind makes points the bound points, updates their Selected flags
// from the selection and binds b's click handlers to s.
func (s *Service) Bind(points []*pyramid.DataPoint, b *Behavior, opts Options) {
	s.points = points
	s.sync()
	opts.Points = points
	b.BindEvents(opts, s)
}

func (s *Service) set(st State) {
	s.state = st
	s.sync()
}

func (s *Service) sync() {
	s.Mark(s.points)
}
