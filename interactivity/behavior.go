// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interactivity

import (
	"github.com/aclements/popviz/pyramid"
	"github.com/aclements/popviz/settings"
)

// Options are the parameters of Behavior.BindEvents.
type Options struct {
	// Points are the selectable points, in the order the
	// renderer indexes them.
	Points []*pyramid.DataPoint

	// Settings supplies the opacities for RenderSelection.
	Settings settings.Settings

	// AllowInteractions is the host's permission to handle
	// clicks at all.
	AllowInteractions bool
}

// Behavior maps clicks on chart elements to selection requests.
type Behavior struct {
	opts    Options
	handler Handler
}

// BindEvents binds the click handlers for opts.Points to h. It
// replaces any earlier binding.
func (b *Behavior) BindEvents(opts Options, h Handler) {
	b.opts = opts
	b.handler = h
}

// Handle applies a click. It reports whether the click was consumed,
// which is always the case for a bound behavior that allows
// interactions. A consumed click must not reach the background.
//
// Handle only decides whether a click is consumed. The new selection
// is computed by the handler's Apply.
func (b *Behavior) Handle(ev Event) bool {
	if b.handler == nil || !b.opts.AllowInteractions {
		return false
	}
	switch ev.Kind {
	case PointClick, CategoryClick, AxisLabelClick:
		b.handler.Apply(ev)
	case BackgroundClick:
		b.ClearSelection()
	default:
		return false
	}
	return true
}

// RenderSelection returns the value bar opacity of each bound point.
// With no selection every bar is solid. Otherwise selected bars are
// solid and the rest are opaque.
func (b *Behavior) RenderSelection(hasSelection bool) []float64 {
	s := b.opts.Settings
	ops := make([]float64, len(b.opts.Points))
	for i, p := range b.opts.Points {
		ops[i] = s.Solid
		if hasSelection && !p.Selected {
			ops[i] = s.Opaque
		}
	}
	return ops
}

// ClearSelection deselects everything. It always returns true.
func (b *Behavior) ClearSelection() bool {
	if b.handler != nil {
		b.handler.HandleClearSelection()
	}
	return true
}
