// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visual is the per-chart context of a population pyramid.
//
// A Visual owns all mutable state of one chart: the current model,
// settings, viewport and selection. The host calls Update whenever
// its data, settings or size change, and Click for every click on the
// chart. A Visual is not safe for concurrent use; hosts must
// serialize calls.
package visual

import (
	"io"
	"log"

	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/identity"
	"github.com/aclements/popviz/interactivity"
	"github.com/aclements/popviz/pyramid"
	"github.com/aclements/popviz/render"
	"github.com/aclements/popviz/settings"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width, Height float64
}

// UpdateOptions is everything the host supplies on an update.
type UpdateOptions struct {
	Viewport Viewport
	DataView *dataview.DataView
	Objects  settings.Objects
}

// Options configure New.
type Options struct {
	// Identities creates selection identities. If nil, New uses
	// identity.NewFactory(nil).
	Identities identity.Factory

	// Service holds the selection. If nil, New creates one.
	Service *interactivity.Service

	// Logger receives diagnostics. If nil, they are discarded.
	Logger *log.Logger

	// Locale formats tick labels.
	Locale language.Tag

	// AllowInteractions enables click handling.
	AllowInteractions bool
}

// A Visual is one population pyramid.
type Visual struct {
	// ID uniquely identifies this chart instance.
	ID string

	opts     Options
	logger   *log.Logger
	service  *interactivity.Service
	behavior *interactivity.Behavior

	model    *pyramid.Model
	settings settings.Settings
	viewport Viewport
	frame    *pyramid.Frame
}

// New returns a Visual with no data.
func New(opts Options) (*Visual, error) {
	if opts.Identities == nil {
		f, err := identity.NewFactory(nil)
		if err != nil {
			return nil, err
		}
		opts.Identities = f
	}
	if opts.Service == nil {
		opts.Service = interactivity.NewService()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	v := &Visual{
		ID:       uuid.NewString(),
		opts:     opts,
		logger:   logger,
		service:  opts.Service,
		behavior: new(interactivity.Behavior),
		model:    new(pyramid.Model),
		settings: settings.Default(),
	}
	v.render()
	return v, nil
}

// Update replaces the chart's data, settings and viewport.
//
// If the data view is malformed, Update logs the problem, draws an
// empty pyramid and returns the error.
func (v *Visual) Update(opts UpdateOptions) error {
	v.viewport = opts.Viewport
	v.settings = settings.Parse(opts.Objects)

	if opts.DataView != nil {
		for role, cols := range dataview.Conflicts(opts.DataView.Values) {
			v.logger.Printf("visual %s: role %q claimed by columns %v; using column %d", v.ID, role, cols, cols[len(cols)-1])
		}
		if mapped := dataview.NewAccessor(opts.DataView.Values).MappedRoles(); len(mapped) < len(dataview.Roles) {
			v.logger.Printf("visual %s: mapped roles %v of %v; unmapped measures draw as 0", v.ID, mapped, dataview.Roles)
		}
	}

	m, err := pyramid.Rebuild(v.model, opts.DataView, v.opts.Identities, v.service.HasSelection())
	if err != nil {
		v.logger.Printf("visual %s: %v", v.ID, err)
		m = new(pyramid.Model)
	}
	v.model = m
	v.render()
	return err
}

// render recomputes the frame and rebinds the click handlers to its
// points.
func (v *Visual) render() {
	v.service.Mark(v.model.Points)
	v.frame = pyramid.Layout(v.model, v.settings, v.service.HasSelection())
	v.service.Bind(v.frame.Points(), v.behavior, interactivity.Options{
		Settings:          v.settings,
		AllowInteractions: v.opts.AllowInteractions,
	})
}

// Click applies a click and reports whether it was consumed.
func (v *Visual) Click(ev interactivity.Event) bool {
	if !v.behavior.Handle(ev) {
		return false
	}
	v.renderSelection()
	return true
}

// renderSelection updates only the value bar opacities of the frame.
func (v *Visual) renderSelection() {
	has := v.service.HasSelection()
	ops := v.behavior.RenderSelection(has)
	v.frame.HasSelection = has
	i := 0
	for _, side := range [][]pyramid.Bar{v.frame.Left, v.frame.Right} {
		for j := range side {
			side[j].Opacity = ops[i]
			i++
		}
	}
}

// Frame returns the current frame. It is replaced by Update and
// modified by Click.
func (v *Visual) Frame() *pyramid.Frame {
	return v.frame
}

// Model returns the current model.
func (v *Visual) Model() *pyramid.Model {
	return v.model
}

// Settings returns the settings of the last update.
func (v *Visual) Settings() settings.Settings {
	return v.settings
}

// Enumerate returns the property pane contents for objectName.
func (v *Visual) Enumerate(objectName string) []settings.ObjectInstance {
	return settings.Enumerate(v.settings, objectName)
}

// Selection returns the selected identity keys.
func (v *Visual) Selection() []string {
	return v.service.Keys()
}

// RestoreSelection replaces the selection with keys.
func (v *Visual) RestoreSelection(keys []string) {
	v.service.Restore(keys)
	v.render()
}

// WriteSVG draws the chart. If clickURL is not empty, the chart posts
// clicks there.
func (v *Visual) WriteSVG(w io.Writer, clickURL string) error {
	return render.WriteSVG(w, v.frame, v.settings, render.SVGOptions{
		Width:    int(v.viewport.Width),
		Height:   int(v.viewport.Height),
		ID:       v.ID,
		Locale:   v.opts.Locale,
		ClickURL: clickURL,
	})
}

// WriteText draws the chart for a terminal of the given width.
func (v *Visual) WriteText(w io.Writer, width int) error {
	return render.WriteText(w, v.frame, v.settings, width, v.opts.Locale)
}

// WriteTable prints the chart's bars as a table.
func (v *Visual) WriteTable(w io.Writer) error {
	return render.FprintFrame(w, v.frame)
}
