// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visual

import (
	"bytes"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/interactivity"
	"github.com/aclements/popviz/settings"
)

func view() *dataview.DataView {
	return &dataview.DataView{
		Categories: []dataview.CategoryColumn{
			{Source: dataview.Source{DisplayName: "age"}, Values: []string{"0-4", "0-4", "5-9", "5-9"}},
			{Source: dataview.Source{DisplayName: "gender"}, Values: []string{"Males", "Females", "Males", "Females"}},
		},
		Values: []dataview.ValueColumn{{
			Source: dataview.Source{DisplayName: "population", Roles: map[dataview.Role]bool{dataview.RoleValues: true}},
			Values: []float64{10, 8, 12, 9},
		}},
	}
}

func newVisual(t *testing.T, logger *log.Logger) *Visual {
	t.Helper()
	v, err := New(Options{Logger: logger, AllowInteractions: true})
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func update(t *testing.T, v *Visual, dv *dataview.DataView, objs settings.Objects) {
	t.Helper()
	err := v.Update(UpdateOptions{Viewport: Viewport{600, 400}, DataView: dv, Objects: objs})
	if err != nil {
		t.Fatal(err)
	}
}

// opacities returns the value bar opacities, left side first.
func opacities(v *Visual) []float64 {
	var out []float64
	f := v.Frame()
	for _, b := range f.Left {
		out = append(out, b.Opacity)
	}
	for _, b := range f.Right {
		out = append(out, b.Opacity)
	}
	return out
}

func TestNew(t *testing.T) {
	v := newVisual(t, nil)
	if v.ID == "" {
		t.Errorf("New left ID empty")
	}
	if w := newVisual(t, nil); w.ID == v.ID {
		t.Errorf("two visuals share ID %s", v.ID)
	}
	if f := v.Frame(); f == nil || len(f.Labels) != 0 {
		t.Errorf("new visual frame got %+v; want empty", f)
	}
	if v.Settings() != settings.Default() {
		t.Errorf("new visual settings are not the defaults")
	}
}

func TestUpdate(t *testing.T) {
	v := newVisual(t, nil)
	update(t, v, view(), settings.Objects{settings.GroupAxisControl: {"percent": false}})
	f := v.Frame()
	if want := []string{"0-4", "5-9"}; !reflect.DeepEqual(f.Labels, want) {
		t.Errorf("labels got %v; want %v", f.Labels, want)
	}
	if f.Left[1].Length != 12 {
		t.Errorf("absolute mode left 5-9 got %v; want 12", f.Left[1].Length)
	}
	if got := v.Enumerate(settings.GroupAxisControl); len(got) != 1 || got[0].Properties["percent"] != false {
		t.Errorf("Enumerate(axisControl) got %+v", got)
	}

	// Settings not supplied revert to defaults.
	update(t, v, view(), nil)
	if !v.Settings().AxisPercent {
		t.Errorf("AxisPercent did not revert to the default")
	}
}

func TestUpdateInvalid(t *testing.T) {
	var logBuf bytes.Buffer
	v := newVisual(t, log.New(&logBuf, "", 0))
	update(t, v, view(), nil)

	bad := view()
	bad.Categories = bad.Categories[:1]
	err := v.Update(UpdateOptions{Viewport: Viewport{600, 400}, DataView: bad})
	var iie *dataview.InvalidInputError
	if !errors.As(err, &iie) {
		t.Fatalf("Update of one category column got %v; want *InvalidInputError", err)
	}
	if f := v.Frame(); len(f.Labels) != 0 || len(f.Left) != 0 {
		t.Errorf("invalid update drew %+v; want an empty pyramid", f)
	}
	if !strings.Contains(logBuf.String(), "categories") {
		t.Errorf("invalid update was not logged: %q", logBuf.String())
	}
	var svg bytes.Buffer
	if err := v.WriteSVG(&svg, ""); err != nil {
		t.Errorf("WriteSVG of empty pyramid: %v", err)
	}
}

func TestUpdateConflicts(t *testing.T) {
	var logBuf bytes.Buffer
	v := newVisual(t, log.New(&logBuf, "", 0))
	dv := view()
	dup := dv.Values[0]
	dup.Source.DisplayName = "estimate"
	dup.Values = []float64{1, 1, 1, 1}
	dv.Values = append(dv.Values, dup)
	update(t, v, dv, nil)
	if !strings.Contains(logBuf.String(), `"values"`) {
		t.Errorf("role conflict was not logged: %q", logBuf.String())
	}
	if got := v.Frame().Left[0].Point.Value; got != 1 {
		t.Errorf("conflicting role resolved to %v; want the last column's 1", got)
	}
}

func TestClick(t *testing.T) {
	v := newVisual(t, nil)
	update(t, v, view(), nil)
	s := v.Settings()

	// Points are indexed left side first: 0-4/M, 5-9/M, 0-4/F, 5-9/F.
	if !v.Click(interactivity.Event{Kind: interactivity.PointClick, Index: 1}) {
		t.Fatalf("point click not consumed")
	}
	if got, want := opacities(v), []float64{s.Opaque, s.Solid, s.Opaque, s.Solid}; !reflect.DeepEqual(got, want) {
		t.Errorf("after selecting 5-9 opacities got %v; want %v", got, want)
	}
	if !v.Frame().HasSelection || len(v.Selection()) != 1 {
		t.Errorf("selection got %v", v.Selection())
	}

	// Selection survives an update with the same identities.
	update(t, v, view(), nil)
	if got, want := opacities(v), []float64{s.Opaque, s.Solid, s.Opaque, s.Solid}; !reflect.DeepEqual(got, want) {
		t.Errorf("after update opacities got %v; want %v", got, want)
	}

	v.Click(interactivity.Event{Kind: interactivity.AxisLabelClick, Label: "Females"})
	if got := len(v.Selection()); got != 2 {
		t.Errorf("selecting Females selected %d keys; want 2", got)
	}

	v.Click(interactivity.Event{Kind: interactivity.BackgroundClick})
	if got, want := opacities(v), []float64{s.Solid, s.Solid, s.Solid, s.Solid}; !reflect.DeepEqual(got, want) {
		t.Errorf("after clear opacities got %v; want %v", got, want)
	}
	update(t, v, view(), nil)
	for _, p := range v.Model().Points {
		if p.Selected {
			t.Errorf("point %v selected after clear and update", p)
		}
	}
}

func TestClickDisabled(t *testing.T) {
	v, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	update(t, v, view(), nil)
	if v.Click(interactivity.Event{Kind: interactivity.PointClick}) {
		t.Errorf("click consumed with interactions disabled")
	}
	if len(v.Selection()) != 0 {
		t.Errorf("click selected %v with interactions disabled", v.Selection())
	}
}

func TestRestoreSelection(t *testing.T) {
	v := newVisual(t, nil)
	update(t, v, view(), nil)
	v.Click(interactivity.Event{Kind: interactivity.CategoryClick, Label: "0-4"})
	saved := v.Selection()

	w := newVisual(t, nil)
	update(t, w, view(), nil)
	w.RestoreSelection(saved)
	if !reflect.DeepEqual(opacities(w), opacities(v)) {
		t.Errorf("restored opacities %v; want %v", opacities(w), opacities(v))
	}
}

func TestWrite(t *testing.T) {
	v := newVisual(t, nil)
	update(t, v, view(), nil)
	var buf bytes.Buffer
	if err := v.WriteSVG(&buf, "/click"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), v.ID+"-chart") {
		t.Errorf("SVG ids are not prefixed with the visual ID")
	}
	buf.Reset()
	if err := v.WriteText(&buf, 80); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "5-9") {
		t.Errorf("text preview lacks labels:\n%s", buf.String())
	}
	buf.Reset()
	if err := v.WriteTable(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Females") {
		t.Errorf("table lacks rows:\n%s", buf.String())
	}
}

func TestUpdateUnmappedRoles(t *testing.T) {
	var logBuf bytes.Buffer
	v := newVisual(t, log.New(&logBuf, "", 0))
	update(t, v, view(), nil)
	if !strings.Contains(logBuf.String(), "mapped roles [values] of [values reference]") {
		t.Errorf("missing reference role was not logged: %q", logBuf.String())
	}

	logBuf.Reset()
	dv := view()
	dv.Values = append(dv.Values, dataview.ValueColumn{
		Source: dataview.Source{DisplayName: "reference", Roles: map[dataview.Role]bool{dataview.RoleReference: true}},
		Values: []float64{9, 7, 11, 10},
	})
	update(t, v, dv, nil)
	if strings.Contains(logBuf.String(), "mapped roles") {
		t.Errorf("fully mapped view logged %q", logBuf.String())
	}
}
