// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/popviz/pyramid"
)

// FrameTable returns one row per bar of f, left side first, in axis
// order.
func FrameTable(f *pyramid.Frame) *table.Table {
	n := len(f.Left) + len(f.Right)
	var (
		ageCol      = make([]string, 0, n)
		sideCol     = make([]string, 0, n)
		genderCol   = make([]string, 0, n)
		valueCol    = make([]float64, 0, n)
		scaledCol   = make([]float64, 0, n)
		refCol      = make([]float64, 0, n)
		hlCol       = make([]float64, 0, n)
		opacityCol  = make([]float64, 0, n)
		selectedCol = make([]bool, 0, n)
	)
	for _, side := range []struct {
		name string
		bars []pyramid.Bar
	}{{"left", f.Left}, {"right", f.Right}} {
		for _, b := range side.bars {
			ageCol = append(ageCol, b.Point.Age)
			sideCol = append(sideCol, side.name)
			genderCol = append(genderCol, b.Point.Gender)
			valueCol = append(valueCol, b.Point.Value)
			scaledCol = append(scaledCol, b.Length)
			refCol = append(refCol, b.Reference)
			hlCol = append(hlCol, b.Highlight)
			opacityCol = append(opacityCol, b.Opacity)
			selectedCol = append(selectedCol, b.Point.Selected)
		}
	}
	return new(table.Builder).
		Add("age", ageCol).
		Add("side", sideCol).
		Add("gender", genderCol).
		Add("value", valueCol).
		Add("scaled", scaledCol).
		Add("reference", refCol).
		Add("highlight", hlCol).
		Add("opacity", opacityCol).
		Add("selected", selectedCol).
		Done()
}

// FprintFrame prints FrameTable(f) to w.
func FprintFrame(w io.Writer, f *pyramid.Frame) error {
	return table.Fprint(w, FrameTable(f))
}
