// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/popviz/pyramid"
	"github.com/aclements/popviz/settings"
)

// bandPadding is the fraction of each band left empty between bars.
const bandPadding = 0.1

// Margins are the space around and between the two halves, in
// pixels.
type Margins struct {
	Left, Right, Bottom float64

	// Middle is half the gap between the halves, which holds the
	// age labels.
	Middle float64

	// AxisLabel is the height of the caption row under the value
	// axes.
	AxisLabel float64
}

// Geometry places a frame in a viewport.
type Geometry struct {
	Width, Height float64
	Margins       Margins

	// PlotHeight is the height of the bar area.
	PlotHeight float64

	// Region is the width of each half.
	Region float64

	// LeftInner and RightInner are the x positions of the base of
	// the left and right bars.
	LeftInner, RightInner float64

	// X maps values to [0, 1] of Region.
	X scale.Linear

	// XTicks are the value axis ticks.
	XTicks []float64

	// Band is the height of each bar.
	Band float64

	// LabelEvery is the spacing of labelled age bands.
	LabelEvery int

	// Metrics measures the axis font.
	Metrics Metrics

	ys map[string]float64
}

// Layout computes the geometry of f in a width by height viewport.
func Layout(f *pyramid.Frame, s settings.Settings, width, height float64) *Geometry {
	m := PointMetrics(s.AxisFontSize)
	char := m.Width("W")
	g := &Geometry{
		Width:  width,
		Height: height,
		Margins: Margins{
			Left:      2 * char,
			Right:     2 * char,
			Bottom:    10,
			Middle:    m.MaxWidth(f.Labels)/2 + 6,
			AxisLabel: m.Height() + 20,
		},
		Metrics: m,
	}
	inner := math.Max(width-g.Margins.Left-g.Margins.Right, 0)
	g.PlotHeight = math.Max(height-g.Margins.Bottom-g.Margins.AxisLabel, 0)
	g.Region = math.Max(inner/2-g.Margins.Middle, 0)
	g.LeftInner = g.Region + g.Margins.Left
	g.RightInner = inner - g.Region + g.Margins.Left

	g.ys, g.Band = bands(f.Labels, g.PlotHeight, bandPadding)
	g.LabelEvery = 1
	if n := len(f.Labels); n > 0 && g.PlotHeight > 0 {
		g.LabelEvery = int(math.Ceil(m.Height() * float64(n) / g.PlotHeight))
	} else if n > 0 {
		g.LabelEvery = n
	}
	if g.LabelEvery < 1 {
		g.LabelEvery = 1
	}

	max := f.MaxValue
	if !(max > 0) {
		max = 1
	}
	g.X = scale.Linear{Min: 0, Max: max}
	opts := scale.TickOptions{Max: TickCount(width, s.AxisFontSize)}
	g.X.Nice(opts)
	g.XTicks, _ = g.X.Ticks(opts)
	return g
}

// TickCount returns the number of value axis ticks for a chart of
// the given width.
func TickCount(width, axisFontSize float64) int {
	if !(axisFontSize > 0) {
		return 0
	}
	return int(math.Floor(width / 100 * 8 / axisFontSize))
}

// bands divides [0, height] into equal bands, one per label, with the
// first label at the bottom. It returns the top of each band and the
// rounded bar height.
func bands(labels []string, height, padding float64) (map[string]float64, float64) {
	ys := make(map[string]float64, len(labels))
	n := float64(len(labels))
	if n == 0 {
		return ys, 0
	}
	step := math.Floor(height / (n + padding))
	start := math.Round((height - (n-padding)*step) / 2)
	for i, l := range labels {
		ys[l] = start + (n-1-float64(i))*step
	}
	return ys, math.Round(step * (1 - padding))
}

// Y returns the top of the band of age.
func (g *Geometry) Y(age string) float64 {
	return g.ys[age]
}

// Len returns the pixel length of a bar of scaled value v.
func (g *Geometry) Len(v float64) float64 {
	return g.X.Map(v) * g.Region
}

// Labelled reports whether the i'th age band gets a label.
func (g *Geometry) Labelled(i int) bool {
	return i%g.LabelEvery == 0
}
