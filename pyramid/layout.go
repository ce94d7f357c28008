// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pyramid

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/popviz/settings"
)

// Scaled returns n as drawn on the value axis: the fraction n/total
// in percent mode and n itself otherwise. It returns 0 if n is NaN or
// total is not positive.
func Scaled(n, total float64, percent bool) float64 {
	if math.IsNaN(n) || !(total > 0) {
		return 0
	}
	if percent {
		return n / total
	}
	return n
}

// Totals returns the sum of values and the sum of references over
// both sides.
func Totals(left, right []*DataPoint) (values, reference float64) {
	values = sum(left, valueOf) + sum(right, valueOf)
	reference = sum(left, referenceOf) + sum(right, referenceOf)
	return
}

func valueOf(p *DataPoint) float64     { return p.Value }
func referenceOf(p *DataPoint) float64 { return p.Reference }

func sum(points []*DataPoint, f func(*DataPoint) float64) float64 {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = f(p)
	}
	return stats.Sample{Xs: xs}.Sum()
}

// MaxValue returns the domain maximum shared by both sides: the
// largest scaled value and, if reference bars are shown, the largest
// scaled reference. It is never negative.
func MaxValue(left, right []*DataPoint, totalValues, totalReference float64, s settings.Settings) float64 {
	var xs []float64
	for _, side := range [][]*DataPoint{left, right} {
		for _, p := range side {
			xs = append(xs, Scaled(p.Value, totalValues, s.AxisPercent))
			if s.ShowReferenceBars {
				xs = append(xs, Scaled(p.Reference, totalReference, s.AxisPercent))
			}
		}
	}
	if len(xs) == 0 {
		return 0
	}
	_, max := stats.Bounds(xs)
	return math.Max(max, 0)
}

// A BarKind says which of a point's bars is being drawn.
type BarKind int

const (
	// ValueBar is the selectable bar sized to the value.
	ValueBar BarKind = iota
	// ReferenceBar is the reference line segment.
	ReferenceBar
	// HighlightBar is drawn over a value bar, sized to the
	// highlighted part of the value.
	HighlightBar
)

// FillOpacity returns the fill opacity of the kind bar of p.
func FillOpacity(kind BarKind, p *DataPoint, highlighted, hasSelection bool, s settings.Settings) float64 {
	switch kind {
	case ReferenceBar:
		return s.Transparent
	case HighlightBar:
		return s.Solid
	}
	switch {
	case highlighted:
		return s.Opaque
	case hasSelection && !p.Selected:
		return s.Opaque
	}
	return s.Solid
}

// A Bar is the geometry of one point on one side.
type Bar struct {
	Point *DataPoint

	// Length, Reference and Highlight are the scaled value,
	// reference and highlight value. Highlight is 0 unless the
	// frame is highlighted.
	Length, Reference, Highlight float64

	// Opacity is the fill opacity of the value bar.
	Opacity float64
}

// A Frame is the computed geometry of a whole pyramid.
type Frame struct {
	// Labels lists every age band once, in axis order from the
	// bottom of the chart.
	Labels []string

	Left, Right []Bar

	TotalValues, TotalReference float64

	// MaxValue is the upper bound of the value axis domain.
	MaxValue float64

	// Highlighted is set if the model is highlighted, in which
	// case highlight bars are drawn over the value bars.
	Highlighted bool

	HasSelection bool
}

// Layout computes the frame for m.
func Layout(m *Model, s settings.Settings, hasSelection bool) *Frame {
	left, right := Split(m.Points, s.LeftFilter, s.RightFilter)
	labels := Consolidate(Ages(left), Ages(right))
	left, right = Split(Arrange(m.Points, labels), s.LeftFilter, s.RightFilter)

	f := &Frame{
		Labels:       labels,
		Highlighted:  m.IsHighlighted,
		HasSelection: hasSelection,
	}
	f.TotalValues, f.TotalReference = Totals(left, right)
	f.MaxValue = MaxValue(left, right, f.TotalValues, f.TotalReference, s)
	f.Left = f.bars(left, s)
	f.Right = f.bars(right, s)
	return f
}

func (f *Frame) bars(points []*DataPoint, s settings.Settings) []Bar {
	bars := make([]Bar, len(points))
	for i, p := range points {
		b := Bar{
			Point:     p,
			Length:    Scaled(p.Value, f.TotalValues, s.AxisPercent),
			Reference: Scaled(p.Reference, f.TotalReference, s.AxisPercent),
			Opacity:   FillOpacity(ValueBar, p, f.Highlighted, f.HasSelection, s),
		}
		if f.Highlighted {
			b.Highlight = Scaled(p.HighlightValue, f.TotalValues, s.AxisPercent)
		}
		bars[i] = b
	}
	return bars
}

// Points returns the points of the left bars followed by the right
// bars.
func (f *Frame) Points() []*DataPoint {
	points := make([]*DataPoint, 0, len(f.Left)+len(f.Right))
	for _, side := range [][]Bar{f.Left, f.Right} {
		for _, b := range side {
			points = append(points, b.Point)
		}
	}
	return points
}
