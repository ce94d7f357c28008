// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// face is the reference face for text measurement. Its advances are
// scaled linearly to the requested size.
var face = basicfont.Face7x13

// Metrics measures text in one font size.
type Metrics struct {
	// Size is the font size in pixels.
	Size float64
}

// PointMetrics returns the Metrics for a font size in points.
func PointMetrics(pt float64) Metrics {
	return Metrics{Size: pt * 4 / 3}
}

func (m Metrics) scale() float64 {
	return m.Size / float64(face.Metrics().Height.Ceil())
}

// Width returns the advance width of s in pixels.
func (m Metrics) Width(s string) float64 {
	adv := font.MeasureString(face, s)
	return float64(adv) / 64 * m.scale()
}

// Height returns the line height in pixels.
func (m Metrics) Height() float64 {
	return float64(face.Metrics().Height.Ceil()) * m.scale()
}

// MaxWidth returns the largest Width of strs, or 0.
func (m Metrics) MaxWidth(strs []string) float64 {
	max := 0.0
	for _, s := range strs {
		if w := m.Width(s); w > max {
			max = w
		}
	}
	return max
}
