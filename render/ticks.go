// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// A TickFormatter formats value axis ticks for a locale.
type TickFormatter struct {
	p       *message.Printer
	percent bool
}

// NewTickFormatter returns a formatter that prints fractions as
// percentages with one decimal if percent is set and grouped whole
// numbers otherwise.
func NewTickFormatter(tag language.Tag, percent bool) TickFormatter {
	return TickFormatter{message.NewPrinter(tag), percent}
}

// Format formats v.
func (f TickFormatter) Format(v float64) string {
	if f.percent {
		return f.p.Sprintf("%.1f%%", v*100)
	}
	return f.p.Sprintf("%d", int64(math.Round(v)))
}
