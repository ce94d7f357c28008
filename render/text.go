// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/popviz/pyramid"
	"github.com/aclements/popviz/settings"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
)

// WriteText draws f as rows of block characters, youngest age band
// at the bottom, in a terminal width columns wide. Bars drawn below
// full opacity use a lighter block.
func WriteText(w io.Writer, f *pyramid.Frame, s settings.Settings, width int, locale language.Tag) error {
	labelWidth := 0
	for _, l := range f.Labels {
		if n := lipgloss.Width(l); n > labelWidth {
			labelWidth = n
		}
	}
	labelWidth += 2
	half := (width - labelWidth) / 2
	if half < 1 {
		half = 1
	}

	left, right := byAge(f.Left), byAge(f.Right)
	format := NewTickFormatter(locale, s.AxisPercent)
	leftStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(s.LeftBarColor)).Width(half).Align(lipgloss.Right)
	rightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(s.RightBarColor)).Width(half).Align(lipgloss.Left)
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Align(lipgloss.Center)

	// Leave room for the value text beside each bar.
	room := half - 10
	if room < 1 {
		room = 1
	}
	bar := func(b *pyramid.Bar) string {
		if b == nil || !(f.MaxValue > 0) {
			return ""
		}
		// Negative measures get no bar.
		n := int(b.Length / f.MaxValue * float64(room))
		if n < 0 {
			n = 0
		}
		block := "█"
		if b.Opacity < s.Solid {
			block = "░"
		}
		return strings.Repeat(block, n)
	}
	value := func(b *pyramid.Bar) string {
		if b == nil {
			return ""
		}
		return format.Format(b.Length)
	}

	for i := len(f.Labels) - 1; i >= 0; i-- {
		age := f.Labels[i]
		l, r := left[age], right[age]
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			leftStyle.Render(strings.TrimSpace(value(l)+" "+bar(l))),
			labelStyle.Render(age),
			rightStyle.Render(strings.TrimSpace(bar(r)+" "+value(r))),
		)
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	captions := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Render(s.LeftLabel),
		labelStyle.Render(""),
		rightStyle.Render(s.RightLabel),
	)
	_, err := fmt.Fprintln(w, captions)
	return err
}

// byAge indexes bars by age. Where a side has several bars for one
// age, the first is shown.
func byAge(bars []pyramid.Bar) map[string]*pyramid.Bar {
	m := make(map[string]*pyramid.Bar, len(bars))
	for i := range bars {
		if _, ok := m[bars[i].Point.Age]; !ok {
			m[bars[i].Point.Age] = &bars[i]
		}
	}
	return m
}
