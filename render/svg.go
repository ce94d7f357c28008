// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/aclements/popviz/pyramid"
	"github.com/aclements/popviz/settings"
	"github.com/ajstarks/svgo"
	"golang.org/x/text/language"
)

const (
	innerTick = 4
	tickColor = "#888"
)

// SVGOptions control WriteSVG.
type SVGOptions struct {
	Width, Height int

	// ID prefixes the ids of the elements, so several charts can
	// share a page.
	ID string

	// Locale formats the tick labels. The zero Tag formats like
	// language.Und.
	Locale language.Tag

	// ClickURL, if not empty, makes the chart post every click to
	// this URL as JSON and reload the page.
	ClickURL string
}

// WriteSVG draws f as an SVG document.
//
// Every clickable element has a data-kind attribute: "point" bars
// carry data-index, their position in f.Points(), "category" labels
// carry the age in data-label and "axisLabel" captions carry the
// gender filter value in data-label. The background rectangle is
// "background".
func WriteSVG(w io.Writer, f *pyramid.Frame, s settings.Settings, opts SVGOptions) error {
	var buf bytes.Buffer
	g := Layout(f, s, float64(opts.Width), float64(opts.Height))
	canvas := svg.New(&buf)
	canvas.Start(opts.Width, opts.Height, fmt.Sprintf(`font-size="%.6gpx" font-family="Roboto,&quot;Helvetica Neue&quot;,Helvetica,Arial,sans-serif"`, g.Metrics.Size))

	canvas.Rect(0, 0, opts.Width, opts.Height, attr("id", opts.ID+"-clear"), `class="clearCatcher"`, `fill="#fff"`, `fill-opacity="0"`, `data-kind="background"`)
	canvas.Group(attr("id", opts.ID+"-chart"))

	drawAgeAxis(canvas, f, g)
	drawValueAxes(canvas, g, NewTickFormatter(opts.Locale, s.AxisPercent))

	index := 0
	for _, side := range []struct {
		bars  []pyramid.Bar
		color string
		dir   float64
		base  float64
	}{
		{f.Left, s.LeftBarColor, -1, g.LeftInner},
		{f.Right, s.RightBarColor, 1, g.RightInner},
	} {
		fill := "fill:" + html.EscapeString(side.color)
		for _, b := range side.bars {
			x, w := barX(side.base, side.dir, g.Len(b.Length))
			y := g.Y(b.Point.Age)
			canvas.Rect(x, round(y), w, round(g.Band), fill, `class="dataPoint"`, `data-kind="point"`,
				fmt.Sprintf(`data-index="%d"`, index),
				fmt.Sprintf(`fill-opacity="%.6g"`, b.Opacity))
			index++
			if f.Highlighted {
				x, w := barX(side.base, side.dir, g.Len(b.Highlight))
				canvas.Rect(x, round(y), w, round(g.Band), fill, `class="notSelectable"`,
					fmt.Sprintf(`fill-opacity="%.6g"`, pyramid.FillOpacity(pyramid.HighlightBar, b.Point, true, f.HasSelection, s)))
			}
		}
		if s.ShowReferenceBars && len(side.bars) > 0 {
			drawReference(canvas, g, side.bars, side.base, side.dir, s)
		}
	}

	// Captions carry the gender they select.
	y := round(g.PlotHeight + g.Margins.AxisLabel)
	canvas.Text(round(g.Margins.Left), y, s.LeftLabel, `class="axisLabel"`, `data-kind="axisLabel"`, attr("data-label", s.LeftFilter), `text-anchor="start"`)
	canvas.Text(round(g.Width-g.Margins.Right), y, s.RightLabel, `class="axisLabel"`, `data-kind="axisLabel"`, attr("data-label", s.RightFilter), `text-anchor="end"`)

	canvas.Gend()
	if opts.ClickURL != "" {
		canvas.Script("text/javascript", ClickScript(opts.ClickURL))
	}
	canvas.End()

	_, err := w.Write(buf.Bytes())
	return err
}

func drawAgeAxis(canvas *svg.SVG, f *pyramid.Frame, g *Geometry) {
	mid := round((g.LeftInner + g.RightInner) / 2)
	var ticks bytes.Buffer
	for i, age := range f.Labels {
		y := g.Y(age) + g.Band/2
		fmt.Fprintf(&ticks, "M%.6g %.6gh%dM%.6g %.6gh%d", g.LeftInner, y, innerTick, g.RightInner, y, -innerTick)
		if !g.Labelled(i) {
			continue
		}
		canvas.Text(mid, round(y), age, `class="categories"`, `data-kind="category"`, attr("data-label", age), `text-anchor="middle"`, `dy=".3em"`)
	}
	path := fmt.Sprintf("M%.6g 0V%.6gM%.6g 0V%.6g", g.LeftInner, g.PlotHeight, g.RightInner, g.PlotHeight)
	canvas.Path(path+ticks.String(), "fill:none;stroke:"+tickColor)
}

func drawValueAxes(canvas *svg.SVG, g *Geometry, format TickFormatter) {
	var path bytes.Buffer
	y := g.PlotHeight
	fmt.Fprintf(&path, "M%.6g %.6gH%.6gM%.6g %.6gH%.6g", g.Margins.Left, y, g.LeftInner, g.RightInner, y, g.RightInner+g.Region)
	for _, t := range g.XTicks {
		l := g.Len(t)
		label := format.Format(t)
		for _, x := range []float64{g.LeftInner - l, g.RightInner + l} {
			fmt.Fprintf(&path, "M%.6g %.6gv%d", x, y, innerTick)
			canvas.Text(round(x), round(y+innerTick), label, `class="tick"`, `text-anchor="middle"`, `dy="1em"`, `fill="#666"`)
		}
	}
	canvas.Path(path.String(), "fill:none;stroke:"+tickColor)
}

func drawReference(canvas *svg.SVG, g *Geometry, bars []pyramid.Bar, base, dir float64, s settings.Settings) {
	var path bytes.Buffer
	for i, b := range bars {
		cmd := 'L'
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(&path, "%c%.6g %.6g", cmd, base+dir*g.Len(b.Reference), g.Y(b.Point.Age)+g.Band/2)
	}
	canvas.Path(path.String(), `class="notSelectable"`, "fill:none;stroke:"+html.EscapeString(s.RefBarColor),
		fmt.Sprintf(`stroke-width="%.6g"`, s.RefBarWidth*2),
		fmt.Sprintf(`fill-opacity="%.6g"`, s.Transparent))
}

// barX returns the left edge and width of a bar of length l growing
// from base in direction dir. A negative length grows the other way.
func barX(base, dir, l float64) (x, w int) {
	end := base + dir*l
	return round(math.Min(base, end)), round(math.Abs(end - base))
}

func round(x float64) int {
	return int(math.Round(x))
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}
