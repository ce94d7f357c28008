// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command poppyramid draws a population pyramid.
//
// poppyramid reads a CSV or XLSX table with an age band column, a
// gender column and one or more measure columns. By default, the
// columns named "age" and "gender" are the categories, a numeric
// column named "values" or "value" is the population and a column
// named "reference" is the reference population. A settings file can
// rename these and set any of the chart's properties:
//
//	columns:
//	  age: band
//	roles:
//	  people: [values]
//	axisControl:
//	  percent: false
//	  leftLabel: Men
//
// Inputs and settings files may be local paths or URLs.
//
// poppyramid writes an SVG, or with -table the consolidated bars as a
// table. If standard output is a terminal, it draws the pyramid with
// text instead. With -serve, it hosts the chart on a web page where
// clicks select age bands and genders.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/identity"
	"github.com/aclements/popviz/settings"
	"github.com/aclements/popviz/visual"
	"github.com/viant/afs"
	"golang.org/x/term"
	"golang.org/x/text/language"
)

func main() {
	log.SetPrefix("poppyramid: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagSettings   = flag.String("settings", "", "read settings from YAML `file` or URL")
		flagSheet      = flag.String("sheet", "", "read input as XLSX from `sheet`")
		flagWidth      = flag.Int("width", 800, "chart width in `pixels`")
		flagHeight     = flag.Int("height", 600, "chart height in `pixels`")
		flagTable      = flag.Bool("table", false, "output a table instead of a plot")
		flagText       = flag.Bool("text", false, "draw the chart with text")
		flagLocale     = flag.String("locale", "en", "format numbers for `locale`")
		flagSelect     = flag.String("select", "", "select the comma-separated age `bands`")
		flagDump       = flag.Bool("dump-settings", false, "print the effective settings as YAML and exit")
		flagDumpData   = flag.Bool("dump-data", false, "print the data view as a table and exit")
		flagServe      = flag.String("serve", "", "serve an interactive chart on `addr`")
		flagOpen       = flag.Bool("open", false, "with -serve, open the chart in $BROWSER")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := "-"
	if flag.NArg() == 1 {
		input = flag.Arg(0)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	locale, err := language.Parse(*flagLocale)
	if err != nil {
		log.Fatalf("bad -locale: %v", err)
	}

	// Load the settings and data.
	ctx := context.Background()
	fs := afs.New()
	cfg, err := loadConfig(ctx, fs, *flagSettings)
	if err != nil {
		log.Fatal(err)
	}
	tab, err := loadTable(ctx, fs, input, *flagSheet)
	if err != nil {
		log.Fatal(err)
	}
	view, err := dataview.FromTable(tab, cfg.layout(tab))
	if err != nil {
		log.Fatal(err)
	}

	if *flagDumpData {
		if err := dataview.Fprint(os.Stdout, view); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Build the chart.
	ids, err := identity.NewFactory(nil)
	if err != nil {
		log.Fatal(err)
	}
	v, err := visual.New(visual.Options{
		Identities:        ids,
		Logger:            log.New(os.Stderr, "poppyramid: ", 0),
		Locale:            locale,
		AllowInteractions: *flagServe != "",
	})
	if err != nil {
		log.Fatal(err)
	}
	update := visual.UpdateOptions{
		Viewport: visual.Viewport{Width: float64(*flagWidth), Height: float64(*flagHeight)},
		DataView: view,
		Objects:  cfg.Objects,
	}
	if err := v.Update(update); err != nil {
		log.Fatal(err)
	}

	if *flagSelect != "" {
		keys, err := selectAges(ids, view, *flagSelect)
		if err != nil {
			log.Fatal(err)
		}
		v.RestoreSelection(keys)
	}

	if *flagDump {
		if err := settings.Encode(os.Stdout, settings.ToObjects(v.Settings())); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *flagServe != "" {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		title := "population pyramid"
		if input != "-" {
			title = input
		}
		if err := serve(ctx, *flagServe, newServer(title, v, update), *flagOpen); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Prepare for output.
	f := os.Stdout
	if *flagOut != "" {
		var err error
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}
	inTerm := *flagOut == "" && term.IsTerminal(int(f.Fd()))

	switch {
	case *flagTable:
		err = v.WriteTable(f)
	case *flagText || inTerm:
		width := 80
		if inTerm {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil {
				width = w
			}
		}
		err = v.WriteText(f, width)
	default:
		err = v.WriteSVG(f, "")
	}
	if err != nil {
		log.Fatal(err)
	}
}

// selectAges returns the selection keys of the comma-separated age
// bands in list.
func selectAges(ids *identity.HashFactory, view *dataview.DataView, list string) ([]string, error) {
	var keys []string
	for _, age := range strings.Split(list, ",") {
		id, err := ids.Lookup(&view.Categories[0], strings.TrimSpace(age))
		if err != nil {
			return nil, err
		}
		keys = append(keys, id.Key())
	}
	return keys, nil
}
