// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataview

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/xuri/excelize/v2"
)

// A ColumnParser converts the raw cells of one column into a typed
// column, or reports that it cannot.
type ColumnParser func(cells []string) (table.Slice, bool)

// DefaultColumnParsers is the sequence of column parsers used by the
// readers if no parsers are specified. Columns no parser accepts are
// kept as []string.
var DefaultColumnParsers = []ColumnParser{
	parseFloats,
}

// parseFloats accepts columns where every non-blank cell is a number.
// Blank cells become NaN (null).
func parseFloats(cells []string) (table.Slice, bool) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.Replace(c, ",", "", -1), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Read reads tabular data from r. Files named *.xlsx or *.xlsm are
// read as workbooks (first sheet); everything else is read as CSV.
func Read(name string, r io.Reader) (*table.Table, error) {
	var t *table.Table
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx", ".xlsm":
		t, err = ReadXLSX(r, "", nil)
	default:
		t, err = ReadCSV(r, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// ReadCSV reads a CSV document with a header row. Each column is
// typed by the first of parsers that accepts all of its cells. If
// parsers is nil, it uses DefaultColumnParsers.
func ReadCSV(r io.Reader, parsers []ColumnParser) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return columnize(records, parsers)
}

// ReadXLSX reads a sheet of a workbook whose first row is a header.
// If sheet is "", it reads the first sheet.
func ReadXLSX(r io.Reader, sheet string, parsers []ColumnParser) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &InvalidInputError{Field: "workbook", Reason: "no sheets"}
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return columnize(rows, parsers)
}

// columnize transposes records (header first) into typed table
// columns. Short rows are padded with blank cells; spreadsheets omit
// trailing empty cells.
func columnize(records [][]string, parsers []ColumnParser) (*table.Table, error) {
	if parsers == nil {
		parsers = DefaultColumnParsers
	}
	if len(records) == 0 {
		return nil, &InvalidInputError{Field: "header", Reason: "empty input"}
	}
	header, rows := records[0], records[1:]
	seen := make(map[string]bool)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, &InvalidInputError{Field: "header", Reason: fmt.Sprintf("column %d has no name", i+1)}
		}
		if seen[h] {
			return nil, &InvalidInputError{Field: h, Reason: "duplicate column"}
		}
		seen[h] = true
		header[i] = h
	}

	for ri, row := range rows {
		if len(row) > len(header) {
			return nil, &InvalidInputError{Field: "row", Reason: fmt.Sprintf("row %d is wider than the header", ri+2)}
		}
	}

	b := new(table.Builder)
	for ci, name := range header {
		cells := make([]string, len(rows))
		for ri, row := range rows {
			if ci < len(row) {
				cells[ri] = row[ci]
			}
		}

		var col table.Slice = cells
		for _, p := range parsers {
			if typed, ok := p(cells); ok {
				col = typed
				break
			}
		}
		b.Add(name, col)
	}
	return b.Done(), nil
}
