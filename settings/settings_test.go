// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package settings

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	if got, want := Parse(nil), Default(); got != want {
		t.Errorf("Parse(nil) got %+v; want %+v", got, want)
	}
	if got, want := Parse(Objects{"bogus": {"x": 1}}), Default(); got != want {
		t.Errorf("Parse with unknown group got %+v; want defaults", got)
	}
}

func TestParse(t *testing.T) {
	for _, test := range []struct {
		name  string
		objs  Objects
		check func(s Settings) bool
	}{
		{"percent off", Objects{GroupAxisControl: {"percent": false}},
			func(s Settings) bool { return !s.AxisPercent }},
		{"fill color", Objects{GroupAxisControl: {"leftBarColor": Fill("#010203")}},
			func(s Settings) bool { return s.LeftBarColor == "#010203" }},
		{"plain map fill", Objects{GroupReferenceBar: {"refBarColor": map[string]interface{}{"solid": map[string]interface{}{"color": "red"}}}},
			func(s Settings) bool { return s.RefBarColor == "red" }},
		{"bare color", Objects{GroupAxisControl: {"rightBarColor": "blue"}},
			func(s Settings) bool { return s.RightBarColor == "blue" }},
		{"fill without solid", Objects{GroupAxisControl: {"rightBarColor": Object{"gradient": 1}}},
			func(s Settings) bool { return s.RightBarColor == Default().RightBarColor }},
		{"int font size", Objects{GroupTextFormat: {"fontSize": 14}},
			func(s Settings) bool { return s.AxisFontSize == 14 }},
		{"wrong type ignored", Objects{GroupReferenceBar: {"show": "yes"}},
			func(s Settings) bool { return !s.ShowReferenceBars }},
		{"filters", Objects{GroupColumnFilter: {"leftFilter": "M", "rightFilter": "F"}},
			func(s Settings) bool { return s.LeftFilter == "M" && s.RightFilter == "F" }},
		{"data point", Objects{GroupDataPoint: {"opaque": 0.25, "fontSize": 10.0}},
			func(s Settings) bool { return s.Opaque == 0.25 && s.FontSize == 10 }},
		{"pane beats data point", Objects{
			GroupDataPoint:   {"axisPercent": true},
			GroupAxisControl: {"percent": false},
		}, func(s Settings) bool { return !s.AxisPercent }},
	} {
		if s := Parse(test.objs); !test.check(s) {
			t.Errorf("%s: Parse(%v) got %+v", test.name, test.objs, s)
		}
	}
}

func TestEnumerate(t *testing.T) {
	s := Default()
	s.RefBarWidth = 3
	got := Enumerate(s, GroupReferenceBar)
	want := []ObjectInstance{{
		ObjectName: GroupReferenceBar,
		Properties: Object{
			"show":        false,
			"refBarWidth": 3.0,
			"refBarColor": Fill("#555555"),
		},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Enumerate(referenceBar) got %+v; want %+v", got, want)
	}

	// Each group reports only its own properties.
	text := Enumerate(s, GroupTextFormat)
	if len(text) != 1 || len(text[0].Properties) != 1 || text[0].Properties["fontSize"] != 9.0 {
		t.Errorf("Enumerate(textFormat) got %+v; want fontSize only", text)
	}
	if got := Enumerate(s, GroupDataPoint); got != nil {
		t.Errorf("Enumerate(dataPoint) got %+v; want nil", got)
	}
	if got := Enumerate(s, "nope"); got != nil {
		t.Errorf("Enumerate(nope) got %+v; want nil", got)
	}
}

func TestObjectsRoundTrip(t *testing.T) {
	s := Default()
	s.AxisPercent = false
	s.LeftBarColor = "#000000"
	s.LeftFilter = "M"
	s.ShowReferenceBars = true
	s.AxisFontSize = 11

	var buf bytes.Buffer
	if err := Encode(&buf, ToObjects(s)); err != nil {
		t.Fatal(err)
	}
	objs, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := Parse(objs); got != s {
		t.Errorf("round trip through YAML got %+v; want %+v\nYAML:\n%s", got, s, buf.String())
	}
}

func TestDecode(t *testing.T) {
	const doc = `
axisControl:
  percent: false
  leftBarColor:
    solid:
      color: "#123456"
referenceBar:
  show: true
  refBarWidth: 4
`
	objs, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	s := Parse(objs)
	if s.AxisPercent || s.LeftBarColor != "#123456" || !s.ShowReferenceBars || s.RefBarWidth != 4 {
		t.Errorf("Parse(Decode) got %+v", s)
	}

	if objs, err := Decode(strings.NewReader("")); err != nil || objs != nil {
		t.Errorf("Decode(empty) got %v, %v; want nil, nil", objs, err)
	}
	if _, err := Decode(strings.NewReader("axisControl: [1, 2")); err == nil {
		t.Errorf("Decode of malformed YAML succeeded")
	}
}
