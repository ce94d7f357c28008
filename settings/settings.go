// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings holds the user-tunable settings of a population
// pyramid and converts them to and from the host's property objects.
//
// The host stores settings as named objects (one per group in the
// property pane), each a set of named properties. Only properties the
// user changed are present; Parse fills in the rest from Default.
package settings

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Settings is the flat configuration of one chart.
type Settings struct {
	DefaultColor      string
	ShowAllDataPoints bool
	Fill              string
	FillRule          string

	// FontSize is the data label size in points.
	FontSize float64

	// AxisPercent shows the value axis as a percentage of the
	// total instead of absolute values.
	AxisPercent bool

	// AxisFontSize is the axis text size in points.
	AxisFontSize float64

	LeftBarColor, RightBarColor string

	// LeftLabel and RightLabel are the captions under each half.
	LeftLabel, RightLabel string

	ShowReferenceBars bool
	RefBarWidth       float64
	RefBarColor       string

	// LeftFilter and RightFilter are the gender category values
	// drawn on the left and right halves.
	LeftFilter, RightFilter string

	// Transparent, Opaque and Solid are the fill opacities of
	// reference bars, de-emphasized bars and emphasized bars.
	Transparent, Opaque, Solid float64
}

// Default returns the settings used for any property the host does
// not supply.
func Default() Settings {
	return Settings{
		ShowAllDataPoints: true,
		FontSize:          12,
		AxisPercent:       true,
		AxisFontSize:      9,
		LeftBarColor:      "#85acd6",
		RightBarColor:     "#d685b7",
		LeftLabel:         "Males",
		RightLabel:        "Females",
		RefBarWidth:       2,
		RefBarColor:       "#555555",
		LeftFilter:        "Males",
		RightFilter:       "Females",
		Transparent:       0,
		Opaque:            0.5,
		Solid:             1.0,
	}
}

// An Object is the set of properties of one settings group.
type Object map[string]interface{}

// Objects maps group names to their properties.
type Objects map[string]Object

// Group names understood by Parse and Enumerate.
const (
	GroupDataPoint    = "dataPoint"
	GroupTextFormat   = "textFormat"
	GroupColumnFilter = "dataColumnFilter"
	GroupAxisControl  = "axisControl"
	GroupReferenceBar = "referenceBar"
)

// Groups lists the groups exposed in the property pane, in display
// order.
var Groups = []string{GroupTextFormat, GroupColumnFilter, GroupAxisControl, GroupReferenceBar}

type kind int

const (
	kindBool kind = iota
	kindNumber
	kindText
	kindFill
)

type property struct {
	group, name string
	kind        kind
	field       func(s *Settings) interface{}
}

// dataPointProps are parsed from the dataPoint group by field name.
var dataPointProps = []property{
	{GroupDataPoint, "defaultColor", kindText, func(s *Settings) interface{} { return &s.DefaultColor }},
	{GroupDataPoint, "showAllDataPoints", kindBool, func(s *Settings) interface{} { return &s.ShowAllDataPoints }},
	{GroupDataPoint, "fill", kindText, func(s *Settings) interface{} { return &s.Fill }},
	{GroupDataPoint, "fillRule", kindText, func(s *Settings) interface{} { return &s.FillRule }},
	{GroupDataPoint, "fontSize", kindNumber, func(s *Settings) interface{} { return &s.FontSize }},
	{GroupDataPoint, "axisPercent", kindBool, func(s *Settings) interface{} { return &s.AxisPercent }},
	{GroupDataPoint, "axisFontSize", kindNumber, func(s *Settings) interface{} { return &s.AxisFontSize }},
	{GroupDataPoint, "leftBarColor", kindText, func(s *Settings) interface{} { return &s.LeftBarColor }},
	{GroupDataPoint, "rightBarColor", kindText, func(s *Settings) interface{} { return &s.RightBarColor }},
	{GroupDataPoint, "leftLabel", kindText, func(s *Settings) interface{} { return &s.LeftLabel }},
	{GroupDataPoint, "rightLabel", kindText, func(s *Settings) interface{} { return &s.RightLabel }},
	{GroupDataPoint, "showReferenceBars", kindBool, func(s *Settings) interface{} { return &s.ShowReferenceBars }},
	{GroupDataPoint, "refBarWidth", kindNumber, func(s *Settings) interface{} { return &s.RefBarWidth }},
	{GroupDataPoint, "refBarColor", kindText, func(s *Settings) interface{} { return &s.RefBarColor }},
	{GroupDataPoint, "leftFilter", kindText, func(s *Settings) interface{} { return &s.LeftFilter }},
	{GroupDataPoint, "rightFilter", kindText, func(s *Settings) interface{} { return &s.RightFilter }},
	{GroupDataPoint, "transparent", kindNumber, func(s *Settings) interface{} { return &s.Transparent }},
	{GroupDataPoint, "opaque", kindNumber, func(s *Settings) interface{} { return &s.Opaque }},
	{GroupDataPoint, "solid", kindNumber, func(s *Settings) interface{} { return &s.Solid }},
}

// paneProps are the properties exposed in the property pane. They
// are applied after dataPointProps and so take precedence.
var paneProps = []property{
	{GroupTextFormat, "fontSize", kindNumber, func(s *Settings) interface{} { return &s.AxisFontSize }},

	{GroupColumnFilter, "leftFilter", kindText, func(s *Settings) interface{} { return &s.LeftFilter }},
	{GroupColumnFilter, "rightFilter", kindText, func(s *Settings) interface{} { return &s.RightFilter }},

	{GroupAxisControl, "percent", kindBool, func(s *Settings) interface{} { return &s.AxisPercent }},
	{GroupAxisControl, "leftLabel", kindText, func(s *Settings) interface{} { return &s.LeftLabel }},
	{GroupAxisControl, "leftBarColor", kindFill, func(s *Settings) interface{} { return &s.LeftBarColor }},
	{GroupAxisControl, "rightLabel", kindText, func(s *Settings) interface{} { return &s.RightLabel }},
	{GroupAxisControl, "rightBarColor", kindFill, func(s *Settings) interface{} { return &s.RightBarColor }},

	{GroupReferenceBar, "show", kindBool, func(s *Settings) interface{} { return &s.ShowReferenceBars }},
	{GroupReferenceBar, "refBarWidth", kindNumber, func(s *Settings) interface{} { return &s.RefBarWidth }},
	{GroupReferenceBar, "refBarColor", kindFill, func(s *Settings) interface{} { return &s.RefBarColor }},
}

// Parse returns Default overridden by every recognized property in
// objs. Properties of the wrong type are ignored, as are unknown
// groups and properties.
func Parse(objs Objects) Settings {
	s := Default()
	for _, props := range [][]property{dataPointProps, paneProps} {
		for _, p := range props {
			v, ok := objs[p.group][p.name]
			if !ok {
				continue
			}
			p.set(&s, v)
		}
	}
	return s
}

func (p property) set(s *Settings, v interface{}) {
	switch f := p.field(s).(type) {
	case *bool:
		if b, ok := v.(bool); ok {
			*f = b
		}
	case *float64:
		if x, ok := toFloat(v); ok {
			*f = x
		}
	case *string:
		if p.kind == kindFill {
			if c, ok := fillColor(v); ok {
				*f = c
			}
			return
		}
		if str, ok := v.(string); ok {
			*f = str
		}
	}
}

func (p property) get(s *Settings) interface{} {
	switch f := p.field(s).(type) {
	case *bool:
		return *f
	case *float64:
		return *f
	case *string:
		if p.kind == kindFill {
			return Fill(*f)
		}
		return *f
	}
	panic(fmt.Sprintf("bad settings field for %s.%s", p.group, p.name))
}

// Fill returns the host representation of a solid fill color.
func Fill(color string) Object {
	return Object{"solid": Object{"color": color}}
}

// fillColor extracts the color of a solid fill. It also accepts a
// bare color string.
func fillColor(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case Object:
		return fillColor(map[string]interface{}(v))
	case map[string]interface{}:
		solid, ok := v["solid"]
		if !ok {
			return "", false
		}
		switch solid := solid.(type) {
		case Object:
			c, ok := solid["color"].(string)
			return c, ok
		case map[string]interface{}:
			c, ok := solid["color"].(string)
			return c, ok
		}
	}
	return "", false
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// An ObjectInstance is one group of properties as shown in the host's
// property pane.
type ObjectInstance struct {
	ObjectName string
	Properties Object
	Selector   interface{}
}

// Enumerate returns the property-pane instances for group objectName
// with their current values in s. It returns nil for unknown groups.
func Enumerate(s Settings, objectName string) []ObjectInstance {
	var inst *ObjectInstance
	for _, p := range paneProps {
		if p.group != objectName {
			continue
		}
		if inst == nil {
			inst = &ObjectInstance{ObjectName: objectName, Properties: Object{}}
		}
		inst.Properties[p.name] = p.get(&s)
	}
	if inst == nil {
		return nil
	}
	return []ObjectInstance{*inst}
}

// ToObjects returns the property-pane groups of s as host objects.
// Parse(ToObjects(s)) reproduces every property-pane field of s.
func ToObjects(s Settings) Objects {
	objs := make(Objects)
	for _, g := range Groups {
		for _, inst := range Enumerate(s, g) {
			objs[inst.ObjectName] = inst.Properties
		}
	}
	return objs
}

// Decode reads host objects from a YAML document whose top-level keys
// are group names.
func Decode(r io.Reader) (Objects, error) {
	var objs Objects
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&objs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return objs, nil
}

// Encode writes objs to w as YAML with groups in sorted order.
func Encode(w io.Writer, objs Objects) error {
	names := make([]string, 0, len(objs))
	for name := range objs {
		names = append(names, name)
	}
	sort.Strings(names)

	var doc yaml.Node
	doc.Kind = yaml.MappingNode
	for _, name := range names {
		var val yaml.Node
		if err := val.Encode(objs[name]); err != nil {
			return err
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &val)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
