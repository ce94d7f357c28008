// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/popviz/dataview"
	"github.com/aclements/popviz/identity"
	"github.com/aclements/popviz/visual"
)

const testCSV = `band,sex,people,reference
0-4,Males,10,9
0-4,Females,8,7
5-9,Males,12,11
5-9,Females,9,10
`

const testConfig = `
columns:
  age: band
  gender: sex
roles:
  people: [values]
axisControl:
  leftLabel: Men
  percent: false
`

func testView(t *testing.T) (*dataview.DataView, *Config) {
	t.Helper()
	cfg, err := parseConfig([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	tab, err := dataview.ReadCSV(strings.NewReader(testCSV), nil)
	if err != nil {
		t.Fatal(err)
	}
	view, err := dataview.FromTable(tab, cfg.layout(tab))
	if err != nil {
		t.Fatal(err)
	}
	return view, cfg
}

func TestConfigLayout(t *testing.T) {
	cfg, err := parseConfig([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Objects["axisControl"]["leftLabel"]; got != "Men" {
		t.Errorf("axisControl.leftLabel got %v; want Men", got)
	}
	if _, ok := cfg.Objects["columns"]; ok {
		t.Errorf("columns section leaked into settings objects")
	}

	tab, err := dataview.ReadCSV(strings.NewReader(testCSV), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := dataview.Layout{
		Age:    "band",
		Gender: "sex",
		Measures: []dataview.Measure{
			{Column: "people", Roles: []dataview.Role{dataview.RoleValues}},
			{Column: "reference", Roles: []dataview.Role{dataview.RoleReference}},
		},
	}
	if got := cfg.layout(tab); !reflect.DeepEqual(got, want) {
		t.Errorf("layout got %+v; want %+v", got, want)
	}

	empty, err := parseConfig(nil)
	if err != nil {
		t.Fatalf("parsing empty config: %v", err)
	}
	if got := empty.layout(tab); got.Age != "" || len(got.Measures) != 2 || got.Measures[0].Roles != nil {
		t.Errorf("empty config layout got %+v; want inferred layout", got)
	}
}

func TestDumpData(t *testing.T) {
	view, _ := testView(t)
	var buf bytes.Buffer
	if err := dataview.Fprint(&buf, view); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"band", "sex", "people", "reference", "5-9", "Females"} {
		if !strings.Contains(out, want) {
			t.Errorf("data dump missing %q:\n%s", want, out)
		}
	}
}

func TestSelectAges(t *testing.T) {
	view, _ := testView(t)
	ids, _ := identity.NewFactory(nil)
	keys, err := selectAges(ids, view, "0-4, 5-9")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] == keys[1] {
		t.Errorf("selectAges got %v; want two distinct keys", keys)
	}
	if _, err := selectAges(ids, view, "90+"); err == nil {
		t.Errorf("selectAges of unknown band succeeded")
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *visual.Visual) {
	t.Helper()
	view, cfg := testView(t)
	v, err := visual.New(visual.Options{AllowInteractions: true})
	if err != nil {
		t.Fatal(err)
	}
	update := visual.UpdateOptions{
		Viewport: visual.Viewport{Width: 400, Height: 300},
		DataView: view,
		Objects:  cfg.Objects,
	}
	if err := v.Update(update); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(newServer("test <chart>", v, update).handler())
	t.Cleanup(ts.Close)
	return ts, v
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(data)
}

func TestServeIndex(t *testing.T) {
	ts, _ := newTestServer(t)
	code, body := get(t, ts.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("GET / got status %d", code)
	}
	for _, want := range []string{"<title>test &lt;chart&gt;</title>", "<svg", "Men", `"/click"`} {
		if !strings.Contains(body, want) {
			t.Errorf("GET / missing %q", want)
		}
	}
	if code, _ := get(t, ts.URL+"/nope"); code != http.StatusNotFound {
		t.Errorf("GET /nope got status %d; want 404", code)
	}
}

func TestServeClick(t *testing.T) {
	ts, v := newTestServer(t)

	for _, test := range []struct {
		body    string
		handled bool
		nsel    int
	}{
		{`{"kind":"point","index":0}`, true, 1},
		{`{"kind":"point","index":1,"multi":true}`, true, 2},
		{`{"kind":"background"}`, true, 0},
		{`{"kind":"axisLabel","label":"Females"}`, true, 2},
		{`{"kind":"category","label":"0-4"}`, true, 1},
	} {
		code, body := post(t, ts.URL+"/click", test.body)
		if code != http.StatusOK {
			t.Fatalf("POST %s got status %d: %s", test.body, code, body)
		}
		var reply clickReply
		if err := json.Unmarshal([]byte(body), &reply); err != nil {
			t.Fatal(err)
		}
		if reply.Handled != test.handled || len(reply.Selection) != test.nsel {
			t.Errorf("POST %s got handled=%v selection=%v; want handled=%v with %d selected", test.body, reply.Handled, reply.Selection, test.handled, test.nsel)
		}
		if got := v.Selection(); len(got) != len(reply.Selection) {
			t.Errorf("visual selection %v differs from reply %v", got, reply.Selection)
		}
	}

	for _, body := range []string{`{"kind":"wiggle"}`, `not json`} {
		if code, _ := post(t, ts.URL+"/click", body); code != http.StatusBadRequest {
			t.Errorf("POST %s got status %d; want 400", body, code)
		}
	}
	if code, _ := get(t, ts.URL+"/click"); code != http.StatusMethodNotAllowed {
		t.Errorf("GET /click got status %d; want 405", code)
	}
}

func TestServeSettings(t *testing.T) {
	ts, v := newTestServer(t)

	code, body := get(t, ts.URL+"/settings")
	if code != http.StatusOK || !strings.Contains(body, "leftLabel: Men") {
		t.Errorf("GET /settings got %d:\n%s", code, body)
	}

	code, body = post(t, ts.URL+"/settings", "axisControl:\n  rightLabel: Women\n")
	if code != http.StatusNoContent {
		t.Fatalf("POST /settings got status %d: %s", code, body)
	}
	if got := v.Settings().RightLabel; got != "Women" {
		t.Errorf("RightLabel after POST got %q; want Women", got)
	}
	if code, _ := post(t, ts.URL+"/settings", "axisControl: [unclosed"); code != http.StatusBadRequest {
		t.Errorf("POST of malformed settings got status %d; want 400", code)
	}

	code, body = get(t, ts.URL+"/table")
	if code != http.StatusOK || !strings.Contains(body, "5-9") {
		t.Errorf("GET /table got %d:\n%s", code, body)
	}
}
