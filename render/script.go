// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"encoding/json"
	"strings"
)

// A Click is the JSON body posted by ClickScript.
type Click struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Label string `json:"label"`
	Multi bool   `json:"multi"`
}

const clickScript = `
(function() {
	var url = URL_PLACEHOLDER;
	document.addEventListener("click", function(evt) {
		var el = evt.target;
		while (el && !(el.getAttribute && el.getAttribute("data-kind"))) {
			el = el.parentNode;
		}
		if (!el) {
			return;
		}
		evt.stopPropagation();
		var body = {
			kind: el.getAttribute("data-kind"),
			index: parseInt(el.getAttribute("data-index") || "-1", 10),
			label: el.getAttribute("data-label") || "",
			multi: evt.ctrlKey || evt.metaKey
		};
		var req = new XMLHttpRequest();
		req.open("POST", url);
		req.setRequestHeader("Content-Type", "application/json");
		req.onload = function() { location.reload(); };
		req.send(JSON.stringify(body));
	}, true);
})();
`

// ClickScript returns JavaScript that posts each click on a chart
// element to url as a Click.
func ClickScript(url string) string {
	q, _ := json.Marshal(url)
	return strings.Replace(clickScript, "URL_PLACEHOLDER", string(q), 1)
}
