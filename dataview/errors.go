// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataview

import "fmt"

// InvalidInputError reports a malformed data view from the host.
type InvalidInputError struct {
	Field  string // column or structure at fault
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input in %s: %s", e.Field, e.Reason)
}
