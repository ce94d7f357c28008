// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package identity provides selection identities for data rows.
//
// An identity is derived from a category column and a row. Two rows
// with the same category value in the same column have the same
// identity, so an identity survives the host reordering or
// re-querying its data.
package identity

import (
	"errors"
	"fmt"

	"github.com/aclements/popviz/dataview"
	"github.com/minio/highwayhash"
)

// An ID is an opaque selection identity. The zero ID identifies
// nothing.
type ID struct {
	key string

	// Column and Value record the category the ID was derived
	// from.
	Column, Value string
}

// Key returns a string that is equal for equal IDs and can be used
// as a map key.
func (id ID) Key() string {
	return id.key
}

// Equal reports whether id and o identify the same row.
func (id ID) Equal(o ID) bool {
	return id.key == o.key
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id.key == ""
}

func (id ID) String() string {
	if id.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%s=%s#%s", id.Column, id.Value, id.key)
}

// A Factory creates the identity of a row from one of its category
// columns.
type Factory interface {
	CreateIdentity(col *dataview.CategoryColumn, row int) ID
}

// DefaultKey is the HighwayHash key used by NewFactory(nil).
var DefaultKey = []byte("popviz selection identity key 01")

// HashFactory derives identities by hashing the column's query name
// and the category value.
type HashFactory struct {
	key []byte
}

// NewFactory returns a HashFactory using key, which must be 32 bytes
// long. If key is nil, it uses DefaultKey.
func NewFactory(key []byte) (*HashFactory, error) {
	if key == nil {
		key = DefaultKey
	}
	if _, err := highwayhash.New64(key); err != nil {
		return nil, err
	}
	return &HashFactory{key}, nil
}

// ErrNoRow is returned by Lookup when no row has the requested
// category value.
var ErrNoRow = errors.New("no row with that category value")

// CreateIdentity returns the identity of row in col. It returns the
// zero ID if row is out of range.
func (f *HashFactory) CreateIdentity(col *dataview.CategoryColumn, row int) ID {
	if col == nil || row < 0 || row >= len(col.Values) {
		return ID{}
	}
	name, val := col.Source.Name(), col.Values[row]
	data := make([]byte, 0, len(name)+1+len(val))
	data = append(data, name...)
	data = append(data, 0)
	data = append(data, val...)
	sum := highwayhash.Sum64(data, f.key)
	return ID{key: fmt.Sprintf("%016x", sum), Column: name, Value: val}
}

// Lookup returns the identity of the first row of col whose category
// value is val.
func (f *HashFactory) Lookup(col *dataview.CategoryColumn, val string) (ID, error) {
	for i, v := range col.Values {
		if v == val {
			return f.CreateIdentity(col, i), nil
		}
	}
	return ID{}, fmt.Errorf("%s=%q: %w", col.Source.Name(), val, ErrNoRow)
}
