// Copyright 2025 The modmesh-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/modmesh/modmesh-go/internal/array"
)

// Key selects the target of SetItem.
type Key = array.Key

// Index selects one element by body-relative flat index.
type Index = array.Index

// Indices selects one element by multi-index.
type Indices = array.Indices

// Slice selects start:stop:step along one axis.
type Slice = array.Slice

// Ellipsis stands for the default slice on every unnamed axis.
type Ellipsis = array.Ellipsis

// Tuple combines slices and at most one Ellipsis.
type Tuple = array.Tuple

// All returns the slice covering a whole axis.
func All() Slice { return array.All() }

// Span returns the slice [start, stop).
func Span(start, stop int) Slice { return array.Span(start, stop) }

// From returns the slice [start, extent).
func From(start int) Slice { return array.From(start) }

// To returns the slice [0, stop).
func To(stop int) Slice { return array.To(stop) }
