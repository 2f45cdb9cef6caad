// Copyright 2025 The modmesh-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/modmesh/modmesh-go/internal/buffer"
)

// ConcreteBuffer is a fixed-length, reference-counted byte buffer. It owns
// its memory or borrows it with a release callback.
type ConcreteBuffer = buffer.ConcreteBuffer

// Expander is a resizable byte buffer.
type Expander = buffer.Expander

// Mode tells whether a buffer owns or borrows its memory.
type Mode = buffer.Mode

// Buffer modes.
const (
	Owned    Mode = buffer.Owned
	Borrowed Mode = buffer.Borrowed
)

// Limits caps allocation requests.
type Limits = buffer.Limits

// NewBuffer allocates a zero-filled Owned buffer of n bytes.
func NewBuffer(n int) (*ConcreteBuffer, error) {
	return buffer.New(n)
}

// BorrowBuffer wraps memory owned by someone else. release runs exactly once,
// when the last holder lets go.
func BorrowBuffer(data []byte, release func()) *ConcreteBuffer {
	return buffer.Borrow(data, release)
}

// NewExpander allocates an Owned resizable buffer of n bytes.
func NewExpander(n int) (*Expander, error) {
	return buffer.NewExpander(n)
}

// MapFile maps a file read-write as a Borrowed buffer.
func MapFile(path string) (*ConcreteBuffer, error) {
	return buffer.MapFile(path)
}

// NewLocked allocates n bytes of locked, guarded memory as a Borrowed buffer.
func NewLocked(n int) (*ConcreteBuffer, error) {
	return buffer.NewLocked(n)
}

// SetLimits replaces the process-wide allocation limits.
func SetLimits(l Limits) {
	buffer.SetLimits(l)
}
