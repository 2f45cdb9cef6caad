// Package buffer provides reference-counted untyped memory blocks.
//
// A ConcreteBuffer either owns its memory (Owned) or aliases memory owned by
// someone else (Borrowed). When the last reference is released an Owned
// buffer drops its memory, while a Borrowed buffer invokes its release
// callback instead. Exactly one of the two happens, exactly once.
package buffer

import (
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"
)

// Mode tells who is responsible for the memory behind a buffer.
type Mode int

// Ownership modes.
const (
	Owned Mode = iota
	Borrowed
)

// String returns the lower-case mode name (also used as a metric label).
func (m Mode) String() string {
	switch m {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	default:
		return "unknown"
	}
}

// refs is the shared reference counter.
type refs struct {
	count atomic.Int32
	done  atomic.Bool
}

func (r *refs) init() {
	r.count.Store(1)
}

// retain adds a reference. It is a no-op once the count has reached zero.
func (r *refs) retain() bool {
	for {
		n := r.count.Load()
		if n <= 0 {
			return false
		}
		if r.count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// drop removes a reference and reports whether the caller must finalize.
// It returns true for exactly one caller.
func (r *refs) drop() bool {
	for {
		n := r.count.Load()
		if n <= 0 {
			return false
		}
		if r.count.CompareAndSwap(n, n-1) {
			return n == 1 && r.done.CompareAndSwap(false, true)
		}
	}
}

// ConcreteBuffer is a fixed-size reference-counted block of bytes.
type ConcreteBuffer struct {
	data    []byte
	mode    Mode
	release func()
	refs    refs
}

// New allocates a zeroed Owned buffer of n bytes with one reference.
func New(n int) (*ConcreteBuffer, error) {
	data, err := allocate(n)
	if err != nil {
		return nil, err
	}
	b := &ConcreteBuffer{data: data, mode: Owned}
	b.refs.init()
	trackAlloc(Owned, len(data))
	return b, nil
}

// Borrow wraps memory owned elsewhere without copying. release runs exactly
// once, when the last reference is dropped; it may be nil.
func Borrow(data []byte, release func()) *ConcreteBuffer {
	b := &ConcreteBuffer{data: data, mode: Borrowed, release: release}
	b.refs.init()
	trackAlloc(Borrowed, len(data))
	return b
}

// FromBytes allocates an Owned buffer holding a copy of data.
func FromBytes(data []byte) (*ConcreteBuffer, error) {
	b, err := New(len(data))
	if err != nil {
		return nil, err
	}
	copy(b.data, data)
	return b, nil
}

// Len returns the buffer length in bytes.
func (b *ConcreteBuffer) Len() int {
	return len(b.data)
}

// Mode returns the ownership mode.
func (b *ConcreteBuffer) Mode() Mode {
	return b.mode
}

// IsBorrowed reports whether the memory is owned by someone else.
func (b *ConcreteBuffer) IsBorrowed() bool {
	return b.mode == Borrowed
}

// Data returns the underlying bytes (nil once released).
// WARNING: Direct access to underlying memory. Use with caution.
func (b *ConcreteBuffer) Data() []byte {
	return b.data
}

// RefCount returns the current number of references.
func (b *ConcreteBuffer) RefCount() int {
	return int(b.refs.count.Load())
}

// Released reports whether the last reference has been dropped.
func (b *ConcreteBuffer) Released() bool {
	return b.refs.done.Load()
}

// Retain adds a reference and returns b. Retaining a released buffer is a
// no-op.
func (b *ConcreteBuffer) Retain() *ConcreteBuffer {
	if !b.refs.retain() {
		slog.Debug("retain on released buffer", "mode", b.mode, "len", len(b.data))
	}
	return b
}

// Release drops a reference. On the last one an Owned buffer frees its memory
// and a Borrowed buffer runs its release callback.
func (b *ConcreteBuffer) Release() {
	if !b.refs.drop() {
		return
	}
	n := len(b.data)
	b.data = nil
	if b.mode == Borrowed && b.release != nil {
		slog.Debug("releasing borrowed buffer", "len", n)
		b.release()
	}
	trackRelease(b.mode, n)
}

// Clone copies the bytes into a new Owned buffer, whatever b's mode is.
func (b *ConcreteBuffer) Clone() (*ConcreteBuffer, error) {
	return FromBytes(b.data)
}

// Bytes yields a pointer to every byte in [0, Len()). The sequence is lazy
// and can be ranged over more than once.
func (b *ConcreteBuffer) Bytes() iter.Seq[*byte] {
	return byteSeq(func() []byte { return b.data })
}

// String returns a short description.
func (b *ConcreteBuffer) String() string {
	return fmt.Sprintf("ConcreteBuffer(%d bytes, %s)", len(b.data), b.mode)
}

func byteSeq(data func() []byte) iter.Seq[*byte] {
	return func(yield func(*byte) bool) {
		d := data()
		for i := range d {
			if !yield(&d[i]) {
				return
			}
		}
	}
}
