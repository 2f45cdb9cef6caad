package buffer

import (
	"fmt"
	"iter"
	"log/slog"
)

// Expander is a resizable reference-counted buffer.
//
// Resizing reallocates: slices or pointers obtained before a resize must not
// be used afterwards. Memory replaced by a resize is let go through the same
// ownership rule as a final release, so a Borrowed expander runs its release
// callback at its first reallocation and is Owned from then on.
type Expander struct {
	data    []byte
	mode    Mode
	release func()
	refs    refs
}

// NewExpander allocates a zeroed Owned expander of n bytes.
func NewExpander(n int) (*Expander, error) {
	data, err := allocate(n)
	if err != nil {
		return nil, err
	}
	e := &Expander{data: data, mode: Owned}
	e.refs.init()
	trackAlloc(Owned, cap(data))
	return e, nil
}

// BorrowExpander wraps foreign memory. release runs exactly once, either at
// the first reallocation or at the last Release, whichever comes first.
func BorrowExpander(data []byte, release func()) *Expander {
	e := &Expander{data: data, mode: Borrowed, release: release}
	e.refs.init()
	trackAlloc(Borrowed, cap(data))
	return e
}

// Len returns the length in bytes.
func (e *Expander) Len() int {
	return len(e.data)
}

// Cap returns the capacity in bytes.
func (e *Expander) Cap() int {
	return cap(e.data)
}

// Mode returns the current ownership mode.
func (e *Expander) Mode() Mode {
	return e.mode
}

// Data returns the bytes in [0, Len()).
// WARNING: invalidated by Resize, Reserve and Append.
func (e *Expander) Data() []byte {
	return e.data
}

// Bytes yields a pointer to every byte in [0, Len()).
func (e *Expander) Bytes() iter.Seq[*byte] {
	return byteSeq(func() []byte { return e.data })
}

// Retain adds a reference and returns e.
func (e *Expander) Retain() *Expander {
	e.refs.retain()
	return e
}

// Release drops a reference, finalizing the memory on the last one.
func (e *Expander) Release() {
	if !e.refs.drop() {
		return
	}
	e.letGo()
	e.data = nil
}

// Resize reallocates to n bytes, copying min(Len(), n) bytes. New bytes are
// zero.
func (e *Expander) Resize(n int) error {
	return e.realloc(n, n)
}

// Reserve makes sure the capacity is at least n bytes without changing Len.
func (e *Expander) Reserve(n int) error {
	if n <= cap(e.data) {
		return nil
	}
	return e.realloc(len(e.data), n)
}

// Append copies p to the end, growing the capacity geometrically.
func (e *Expander) Append(p []byte) error {
	need := len(e.data) + len(p)
	if need > cap(e.data) {
		if err := e.realloc(len(e.data), max(need, 2*cap(e.data))); err != nil {
			return err
		}
	}
	e.data = append(e.data, p...)
	return nil
}

// Snapshot copies the current bytes into a new Owned ConcreteBuffer.
func (e *Expander) Snapshot() (*ConcreteBuffer, error) {
	return FromBytes(e.data)
}

// String returns a short description.
func (e *Expander) String() string {
	return fmt.Sprintf("Expander(%d/%d bytes, %s)", len(e.data), cap(e.data), e.mode)
}

func (e *Expander) realloc(length, capacity int) error {
	if e.refs.done.Load() {
		return fmt.Errorf("%w: expander already released", ErrAllocation)
	}
	fresh, err := allocate(capacity)
	if err != nil {
		return err
	}
	fresh = fresh[:length]
	copy(fresh, e.data)

	slog.Debug("expander realloc", "from", len(e.data), "to", length, "cap", capacity)
	e.letGo()
	e.data = fresh
	e.mode = Owned
	e.release = nil
	trackAlloc(Owned, cap(fresh))
	resizesTotal.Inc()
	return nil
}

// letGo gives up the current memory according to the ownership mode.
func (e *Expander) letGo() {
	if e.mode == Borrowed && e.release != nil {
		e.release()
		e.release = nil
	}
	trackRelease(e.mode, cap(e.data))
}
