package buffer

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrAllocation is returned when a memory request cannot be satisfied.
var ErrAllocation = errors.New("allocation failed")

// Limits bounds allocation requests.
type Limits struct {
	MaxBytes int // Largest single request in bytes.
}

// DefaultLimits accepts any request the runtime can represent.
func DefaultLimits() Limits {
	return Limits{MaxBytes: math.MaxInt}
}

var maxBytes atomic.Int64

func init() {
	SetLimits(DefaultLimits())
}

// SetLimits replaces the process-wide allocation limits.
func SetLimits(l Limits) {
	if l.MaxBytes <= 0 {
		l = DefaultLimits()
	}
	maxBytes.Store(int64(l.MaxBytes))
}

// CurrentLimits returns the process-wide allocation limits.
func CurrentLimits() Limits {
	return Limits{MaxBytes: int(maxBytes.Load())}
}

// allocate returns n zeroed bytes or ErrAllocation.
func allocate(n int) (data []byte, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocation, n)
	}
	if limit := maxBytes.Load(); int64(n) > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, n, limit)
	}
	defer func() {
		// makeslice panics with a runtime error when the size is unrepresentable.
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("%w: %d bytes: %v", ErrAllocation, n, r)
		}
	}()
	return make([]byte, n), nil
}
