package buffer

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// NewLocked allocates n bytes of guarded memory that is locked into RAM and
// excluded from core dumps. The memory belongs to memguard, so the result is
// a Borrowed buffer whose release callback destroys (wipes and unmaps) it.
func NewLocked(n int) (*ConcreteBuffer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: locked buffer size must be positive, got %d", ErrAllocation, n)
	}
	if limit := CurrentLimits().MaxBytes; n > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, n, limit)
	}
	lb := memguard.NewBuffer(n)
	if lb.Size() != n {
		lb.Destroy()
		return nil, fmt.Errorf("%w: locked allocation of %d bytes", ErrAllocation, n)
	}
	return Borrow(lb.Bytes(), lb.Destroy), nil
}
