package array

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Shape represents the extent of each axis.
type Shape []int

// NumElements returns the product of all extents (1 for a rank-0 shape).
// It assumes the shape passed Validate.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no extent is negative and that the element count
// fits in an int.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	if slices.Contains(s, 0) {
		return nil
	}
	n := 1
	for _, dim := range s {
		var ok bool
		if n, ok = mulInt(n, dim); !ok {
			return fmt.Errorf("%w: shape %v has more than %d elements", ErrOverflow, s, math.MaxInt)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return append(Shape{}, s...)
}

// ComputeStrides returns row-major strides in elements: the last axis is
// contiguous and every other stride spans the axes after it.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

// String formats the shape as "(3, 2)".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// mulInt returns a*b for non-negative operands, or false when the product
// does not fit in an int.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// addInt returns a+b for non-negative operands, or false on overflow.
func addInt(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// byteLen returns the packed byte size of shape for items of size bytes.
// The shape must have passed Validate.
func byteLen(shape Shape, size int) (int, bool) {
	return mulInt(shape.NumElements(), size)
}

// endOffset returns one past the last unit addressed by shape and stride,
// where an element occupies size units. Every extent must be positive and
// every stride non-negative. It reports false when the offset does not fit
// in an int.
func endOffset(shape Shape, stride []int, size int) (int, bool) {
	last := 0
	for i, s := range stride {
		span, ok := mulInt(shape[i]-1, s)
		if !ok {
			return 0, false
		}
		if last, ok = addInt(last, span); !ok {
			return 0, false
		}
	}
	return addInt(last, size)
}
