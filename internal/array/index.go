package array

import "fmt"

// flatOffset resolves a body-relative flat index to an element offset.
// The index is a row-major position shifted by the ghost rows, so negative
// values down to -nghost*rowLen reach the ghost region.
func (a *SimpleArray[T]) flatOffset(i int) (int, error) {
	size := a.Size()
	pos := i + a.bodyRow0()*a.rowLen()
	if pos < 0 || pos >= size {
		lo := -a.bodyRow0() * a.rowLen()
		return 0, fmt.Errorf("%w: index %d outside [%d, %d)", ErrIndex, i, lo, lo+size)
	}
	off := 0
	for k := len(a.shape) - 1; k >= 0; k-- {
		off += (pos % a.shape[k]) * a.stride[k]
		pos /= a.shape[k]
	}
	return off, nil
}

// indexOffset resolves a multi-index. The first component is ghost-shifted.
func (a *SimpleArray[T]) indexOffset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrIndex, len(a.shape), len(idx))
	}
	off := 0
	for k, v := range idx {
		lo, hi := 0, a.shape[k]
		if k == 0 {
			lo, hi = -a.nghost, a.shape[0]-a.nghost
		}
		if v < lo || v >= hi {
			return 0, fmt.Errorf("%w: index %d outside [%d, %d) for dimension %d", ErrIndex, v, lo, hi, k)
		}
		if k == 0 {
			v += a.nghost
		}
		off += v * a.stride[k]
	}
	return off, nil
}

// At returns the element at body-relative flat index i.
func (a *SimpleArray[T]) At(i int) (T, error) {
	var zero T
	vals, err := a.values()
	if err != nil {
		return zero, err
	}
	off, err := a.flatOffset(i)
	if err != nil {
		return zero, err
	}
	return vals[off], nil
}

// Set writes v at body-relative flat index i.
func (a *SimpleArray[T]) Set(i int, v T) error {
	vals, err := a.values()
	if err != nil {
		return err
	}
	off, err := a.flatOffset(i)
	if err != nil {
		return err
	}
	vals[off] = v
	return nil
}

// AtIndex returns the element at the given indices, one per axis.
//
// Example:
//
//	a, _ := array.New[float64](array.Shape{3, 4})
//	v, err := a.AtIndex(1, 2) // Row 1, column 2
func (a *SimpleArray[T]) AtIndex(idx ...int) (T, error) {
	var zero T
	vals, err := a.values()
	if err != nil {
		return zero, err
	}
	off, err := a.indexOffset(idx)
	if err != nil {
		return zero, err
	}
	return vals[off], nil
}

// SetIndex writes v at the given indices, one per axis.
func (a *SimpleArray[T]) SetIndex(v T, idx ...int) error {
	vals, err := a.values()
	if err != nil {
		return err
	}
	off, err := a.indexOffset(idx)
	if err != nil {
		return err
	}
	vals[off] = v
	return nil
}
