package array

import "fmt"

// eachBody calls fn with every body element in row-major order until fn
// returns false.
func (a *SimpleArray[T]) eachBody(vals []T, fn func(v T) bool) {
	if body, ok := a.bodySlice(vals); ok {
		for _, v := range body {
			if !fn(v) {
				return
			}
		}
		return
	}
	forEachOffset(a.shape, a.stride, a.bodyRow0(), func(off int) bool {
		return fn(vals[off])
	})
}

// Sum adds all body elements in flat order. For bool it is the logical OR.
// Integer sums that overflow fail with ErrOverflow.
func (a *SimpleArray[T]) Sum() (T, error) {
	var acc T
	vals, err := a.values()
	if err != nil {
		return acc, err
	}
	k := kernelsFor[T]()
	ok := true
	a.eachBody(vals, func(v T) bool {
		acc, ok = k.accumulate(acc, v)
		return ok
	})
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: sum of %s body", ErrOverflow, a.DataType())
	}
	return acc, nil
}

// Min returns the smallest body element.
func (a *SimpleArray[T]) Min() (T, error) {
	k := kernelsFor[T]()
	return a.extreme("min", func(v, best T) bool { return k.less(v, best) })
}

// Max returns the largest body element.
func (a *SimpleArray[T]) Max() (T, error) {
	k := kernelsFor[T]()
	return a.extreme("max", func(v, best T) bool { return k.less(best, v) })
}

func (a *SimpleArray[T]) extreme(name string, better func(v, best T) bool) (T, error) {
	var best T
	vals, err := a.values()
	if err != nil {
		return best, err
	}
	found := false
	a.eachBody(vals, func(v T) bool {
		if !found || better(v, best) {
			best = v
			found = true
		}
		return true
	})
	if !found {
		return best, fmt.Errorf("%w: %s of shape %v with nghost %d", ErrEmptyReduction, name, a.shape, a.nghost)
	}
	return best, nil
}

// Abs returns a new array of the same shape whose body holds the absolute
// values of this array's body. Ghost rows are copied unchanged.
func (a *SimpleArray[T]) Abs() (*SimpleArray[T], error) {
	out, err := a.Clone()
	if err != nil {
		return nil, err
	}
	vals, _ := out.values()
	body, _ := out.bodySlice(vals)
	abs := kernelsFor[T]().abs
	for i, v := range body {
		body[i] = abs(v)
	}
	return out, nil
}
