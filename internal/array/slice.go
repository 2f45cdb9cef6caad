package array

import (
	"fmt"
	"strconv"
	"unsafe"
)

// Key selects the target of SetItem. It is one of Index, Indices, Slice,
// Ellipsis or Tuple.
type Key interface {
	isKey()
}

// Index selects one element by body-relative flat index.
type Index int

// Indices selects one element by multi-index.
type Indices []int

// Slice selects a range along one axis. Nil fields take their defaults:
// start 0, stop the axis extent, step 1. Negative start and stop count from
// the end of the axis.
type Slice struct {
	Start, Stop, Step *int
}

// Ellipsis stands for the default slice on every axis not otherwise named.
type Ellipsis struct{}

// Tuple combines slices and at most one Ellipsis, one entry per axis.
type Tuple []Key

func (Index) isKey()    {}
func (Indices) isKey()  {}
func (Slice) isKey()    {}
func (Ellipsis) isKey() {}
func (Tuple) isKey()    {}

// All returns the default slice (every element of the axis).
func All() Slice {
	return Slice{}
}

// Span returns the slice [start, stop).
func Span(start, stop int) Slice {
	return Slice{Start: &start, Stop: &stop}
}

// From returns the slice [start, extent).
func From(start int) Slice {
	return Slice{Start: &start}
}

// To returns the slice [0, stop).
func To(stop int) Slice {
	return Slice{Stop: &stop}
}

// By returns s with the given step.
func (s Slice) By(step int) Slice {
	s.Step = &step
	return s
}

// String formats the slice as start:stop:step.
func (s Slice) String() string {
	part := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	return part(s.Start) + ":" + part(s.Stop) + ":" + part(s.Step)
}

// span is a slice resolved against an axis extent.
type span struct {
	start, step, n int
}

func defaultSpan(extent int) span {
	return span{start: 0, step: 1, n: extent}
}

// resolve clamps s to an axis of the given extent.
func (s Slice) resolve(extent int) (span, error) {
	step := 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return span{}, fmt.Errorf("%w: slice step cannot be zero", ErrSyntax)
	}

	lower, upper := 0, extent
	if step < 0 {
		lower, upper = -1, extent-1
	}
	clamp := func(p *int, def int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += extent
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v
	}

	var start, stop int
	if step > 0 {
		start, stop = clamp(s.Start, lower), clamp(s.Stop, upper)
	} else {
		start, stop = clamp(s.Start, upper), clamp(s.Stop, lower)
	}

	n := 0
	switch {
	case step > 0 && stop > start:
		n = (stop-start-1)/step + 1
	case step < 0 && start > stop:
		n = (stop-start+1)/step + 1
	}
	return span{start: start, step: step, n: n}, nil
}

// region resolves a slice-style key into one span per axis.
func region(key Key, shape Shape) ([]span, error) {
	spans := make([]span, len(shape))
	for i, d := range shape {
		spans[i] = defaultSpan(d)
	}

	switch k := key.(type) {
	case Ellipsis:
		return spans, nil
	case Slice:
		if len(shape) == 0 {
			return nil, fmt.Errorf("%w: cannot slice a rank-0 array", ErrSyntax)
		}
		sp, err := k.resolve(shape[0])
		if err != nil {
			return nil, err
		}
		spans[0] = sp
		return spans, nil
	case Tuple:
		return resolveTuple(k, shape, spans)
	default:
		return nil, fmt.Errorf("%w: %T is not a slice key", ErrSyntax, key)
	}
}

// resolveTuple fills axes from the front up to the ellipsis, then from the
// back down to it. An axis already filled from the front is never
// overwritten from the back.
func resolveTuple(t Tuple, shape Shape, spans []span) ([]span, error) {
	ellipses := 0
	for i, k := range t {
		switch k.(type) {
		case Slice:
		case Ellipsis:
			ellipses++
		default:
			return nil, fmt.Errorf("%w: tuple entry %d is %T, want slice or ellipsis", ErrSyntax, i, k)
		}
	}
	if ellipses > 1 {
		return nil, fmt.Errorf("%w: no more than one ellipsis", ErrSyntax)
	}
	if len(t) > len(shape) {
		return nil, fmt.Errorf("%w: %d entries for rank %d", ErrSyntax, len(t), len(shape))
	}

	filled := make([]bool, len(shape))
	for i, k := range t {
		s, ok := k.(Slice)
		if !ok {
			break
		}
		sp, err := s.resolve(shape[i])
		if err != nil {
			return nil, err
		}
		spans[i], filled[i] = sp, true
	}
	if ellipses == 0 {
		return spans, nil
	}
	for j := 0; j < len(t); j++ {
		s, ok := t[len(t)-1-j].(Slice)
		if !ok {
			break
		}
		axis := len(shape) - 1 - j
		if filled[axis] {
			continue
		}
		sp, err := s.resolve(shape[axis])
		if err != nil {
			return nil, err
		}
		spans[axis], filled[axis] = sp, true
	}
	return spans, nil
}

// SetItem assigns value to the part of the array selected by key.
//
// Index and Indices take a scalar (bool, any Go integer or float), converted
// to T. Slice, Tuple and Ellipsis take a Source whose shape must equal the
// selected region.
func (a *SimpleArray[T]) SetItem(key Key, value any) error {
	switch k := key.(type) {
	case Index, Indices:
		if _, ok := value.(Source); ok {
			return fmt.Errorf("%w: cannot assign an array to a single element", ErrUnsupportedOperation)
		}
		v, err := scalarOf[T](value)
		if err != nil {
			return err
		}
		if i, ok := k.(Index); ok {
			return a.Set(int(i), v)
		}
		return a.SetIndex(v, k.(Indices)...)
	case Slice, Tuple, Ellipsis:
		src, ok := value.(Source)
		if !ok {
			return fmt.Errorf("%w: cannot assign %T to a region", ErrUnsupportedOperation, value)
		}
		return a.Assign(key, src)
	default:
		return fmt.Errorf("%w: key %T", ErrUnsupportedOperation, key)
	}
}

// Assign copies src into the region selected by a Slice, Tuple or Ellipsis
// key, converting each element to T.
//
// Region coordinates cover the full extent of axis 0, ghost rows included.
// The key, the source kind and the shapes are all checked before the first
// element is written.
func (a *SimpleArray[T]) Assign(key Key, src Source) error {
	spans, err := region(key, a.shape)
	if err != nil {
		return err
	}
	d, err := src.Descriptor()
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	left := make(Shape, len(spans))
	for i, sp := range spans {
		left[i] = sp.n
	}
	if !left.Equal(d.Shape) {
		return &ShapeError{Left: left, Right: d.Shape.Clone()}
	}

	vals, err := a.values()
	if err != nil {
		return err
	}
	read := kernelsFor[T]().read(d.Kind)
	if read == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, d.Kind)
	}
	copyRegion(vals, a.stride, spans, d, read)
	return nil
}

// copyRegion walks the region with an odometer, last axis fastest.
func copyRegion[T Element](dst []T, stride []int, spans []span, d Descriptor, read func(unsafe.Pointer) T) {
	ndim := len(spans)
	dstOff := 0
	dstStep := make([]int, ndim)
	for k, sp := range spans {
		if sp.n == 0 {
			return
		}
		dstOff += sp.start * stride[k]
		dstStep[k] = sp.step * stride[k]
	}

	idx := make([]int, ndim)
	srcOff := 0
	for {
		dst[dstOff] = read(d.elementPtr(srcOff))

		k := ndim - 1
		for ; k >= 0; k-- {
			idx[k]++
			srcOff += d.Strides[k]
			dstOff += dstStep[k]
			if idx[k] < spans[k].n {
				break
			}
			srcOff -= idx[k] * d.Strides[k]
			dstOff -= idx[k] * dstStep[k]
			idx[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

// scalarOf converts a Go scalar to T with the same rules as array assignment.
func scalarOf[T Element](v any) (T, error) {
	read := kernelsFor[T]().read
	switch x := v.(type) {
	case T:
		return x, nil
	case bool:
		return read(Bool)(unsafe.Pointer(&x)), nil
	case int:
		y := int64(x)
		return read(Int64)(unsafe.Pointer(&y)), nil
	case int8:
		return read(Int8)(unsafe.Pointer(&x)), nil
	case int16:
		return read(Int16)(unsafe.Pointer(&x)), nil
	case int32:
		return read(Int32)(unsafe.Pointer(&x)), nil
	case int64:
		return read(Int64)(unsafe.Pointer(&x)), nil
	case uint:
		y := uint64(x)
		return read(Uint64)(unsafe.Pointer(&y)), nil
	case uint8:
		return read(Uint8)(unsafe.Pointer(&x)), nil
	case uint16:
		return read(Uint16)(unsafe.Pointer(&x)), nil
	case uint32:
		return read(Uint32)(unsafe.Pointer(&x)), nil
	case uint64:
		return read(Uint64)(unsafe.Pointer(&x)), nil
	case float32:
		return read(Float32)(unsafe.Pointer(&x)), nil
	case float64:
		return read(Float64)(unsafe.Pointer(&x)), nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: cannot assign %T to %s element", ErrUnsupportedType, v, DataTypeOf[T]())
	}
}
