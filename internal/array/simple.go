package array

import (
	"fmt"
	"iter"
	"sync/atomic"
	"unsafe"

	"github.com/modmesh/modmesh-go/internal/buffer"
)

// handle owns one reference to a buffer and gives it back at most once.
type handle struct {
	buf      *buffer.ConcreteBuffer
	released atomic.Bool
}

func (h *handle) release() {
	if h.released.CompareAndSwap(false, true) {
		h.buf.Release()
	}
}

// SimpleArray is a typed, shaped, strided view over a ConcreteBuffer.
//
// The first nghost positions along axis 0 are ghost cells. Flat and
// multi-dimensional indices are body-relative: index 0 on axis 0 is the first
// body row, negative indices reach into the ghost rows.
//
// Several arrays may share one buffer. Writes through any of them are seen by
// all; concurrent writers must synchronize themselves.
type SimpleArray[T Element] struct {
	ref    *handle
	shape  Shape
	stride []int // In elements.
	nghost int
}

// New creates a zero-filled array with row-major strides over a fresh Owned
// buffer.
func New[T Element](shape Shape) (*SimpleArray[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	nbytes, ok := byteLen(shape, DataTypeOf[T]().Size())
	if !ok {
		return nil, fmt.Errorf("%w: shape %v of %s overflows the byte count",
			buffer.ErrAllocation, shape, DataTypeOf[T]())
	}
	buf, err := buffer.New(nbytes)
	if err != nil {
		return nil, err
	}
	return newView[T](buf, shape.Clone(), shape.ComputeStrides(), 0), nil
}

// Full creates an array with every element set to value.
func Full[T Element](shape Shape, value T) (*SimpleArray[T], error) {
	a, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	vals, _ := a.values()
	fillValues(vals, value)
	return a, nil
}

// FromSlice creates an array holding a copy of data.
// A nil shape means a 1-D array of len(data) elements.
func FromSlice[T Element](data []T, shape Shape) (*SimpleArray[T], error) {
	if shape == nil {
		shape = Shape{len(data)}
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	a, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	vals, _ := a.values()
	copy(vals, data)
	return a, nil
}

// Wrap builds a row-major view over an existing buffer. The array takes its
// own reference; the caller keeps (and must release) the one it holds.
func Wrap[T Element](shape Shape, buf *buffer.ConcreteBuffer) (*SimpleArray[T], error) {
	return WrapStrided[T](shape, shape.ComputeStrides(), buf)
}

// WrapStrided builds a view with explicit element strides over an existing
// buffer. Every addressed element must lie inside the buffer.
func WrapStrided[T Element](shape Shape, stride []int, buf *buffer.ConcreteBuffer) (*SimpleArray[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(stride) != len(shape) {
		return nil, fmt.Errorf("%w: %d strides for rank %d", ErrShapeMismatch, len(stride), len(shape))
	}
	size := DataTypeOf[T]().Size()
	need, ok := byteLen(shape, size)
	if !ok || need > buf.Len() {
		return nil, fmt.Errorf("%w: shape %v needs more than the %d bytes in the buffer",
			ErrShapeMismatch, shape, buf.Len())
	}
	if need > 0 {
		for i, s := range stride {
			if s < 0 {
				return nil, fmt.Errorf("%w: negative stride %d on axis %d", ErrShapeMismatch, s, i)
			}
		}
		end, ok := endOffset(shape, stride, 1)
		if ok {
			end, ok = mulInt(end, size)
		}
		if !ok || end > buf.Len() {
			return nil, fmt.Errorf("%w: strides %v address elements beyond buffer of %d bytes",
				ErrShapeMismatch, stride, buf.Len())
		}
	}
	return newView[T](buf.Retain(), shape.Clone(), append([]int(nil), stride...), 0), nil
}

// newView takes ownership of one reference to buf.
func newView[T Element](buf *buffer.ConcreteBuffer, shape Shape, stride []int, nghost int) *SimpleArray[T] {
	return &SimpleArray[T]{ref: &handle{buf: buf}, shape: shape, stride: stride, nghost: nghost}
}

// Release gives back this array's reference to its buffer. Other views keep
// the buffer alive. Calling Release more than once is harmless.
func (a *SimpleArray[T]) Release() {
	a.ref.release()
}

// Released reports whether Release has been called on this array.
func (a *SimpleArray[T]) Released() bool {
	return a.ref.released.Load()
}

// Buffer returns the backing buffer.
func (a *SimpleArray[T]) Buffer() *buffer.ConcreteBuffer {
	return a.ref.buf
}

// IsBorrowed reports whether the backing memory is owned by someone else.
func (a *SimpleArray[T]) IsBorrowed() bool {
	return a.ref.buf.IsBorrowed()
}

// DataType returns the runtime element kind.
func (a *SimpleArray[T]) DataType() DataType {
	return DataTypeOf[T]()
}

// Shape returns a copy of the shape.
func (a *SimpleArray[T]) Shape() Shape {
	return a.shape.Clone()
}

// Stride returns a copy of the strides, in elements.
func (a *SimpleArray[T]) Stride() []int {
	return append([]int(nil), a.stride...)
}

// Ndim returns the number of axes.
func (a *SimpleArray[T]) Ndim() int {
	return len(a.shape)
}

// Size returns the total number of elements, ghost included.
func (a *SimpleArray[T]) Size() int {
	return a.shape.NumElements()
}

// ItemSize returns the size of one element in bytes.
func (a *SimpleArray[T]) ItemSize() int {
	return DataTypeOf[T]().Size()
}

// NBytes returns Size() * ItemSize().
func (a *SimpleArray[T]) NBytes() int {
	return a.Size() * a.ItemSize()
}

// HasGhost reports whether any ghost rows are reserved.
func (a *SimpleArray[T]) HasGhost() bool {
	return a.nghost > 0
}

// Nghost returns the number of ghost rows along axis 0.
func (a *SimpleArray[T]) Nghost() int {
	return a.nghost
}

// SetNghost changes the body/ghost split. The buffer is not touched.
func (a *SimpleArray[T]) SetNghost(n int) error {
	if len(a.shape) == 0 {
		if n != 0 {
			return fmt.Errorf("%w: rank-0 array cannot have ghost cells", ErrIndex)
		}
		return nil
	}
	if n < 0 || n > a.shape[0] {
		return fmt.Errorf("%w: nghost %d outside [0, %d]", ErrIndex, n, a.shape[0])
	}
	a.nghost = n
	return nil
}

// Nbody returns the number of body rows along axis 0 (1 for rank 0).
func (a *SimpleArray[T]) Nbody() int {
	if len(a.shape) == 0 {
		return 1
	}
	return a.shape[0] - a.nghost
}

// IsContiguous reports whether the strides are row-major.
func (a *SimpleArray[T]) IsContiguous() bool {
	want := a.shape.ComputeStrides()
	for i := range want {
		if a.shape[i] > 1 && a.stride[i] != want[i] {
			return false
		}
	}
	return true
}

// Reshape returns a view with the same buffer, new row-major strides and no
// ghost rows. The element count must not change.
func (a *SimpleArray[T]) Reshape(shape Shape) (*SimpleArray[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReshape, err)
	}
	if shape.NumElements() != a.Size() {
		return nil, fmt.Errorf("%w: array of size %d into shape %v", ErrReshape, a.Size(), shape)
	}
	if !a.IsContiguous() {
		return nil, fmt.Errorf("%w: %w", ErrReshape, ErrNotContiguous)
	}
	if a.Released() {
		return nil, ErrReleased
	}
	return newView[T](a.ref.buf.Retain(), shape.Clone(), shape.ComputeStrides(), 0), nil
}

// Clone copies every element, ghost included, into a new contiguous array
// over an Owned buffer. The ghost count is preserved.
func (a *SimpleArray[T]) Clone() (*SimpleArray[T], error) {
	src, err := a.values()
	if err != nil {
		return nil, err
	}
	out, err := New[T](a.shape)
	if err != nil {
		return nil, err
	}
	dst, _ := out.values()
	i := 0
	forEachOffset(a.shape, a.stride, 0, func(off int) bool {
		dst[i] = src[off]
		i++
		return true
	})
	out.nghost = a.nghost
	return out, nil
}

// Elements yields a pointer to every element, ghost rows first, in row-major
// order. Writes through the pointers go straight to the buffer.
func (a *SimpleArray[T]) Elements() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		vals, err := a.values()
		if err != nil {
			return
		}
		forEachOffset(a.shape, a.stride, 0, func(off int) bool {
			return yield(&vals[off])
		})
	}
}

// String returns a short description.
func (a *SimpleArray[T]) String() string {
	return fmt.Sprintf("SimpleArray[%s]%v nghost=%d", a.DataType(), a.shape, a.nghost)
}

// values returns the whole buffer as a []T.
func (a *SimpleArray[T]) values() ([]T, error) {
	if a.ref.released.Load() || a.ref.buf.Released() {
		return nil, ErrReleased
	}
	raw := a.ref.buf.Data()
	n := len(raw) / a.ItemSize()
	if n == 0 {
		return nil, nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by buffer length
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), n), nil
}

// rowLen returns the number of elements in one axis-0 row.
func (a *SimpleArray[T]) rowLen() int {
	if len(a.shape) == 0 {
		return 1
	}
	return a.shape[1:].NumElements()
}

// bodyRow0 returns the first body row (0 for rank 0).
func (a *SimpleArray[T]) bodyRow0() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.nghost
}

// bodyShape returns the shape of the body region.
func (a *SimpleArray[T]) bodyShape() Shape {
	s := a.shape.Clone()
	if len(s) > 0 {
		s[0] -= a.nghost
	}
	return s
}

// bodyLen returns the number of body elements.
func (a *SimpleArray[T]) bodyLen() int {
	return a.bodyShape().NumElements()
}

// bodySlice returns the body as a sub-slice when the layout is contiguous.
func (a *SimpleArray[T]) bodySlice(vals []T) ([]T, bool) {
	if !a.IsContiguous() {
		return nil, false
	}
	start := a.bodyRow0() * a.rowLen()
	return vals[start : start+a.bodyLen()], true
}

// gatherBody copies the body elements in row-major order.
func (a *SimpleArray[T]) gatherBody(vals []T) []T {
	if body, ok := a.bodySlice(vals); ok {
		return append([]T(nil), body...)
	}
	out := make([]T, 0, a.bodyLen())
	forEachOffset(a.shape, a.stride, a.bodyRow0(), func(off int) bool {
		out = append(out, vals[off])
		return true
	})
	return out
}

// scatterBody writes body elements back in row-major order.
func (a *SimpleArray[T]) scatterBody(vals, body []T) {
	i := 0
	forEachOffset(a.shape, a.stride, a.bodyRow0(), func(off int) bool {
		vals[off] = body[i]
		i++
		return true
	})
}

// forEachOffset calls fn with the element offset of every position whose
// axis-0 index is in [row0, shape[0]), in row-major order. It stops early
// when fn returns false.
func forEachOffset(shape Shape, stride []int, row0 int, fn func(off int) bool) {
	if len(shape) == 0 {
		fn(0)
		return
	}
	if row0 >= shape[0] {
		return
	}
	for _, d := range shape[1:] {
		if d == 0 {
			return
		}
	}

	idx := make([]int, len(shape))
	idx[0] = row0
	off := row0 * stride[0]
	for {
		if !fn(off) {
			return
		}
		k := len(shape) - 1
		for ; k >= 0; k-- {
			idx[k]++
			off += stride[k]
			if idx[k] < shape[k] {
				break
			}
			if k == 0 {
				return
			}
			off -= idx[k] * stride[k]
			idx[k] = 0
		}
	}
}
