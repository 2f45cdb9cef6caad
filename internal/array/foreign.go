package array

import (
	"fmt"
	"unsafe"

	"github.com/modmesh/modmesh-go/internal/buffer"
)

// Descriptor describes a foreign multi-dimensional array: element kind,
// shape, byte strides and the bytes they address.
type Descriptor struct {
	Kind    DataType
	Shape   Shape
	Strides []int // In bytes, one per axis.
	Data    []byte
}

// Source is anything that can be read as a Descriptor.
type Source interface {
	Descriptor() (Descriptor, error)
}

// Descriptor returns d itself so a Descriptor can be used as a Source.
func (d Descriptor) Descriptor() (Descriptor, error) {
	return d, nil
}

// Ndim returns the number of axes.
func (d Descriptor) Ndim() int {
	return len(d.Shape)
}

// NBytes returns the number of bytes the elements occupy when packed, or -1
// when that count does not fit in an int.
func (d Descriptor) NBytes() int {
	n, ok := byteLen(d.Shape, d.Kind.Size())
	if !ok {
		return -1
	}
	return n
}

// Validate checks the kind and that every addressed element lies in Data.
func (d Descriptor) Validate() error {
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: kind %d", ErrUnsupportedType, int(d.Kind))
	}
	if err := d.Shape.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	if len(d.Strides) != len(d.Shape) {
		return fmt.Errorf("%w: %d strides for rank %d", ErrShapeMismatch, len(d.Strides), len(d.Shape))
	}
	if d.Shape.NumElements() == 0 {
		return nil
	}
	for i, s := range d.Strides {
		if s < 0 {
			return fmt.Errorf("%w: negative byte stride %d on axis %d", ErrShapeMismatch, s, i)
		}
	}
	end, ok := endOffset(d.Shape, d.Strides, d.Kind.Size())
	if !ok {
		return fmt.Errorf("%w: strides %v address bytes past the end of the address space", ErrIndex, d.Strides)
	}
	if end > len(d.Data) {
		return fmt.Errorf("%w: strides %v address byte %d beyond %d bytes", ErrIndex, d.Strides, end, len(d.Data))
	}
	return nil
}

// Descriptor exports the whole array, ghost rows included, with byte strides.
// The returned Data aliases the buffer; it is valid while the array holds
// its reference.
func (a *SimpleArray[T]) Descriptor() (Descriptor, error) {
	if a.Released() || a.ref.buf.Released() {
		return Descriptor{}, ErrReleased
	}
	size := a.ItemSize()
	strides := make([]int, len(a.stride))
	for i, s := range a.stride {
		strides[i] = s * size
	}
	return Descriptor{
		Kind:    a.DataType(),
		Shape:   a.shape.Clone(),
		Strides: strides,
		Data:    a.ref.buf.Data(),
	}, nil
}

// FromDescriptor wraps foreign memory without copying. The kind must match
// T and byte strides must be multiples of the element size. release runs
// exactly once, when the last view over the memory is released; it is not
// called when FromDescriptor fails.
func FromDescriptor[T Element](d Descriptor, release func()) (*SimpleArray[T], error) {
	if want := DataTypeOf[T](); d.Kind != want {
		return nil, fmt.Errorf("%w: descriptor holds %s, array wants %s", ErrTypeMismatch, d.Kind, want)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	size := d.Kind.Size()
	stride := make([]int, len(d.Strides))
	for i, s := range d.Strides {
		if s%size != 0 {
			return nil, fmt.Errorf("%w: byte stride %d on axis %d is not a multiple of %d",
				ErrUnsupportedType, s, i, size)
		}
		stride[i] = s / size
	}

	if need := d.NBytes(); need < 0 || need > len(d.Data) {
		return nil, fmt.Errorf("%w: shape %v needs %d bytes, descriptor has %d",
			ErrShapeMismatch, d.Shape, need, len(d.Data))
	}

	armed := false
	buf := buffer.Borrow(d.Data, func() {
		if armed && release != nil {
			release()
		}
	})
	a, err := WrapStrided[T](d.Shape, stride, buf)
	if err != nil {
		buf.Release()
		return nil, err
	}
	armed = true
	// The view holds its own reference now.
	buf.Release()
	return a, nil
}

// elementPtr returns a pointer to the byte at off.
func (d Descriptor) elementPtr(off int) unsafe.Pointer {
	//nolint:gosec // offset validated by Descriptor.Validate
	return unsafe.Pointer(&d.Data[off])
}
