package array

import (
	"fmt"

	"github.com/modmesh/modmesh-go/internal/buffer"
)

// Array is the kind-erased view of a SimpleArray, for code that picks the
// element kind at run time.
type Array interface {
	Source

	DataType() DataType
	Shape() Shape
	Stride() []int
	Ndim() int
	Size() int
	ItemSize() int
	NBytes() int
	Nghost() int
	SetNghost(n int) error
	Nbody() int
	HasGhost() bool
	IsBorrowed() bool
	Buffer() *buffer.ConcreteBuffer
	SetItem(key Key, value any) error
	Assign(key Key, src Source) error
	Release()
	String() string
}

var (
	_ Array = (*SimpleArray[bool])(nil)
	_ Array = (*SimpleArray[float64])(nil)
)

// NewOf creates a zero-filled array of the given kind.
func NewOf(kind DataType, shape Shape) (Array, error) {
	switch kind {
	case Bool:
		return erase(New[bool](shape))
	case Int8:
		return erase(New[int8](shape))
	case Int16:
		return erase(New[int16](shape))
	case Int32:
		return erase(New[int32](shape))
	case Int64:
		return erase(New[int64](shape))
	case Uint8:
		return erase(New[uint8](shape))
	case Uint16:
		return erase(New[uint16](shape))
	case Uint32:
		return erase(New[uint32](shape))
	case Uint64:
		return erase(New[uint64](shape))
	case Float32:
		return erase(New[float32](shape))
	case Float64:
		return erase(New[float64](shape))
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedType, int(kind))
	}
}

// FromDescriptorOf wraps foreign memory as an array of the descriptor's kind.
func FromDescriptorOf(d Descriptor, release func()) (Array, error) {
	switch d.Kind {
	case Bool:
		return erase(FromDescriptor[bool](d, release))
	case Int8:
		return erase(FromDescriptor[int8](d, release))
	case Int16:
		return erase(FromDescriptor[int16](d, release))
	case Int32:
		return erase(FromDescriptor[int32](d, release))
	case Int64:
		return erase(FromDescriptor[int64](d, release))
	case Uint8:
		return erase(FromDescriptor[uint8](d, release))
	case Uint16:
		return erase(FromDescriptor[uint16](d, release))
	case Uint32:
		return erase(FromDescriptor[uint32](d, release))
	case Uint64:
		return erase(FromDescriptor[uint64](d, release))
	case Float32:
		return erase(FromDescriptor[float32](d, release))
	case Float64:
		return erase(FromDescriptor[float64](d, release))
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrUnsupportedType, int(d.Kind))
	}
}

// erase keeps a failed constructor from returning a non-nil Array holding a
// nil pointer.
func erase[T Element](a *SimpleArray[T], err error) (Array, error) {
	if err != nil {
		return nil, err
	}
	return a, nil
}
