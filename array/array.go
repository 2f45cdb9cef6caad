// Copyright 2025 The modmesh-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/modmesh/modmesh-go/internal/array"
)

// Element is the closed set of element types: bool, int8..int64,
// uint8..uint64, float32, float64.
type Element = array.Element

// DataType identifies an element kind at run time.
type DataType = array.DataType

// Data type constants.
const (
	Bool    DataType = array.Bool
	Int8    DataType = array.Int8
	Int16   DataType = array.Int16
	Int32   DataType = array.Int32
	Int64   DataType = array.Int64
	Uint8   DataType = array.Uint8
	Uint16  DataType = array.Uint16
	Uint32  DataType = array.Uint32
	Uint64  DataType = array.Uint64
	Float32 DataType = array.Float32
	Float64 DataType = array.Float64
)

// Shape represents the extent of each axis.
type Shape = array.Shape

// SimpleArray is a typed, shaped, strided view over a ConcreteBuffer.
type SimpleArray[T Element] = array.SimpleArray[T]

// Array is the kind-erased form of SimpleArray.
type Array = array.Array

// Descriptor describes foreign memory: kind, shape, byte strides and data.
type Descriptor = array.Descriptor

// Source is anything that can be read as a Descriptor. Every SimpleArray is
// a Source.
type Source = array.Source

// Operator identifies an elementwise arithmetic operator.
type Operator = array.Operator

// Operator constants.
const (
	OpAdd Operator = array.OpAdd
	OpSub Operator = array.OpSub
	OpMul Operator = array.OpMul
	OpDiv Operator = array.OpDiv
)

// Kernel selects the loop an elementwise operation runs on.
type Kernel = array.Kernel

// Kernel constants.
const (
	KernelAuto   Kernel = array.KernelAuto
	KernelScalar Kernel = array.KernelScalar
	KernelVector Kernel = array.KernelVector
)

// New creates a zero-filled array over a fresh Owned buffer.
func New[T Element](shape Shape) (*SimpleArray[T], error) {
	return array.New[T](shape)
}

// Full creates an array with every element set to value.
func Full[T Element](shape Shape, value T) (*SimpleArray[T], error) {
	return array.Full[T](shape, value)
}

// FromSlice copies data into a new array. A nil shape means 1-D.
func FromSlice[T Element](data []T, shape Shape) (*SimpleArray[T], error) {
	return array.FromSlice(data, shape)
}

// Wrap builds a row-major view over an existing buffer.
func Wrap[T Element](shape Shape, buf *ConcreteBuffer) (*SimpleArray[T], error) {
	return array.Wrap[T](shape, buf)
}

// WrapStrided builds a view with explicit element strides.
func WrapStrided[T Element](shape Shape, stride []int, buf *ConcreteBuffer) (*SimpleArray[T], error) {
	return array.WrapStrided[T](shape, stride, buf)
}

// FromDescriptor wraps foreign memory without copying. release runs once,
// when the last view is released.
func FromDescriptor[T Element](d Descriptor, release func()) (*SimpleArray[T], error) {
	return array.FromDescriptor[T](d, release)
}

// NewOf creates a zero-filled array of a kind chosen at run time.
func NewOf(kind DataType, shape Shape) (Array, error) {
	return array.NewOf(kind, shape)
}

// FromDescriptorOf wraps foreign memory as an array of the descriptor's kind.
func FromDescriptorOf(d Descriptor, release func()) (Array, error) {
	return array.FromDescriptorOf(d, release)
}

// DataTypeOf returns the kind of T.
func DataTypeOf[T Element]() DataType {
	return array.DataTypeOf[T]()
}

// ParseDataType looks a kind up by name ("float64", "uint8", ...).
func ParseDataType(name string) (DataType, error) {
	return array.ParseDataType(name)
}

// ParseOperator looks an operator up by name ("add", "sub", "mul", "div").
func ParseOperator(name string) (Operator, error) {
	return array.ParseOperator(name)
}
