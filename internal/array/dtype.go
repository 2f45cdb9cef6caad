// Package array provides SimpleArray, a typed multi-dimensional strided view
// over a reference-counted buffer, with ghost-cell support along the first
// axis.
package array

import (
	"fmt"
	"strings"
)

// Signed is the set of supported signed integer element types.
type Signed interface {
	int8 | int16 | int32 | int64
}

// Unsigned is the set of supported unsigned integer element types.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// Float is the set of supported floating-point element types.
type Float interface {
	float32 | float64
}

// Number is the set of supported numeric element types.
type Number interface {
	Signed | Unsigned | Float
}

// Element is the closed set of element types a SimpleArray can hold.
type Element interface {
	bool | Number
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types.
const (
	Bool DataType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64

	numDataTypes
)

var dataTypeInfo = [numDataTypes]struct {
	name string
	size int
}{
	Bool:    {"bool", 1},
	Int8:    {"int8", 1},
	Int16:   {"int16", 2},
	Int32:   {"int32", 4},
	Int64:   {"int64", 8},
	Uint8:   {"uint8", 1},
	Uint16:  {"uint16", 2},
	Uint32:  {"uint32", 4},
	Uint64:  {"uint64", 8},
	Float32: {"float32", 4},
	Float64: {"float64", 8},
}

// DataTypes returns every supported data type in declaration order.
func DataTypes() []DataType {
	out := make([]DataType, numDataTypes)
	for i := range out {
		out[i] = DataType(i)
	}
	return out
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt >= 0 && dt < numDataTypes
}

// Size returns the byte size of the data type (0 if invalid).
func (dt DataType) Size() int {
	if !dt.Valid() {
		return 0
	}
	return dataTypeInfo[dt].size
}

// Alignment returns the natural alignment in bytes. Every supported kind is
// aligned to its own size.
func (dt DataType) Alignment() int {
	return dt.Size()
}

// String returns the canonical name for the data type.
func (dt DataType) String() string {
	if !dt.Valid() {
		return "unknown"
	}
	return dataTypeInfo[dt].name
}

// IsInteger reports whether dt is a signed or unsigned integer kind.
func (dt DataType) IsInteger() bool {
	return dt >= Int8 && dt <= Uint64
}

// IsFloat reports whether dt is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// ParseDataType returns the data type with the given canonical name.
// Names outside the supported set (e.g. "float16", "bool8") fail with
// ErrUnknownType.
func ParseDataType(name string) (DataType, error) {
	want := strings.TrimSpace(name)
	for dt, info := range dataTypeInfo {
		if info.name == want {
			return DataType(dt), nil
		}
	}
	return Bool, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// DataTypeOf returns the data type of the element type T.
func DataTypeOf[T Element]() DataType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported element type")
	}
}
