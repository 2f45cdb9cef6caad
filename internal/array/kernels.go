package array

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/modmesh/modmesh-go/internal/simd"
)

// Operator identifies an elementwise arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv

	numOperators
)

var operatorNames = [numOperators]string{
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mul",
	OpDiv: "div",
}

// String returns the in-place operator symbol.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+="
	case OpSub:
		return "-="
	case OpMul:
		return "*="
	case OpDiv:
		return "/="
	default:
		return "?="
	}
}

// Name returns add, sub, mul or div.
func (op Operator) Name() string {
	if op < 0 || op >= numOperators {
		return "unknown"
	}
	return operatorNames[op]
}

// ParseOperator returns the operator with the given Name.
func ParseOperator(name string) (Operator, error) {
	for op, n := range operatorNames {
		if n == name {
			return Operator(op), nil
		}
	}
	return 0, fmt.Errorf("%w: operator %q", ErrUnsupportedOperation, name)
}

// Kernel selects the loop an elementwise operation runs on.
type Kernel int

const (
	// KernelAuto uses the vector loop when the CPU reports a usable
	// extension.
	KernelAuto Kernel = iota
	// KernelScalar is the plain one-element-per-iteration loop.
	KernelScalar
	// KernelVector is a Go loop unrolled eight elements per iteration.
	// It issues no SIMD instructions itself.
	KernelVector
)

func (k Kernel) String() string {
	switch k {
	case KernelScalar:
		return "scalar"
	case KernelVector:
		return "vector"
	default:
		return "auto"
	}
}

// unroll is the block length of the vector kernels.
const unroll = 8

// kernelSet holds the type-specialized loops for one element kind.
// A nil binary kernel means the operator is not defined for the kind.
type kernelSet[T Element] struct {
	scalar     [numOperators]func(dst, src []T)
	vector     [numOperators]func(dst, src []T)
	abs        func(v T) T
	accumulate func(acc, v T) (T, bool) // false on overflow
	less       func(a, b T) bool
	isZero     func(v T) bool // non-nil when a zero divisor must be rejected
	read       func(src DataType) func(p unsafe.Pointer) T
}

// kernelTable has exactly one entry per DataType.
var kernelTable = [numDataTypes]any{
	Bool:    boolKernels(),
	Int8:    signedKernels[int8](),
	Int16:   signedKernels[int16](),
	Int32:   signedKernels[int32](),
	Int64:   signedKernels[int64](),
	Uint8:   unsignedKernels[uint8](),
	Uint16:  unsignedKernels[uint16](),
	Uint32:  unsignedKernels[uint32](),
	Uint64:  unsignedKernels[uint64](),
	Float32: floatKernels[float32](),
	Float64: floatKernels[float64](),
}

// kernelsFor resolves the kernels of T once, at the API boundary.
func kernelsFor[T Element]() *kernelSet[T] {
	return kernelTable[DataTypeOf[T]()].(*kernelSet[T])
}

// binary returns the loop for op, or nil if op is undefined for T.
func (k *kernelSet[T]) binary(op Operator, n int, path Kernel) func(dst, src []T) {
	switch path {
	case KernelScalar:
		return k.scalar[op]
	case KernelVector:
	default:
		if !useVector[T](n) {
			return k.scalar[op]
		}
	}
	if k.vector[op] != nil {
		return k.vector[op]
	}
	return k.scalar[op]
}

// useVector reports whether n elements of T are worth a vector loop.
func useVector[T Element](n int) bool {
	return n >= unroll && simd.Current().Lanes(DataTypeOf[T]().Size()) > 1
}

func numberKernels[N Number]() *kernelSet[N] {
	return &kernelSet[N]{
		scalar: [numOperators]func(dst, src []N){
			OpAdd: addScalar[N],
			OpSub: subScalar[N],
			OpMul: mulScalar[N],
			OpDiv: divScalar[N],
		},
		vector: [numOperators]func(dst, src []N){
			OpAdd: addVector[N],
			OpSub: subVector[N],
			OpMul: mulVector[N],
			OpDiv: divVector[N],
		},
		abs:        func(v N) N { return v },
		accumulate: func(acc, v N) (N, bool) { return acc + v, true },
		less:       func(a, b N) bool { return a < b },
		read:       numReader[N],
	}
}

func signedKernels[N Signed]() *kernelSet[N] {
	k := numberKernels[N]()
	k.abs = func(v N) N {
		if v < 0 {
			return -v
		}
		return v
	}
	k.accumulate = func(acc, v N) (N, bool) {
		s := acc + v
		return s, !((v > 0 && s < acc) || (v < 0 && s > acc))
	}
	k.isZero = func(v N) bool { return v == 0 }
	return k
}

func unsignedKernels[N Unsigned]() *kernelSet[N] {
	k := numberKernels[N]()
	k.accumulate = func(acc, v N) (N, bool) {
		s := acc + v
		return s, s >= acc
	}
	k.isZero = func(v N) bool { return v == 0 }
	return k
}

func floatKernels[N Float]() *kernelSet[N] {
	k := numberKernels[N]()
	k.abs = func(v N) N { return N(math.Abs(float64(v))) }
	return k
}

// boolKernels: += is logical OR, *= is logical AND, -= and /= are undefined.
func boolKernels() *kernelSet[bool] {
	return &kernelSet[bool]{
		scalar: [numOperators]func(dst, src []bool){
			OpAdd: orScalar,
			OpMul: andScalar,
		},
		vector: [numOperators]func(dst, src []bool){
			OpAdd: orVector,
			OpMul: andVector,
		},
		abs:        func(v bool) bool { return v },
		accumulate: func(acc, v bool) (bool, bool) { return acc || v, true },
		less:       func(a, b bool) bool { return !a && b },
		read:       boolReader,
	}
}

// Scalar loops.

func addScalar[N Number](dst, src []N) {
	for i := range dst {
		dst[i] += src[i]
	}
}

func subScalar[N Number](dst, src []N) {
	for i := range dst {
		dst[i] -= src[i]
	}
}

func mulScalar[N Number](dst, src []N) {
	for i := range dst {
		dst[i] *= src[i]
	}
}

func divScalar[N Number](dst, src []N) {
	for i := range dst {
		dst[i] /= src[i]
	}
}

func orScalar(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] || src[i]
	}
}

func andScalar(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] && src[i]
	}
}

// Vector loops: blocks of unroll elements with bounds checks hoisted, then a
// scalar tail. Every element sees the same operation as in the scalar loop.

func addVector[N Number](dst, src []N) {
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d, s := dst[i:i+unroll:i+unroll], src[i:i+unroll:i+unroll]
		d[0] += s[0]
		d[1] += s[1]
		d[2] += s[2]
		d[3] += s[3]
		d[4] += s[4]
		d[5] += s[5]
		d[6] += s[6]
		d[7] += s[7]
	}
	addScalar(dst[n:], src[n:])
}

func subVector[N Number](dst, src []N) {
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d, s := dst[i:i+unroll:i+unroll], src[i:i+unroll:i+unroll]
		d[0] -= s[0]
		d[1] -= s[1]
		d[2] -= s[2]
		d[3] -= s[3]
		d[4] -= s[4]
		d[5] -= s[5]
		d[6] -= s[6]
		d[7] -= s[7]
	}
	subScalar(dst[n:], src[n:])
}

func mulVector[N Number](dst, src []N) {
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d, s := dst[i:i+unroll:i+unroll], src[i:i+unroll:i+unroll]
		d[0] *= s[0]
		d[1] *= s[1]
		d[2] *= s[2]
		d[3] *= s[3]
		d[4] *= s[4]
		d[5] *= s[5]
		d[6] *= s[6]
		d[7] *= s[7]
	}
	mulScalar(dst[n:], src[n:])
}

func divVector[N Number](dst, src []N) {
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d, s := dst[i:i+unroll:i+unroll], src[i:i+unroll:i+unroll]
		d[0] /= s[0]
		d[1] /= s[1]
		d[2] /= s[2]
		d[3] /= s[3]
		d[4] /= s[4]
		d[5] /= s[5]
		d[6] /= s[6]
		d[7] /= s[7]
	}
	divScalar(dst[n:], src[n:])
}

func orVector(dst, src []bool) {
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d, s := dst[i:i+unroll:i+unroll], src[i:i+unroll:i+unroll]
		d[0] = d[0] || s[0]
		d[1] = d[1] || s[1]
		d[2] = d[2] || s[2]
		d[3] = d[3] || s[3]
		d[4] = d[4] || s[4]
		d[5] = d[5] || s[5]
		d[6] = d[6] || s[6]
		d[7] = d[7] || s[7]
	}
	orScalar(dst[n:], src[n:])
}

func andVector(dst, src []bool) {
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d, s := dst[i:i+unroll:i+unroll], src[i:i+unroll:i+unroll]
		d[0] = d[0] && s[0]
		d[1] = d[1] && s[1]
		d[2] = d[2] && s[2]
		d[3] = d[3] && s[3]
		d[4] = d[4] && s[4]
		d[5] = d[5] && s[5]
		d[6] = d[6] && s[6]
		d[7] = d[7] && s[7]
	}
	andScalar(dst[n:], src[n:])
}

// fillValues sets every element of dst to v.
func fillValues[T Element](dst []T, v T) {
	if !useVector[T](len(dst)) {
		for i := range dst {
			dst[i] = v
		}
		return
	}
	n := len(dst) &^ (unroll - 1)
	for i := 0; i < n; i += unroll {
		d := dst[i : i+unroll : i+unroll]
		d[0], d[1], d[2], d[3] = v, v, v, v
		d[4], d[5], d[6], d[7] = v, v, v, v
	}
	for i := n; i < len(dst); i++ {
		dst[i] = v
	}
}

// Readers convert one element of kind src, stored at p, to the target kind.

func numReader[N Number](src DataType) func(p unsafe.Pointer) N {
	switch src {
	case Bool:
		return func(p unsafe.Pointer) N {
			if *(*uint8)(p) != 0 {
				return 1
			}
			return 0
		}
	case Int8:
		return func(p unsafe.Pointer) N { return N(*(*int8)(p)) }
	case Int16:
		return func(p unsafe.Pointer) N { return N(*(*int16)(p)) }
	case Int32:
		return func(p unsafe.Pointer) N { return N(*(*int32)(p)) }
	case Int64:
		return func(p unsafe.Pointer) N { return N(*(*int64)(p)) }
	case Uint8:
		return func(p unsafe.Pointer) N { return N(*(*uint8)(p)) }
	case Uint16:
		return func(p unsafe.Pointer) N { return N(*(*uint16)(p)) }
	case Uint32:
		return func(p unsafe.Pointer) N { return N(*(*uint32)(p)) }
	case Uint64:
		return func(p unsafe.Pointer) N { return N(*(*uint64)(p)) }
	case Float32:
		return func(p unsafe.Pointer) N { return N(*(*float32)(p)) }
	case Float64:
		return func(p unsafe.Pointer) N { return N(*(*float64)(p)) }
	default:
		return nil
	}
}

func boolReader(src DataType) func(p unsafe.Pointer) bool {
	switch src {
	case Bool, Int8, Uint8:
		return func(p unsafe.Pointer) bool { return *(*uint8)(p) != 0 }
	case Int16, Uint16:
		return func(p unsafe.Pointer) bool { return *(*uint16)(p) != 0 }
	case Int32, Uint32:
		return func(p unsafe.Pointer) bool { return *(*uint32)(p) != 0 }
	case Int64, Uint64:
		return func(p unsafe.Pointer) bool { return *(*uint64)(p) != 0 }
	case Float32:
		return func(p unsafe.Pointer) bool { return *(*float32)(p) != 0 }
	case Float64:
		return func(p unsafe.Pointer) bool { return *(*float64)(p) != 0 }
	default:
		return nil
	}
}
