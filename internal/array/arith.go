package array

import "fmt"

// IAdd adds other to the body element-wise (a += other).
// For bool it is the logical OR.
func (a *SimpleArray[T]) IAdd(other *SimpleArray[T]) error {
	return a.inplace(OpAdd, other)
}

// ISub subtracts other from the body element-wise (a -= other).
// It is not defined for bool.
func (a *SimpleArray[T]) ISub(other *SimpleArray[T]) error {
	return a.inplace(OpSub, other)
}

// IMul multiplies the body by other element-wise (a *= other).
// For bool it is the logical AND.
func (a *SimpleArray[T]) IMul(other *SimpleArray[T]) error {
	return a.inplace(OpMul, other)
}

// IDiv divides the body by other element-wise (a /= other).
// Integer division by zero fails before anything is written; it is not
// defined for bool.
func (a *SimpleArray[T]) IDiv(other *SimpleArray[T]) error {
	return a.inplace(OpDiv, other)
}

// Add returns a new array holding a + other.
func (a *SimpleArray[T]) Add(other *SimpleArray[T]) (*SimpleArray[T], error) {
	return a.outOfPlace(OpAdd, other)
}

// Sub returns a new array holding a - other.
func (a *SimpleArray[T]) Sub(other *SimpleArray[T]) (*SimpleArray[T], error) {
	return a.outOfPlace(OpSub, other)
}

// Mul returns a new array holding a * other.
func (a *SimpleArray[T]) Mul(other *SimpleArray[T]) (*SimpleArray[T], error) {
	return a.outOfPlace(OpMul, other)
}

// Div returns a new array holding a / other.
func (a *SimpleArray[T]) Div(other *SimpleArray[T]) (*SimpleArray[T], error) {
	return a.outOfPlace(OpDiv, other)
}

// Apply returns a new array holding a op other, computed on the requested
// loop. Every loop gives the same result.
func (a *SimpleArray[T]) Apply(op Operator, other *SimpleArray[T], path Kernel) (*SimpleArray[T], error) {
	if op < 0 || op >= numOperators {
		return nil, fmt.Errorf("%w: operator %d", ErrUnsupportedOperation, int(op))
	}
	return a.outOfPlaceWith(op, other, path)
}

// Fill sets every body element to v. Ghost rows are not touched.
func (a *SimpleArray[T]) Fill(v T) error {
	vals, err := a.values()
	if err != nil {
		return err
	}
	if body, ok := a.bodySlice(vals); ok {
		fillValues(body, v)
		return nil
	}
	forEachOffset(a.shape, a.stride, a.bodyRow0(), func(off int) bool {
		vals[off] = v
		return true
	})
	return nil
}

func (a *SimpleArray[T]) outOfPlace(op Operator, other *SimpleArray[T]) (*SimpleArray[T], error) {
	return a.outOfPlaceWith(op, other, KernelAuto)
}

func (a *SimpleArray[T]) outOfPlaceWith(op Operator, other *SimpleArray[T], path Kernel) (*SimpleArray[T], error) {
	if err := a.checkBinary(op, other); err != nil {
		return nil, err
	}
	out, err := a.Clone()
	if err != nil {
		return nil, err
	}
	if err := out.inplaceWith(op, other, path); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

// checkBinary validates an operation before any element is written.
func (a *SimpleArray[T]) checkBinary(op Operator, other *SimpleArray[T]) error {
	k := kernelsFor[T]()
	if k.scalar[op] == nil {
		return fmt.Errorf("%w: %s is not defined for %s", ErrUnsupportedOperation, op, a.DataType())
	}
	if !a.bodyShape().Equal(other.bodyShape()) {
		return fmt.Errorf("%w: body %v %s body %v", ErrShapeMismatch, a.bodyShape(), op, other.bodyShape())
	}
	return nil
}

func (a *SimpleArray[T]) inplace(op Operator, other *SimpleArray[T]) error {
	return a.inplaceWith(op, other, KernelAuto)
}

func (a *SimpleArray[T]) inplaceWith(op Operator, other *SimpleArray[T], path Kernel) error {
	if err := a.checkBinary(op, other); err != nil {
		return err
	}
	dst, err := a.values()
	if err != nil {
		return err
	}
	srcVals, err := other.values()
	if err != nil {
		return err
	}

	src, ok := other.bodySlice(srcVals)
	if !ok {
		src = other.gatherBody(srcVals)
	}

	k := kernelsFor[T]()
	if op == OpDiv && k.isZero != nil {
		for i, v := range src {
			if k.isZero(v) {
				return fmt.Errorf("%w: divisor body element %d", ErrDivisionByZero, i)
			}
		}
	}

	fn := k.binary(op, len(src), path)
	if body, ok := a.bodySlice(dst); ok {
		fn(body, src)
		return nil
	}
	body := a.gatherBody(dst)
	fn(body, src)
	a.scatterBody(dst, body)
	return nil
}
