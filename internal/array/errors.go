package array

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShapeMismatch        = errors.New("shape mismatch")
	ErrIndex                = errors.New("index out of range")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrUnsupportedType      = errors.New("unsupported data type")
	ErrUnknownType          = errors.New("unknown data type")
	ErrSyntax               = errors.New("syntax error")
	ErrEmptyReduction       = errors.New("reduction over empty body")
	ErrReshape              = errors.New("cannot reshape")
	ErrOverflow             = errors.New("integer overflow")
	ErrDivisionByZero       = errors.New("integer division by zero")
	ErrTypeMismatch         = errors.New("data type mismatch")
	ErrReleased             = errors.New("array already released")
	ErrNotContiguous        = errors.New("array is not contiguous")
)

// ShapeError reports a region whose shape does not match its source.
type ShapeError struct {
	Left  Shape // Shape of the selected target region.
	Right Shape // Shape of the source array.
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("broadcast input array from shape%s into shape%s", e.Right, e.Left)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
