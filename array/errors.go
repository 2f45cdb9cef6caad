// Copyright 2025 The modmesh-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/modmesh/modmesh-go/internal/array"
	"github.com/modmesh/modmesh-go/internal/buffer"
)

// Errors returned by this package. Test them with errors.Is.
var (
	ErrAllocation           = buffer.ErrAllocation
	ErrShapeMismatch        = array.ErrShapeMismatch
	ErrIndex                = array.ErrIndex
	ErrUnsupportedOperation = array.ErrUnsupportedOperation
	ErrUnsupportedType      = array.ErrUnsupportedType
	ErrUnknownType          = array.ErrUnknownType
	ErrSyntax               = array.ErrSyntax
	ErrEmptyReduction       = array.ErrEmptyReduction
	ErrReshape              = array.ErrReshape
	ErrOverflow             = array.ErrOverflow
	ErrDivisionByZero       = array.ErrDivisionByZero
	ErrTypeMismatch         = array.ErrTypeMismatch
	ErrReleased             = array.ErrReleased
	ErrNotContiguous        = array.ErrNotContiguous
)

// ShapeError reports a region whose shape does not match its source.
type ShapeError = array.ShapeError
