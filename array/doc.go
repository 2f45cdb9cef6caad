// Copyright 2025 The modmesh-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package array provides strided, ghost-aware numeric arrays over
// reference-counted byte buffers.
//
// # Overview
//
// A SimpleArray[T] is a typed view (shape, strides, ghost count) over a
// ConcreteBuffer. Several views may share one buffer; the buffer is freed,
// or its release callback run, exactly once when the last view lets go.
//
//	a, _ := array.New[float64](array.Shape{5, 3})
//	defer a.Release()
//	_ = a.SetNghost(2) // rows 0 and 1 become ghost rows
//	_ = a.Set(0, 1.5)  // first body element
//	_ = a.Set(-1, 9)   // last ghost element
//
// # Ghost Cells
//
// The first nghost rows along axis 0 are ghost cells. Element access is
// body-relative, so negative indices reach into the ghost region.
// Reductions and arithmetic only see the body.
//
// # Element Kinds
//
// bool, int8..int64, uint8..uint64, float32 and float64. For bool, + is
// logical OR and * is logical AND; - and / are not defined.
//
// # Assignment
//
// SetItem takes an Index, Indices, Slice, Ellipsis or Tuple key:
//
//	src, _ := array.FromSlice([]float64{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
//	err := a.SetItem(array.Tuple{array.Span(1, 3), array.Ellipsis{}}, src)
//
// Region coordinates cover the full axis 0, ghost rows included. A source
// whose shape differs from the region fails with a *ShapeError and leaves
// the target untouched.
//
// # Foreign Memory
//
// Descriptor and FromDescriptor exchange arrays with other runtimes without
// copying. MapFile and NewLocked provide Borrowed buffers over a mapped file
// and over locked, guarded memory.
package array
