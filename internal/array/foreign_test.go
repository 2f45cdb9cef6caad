package array

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorExport(t *testing.T) {
	a, err := FromSlice([]int32{1, 2, 3, 4, 5, 6}, Shape{3, 2})
	require.NoError(t, err)
	require.NoError(t, a.SetNghost(1))

	d, err := a.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, Int32, d.Kind)
	assert.Equal(t, Shape{3, 2}, d.Shape)
	assert.Equal(t, []int{8, 4}, d.Strides)
	assert.Equal(t, 2, d.Ndim())
	assert.Equal(t, 24, d.NBytes())
	assert.Len(t, d.Data, 24)
	assert.NoError(t, d.Validate())
}

func TestFromDescriptorSharesMemory(t *testing.T) {
	data := make([]byte, 4*8)
	for i := range 4 {
		binary.NativeEndian.PutUint64(data[i*8:], math.Float64bits(float64(i)))
	}

	calls := 0
	d := Descriptor{Kind: Float64, Shape: Shape{2, 2}, Strides: []int{16, 8}, Data: data}
	a, err := FromDescriptor[float64](d, func() { calls++ })
	require.NoError(t, err)
	assert.True(t, a.IsBorrowed())

	v, err := a.AtIndex(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	require.NoError(t, a.SetIndex(9, 0, 1))
	assert.Equal(t, 9.0, math.Float64frombits(binary.NativeEndian.Uint64(data[8:])))

	b, err := a.Reshape(Shape{4})
	require.NoError(t, err)
	a.Release()
	assert.Zero(t, calls)
	b.Release()
	assert.Equal(t, 1, calls)
}

func TestFromDescriptorTransposed(t *testing.T) {
	a, err := FromSlice([]uint16{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	d, err := a.Descriptor()
	require.NoError(t, err)

	d.Shape = Shape{3, 2}
	d.Strides = []int{2, 6}
	tr, err := FromDescriptor[uint16](d, nil)
	require.NoError(t, err)
	assert.False(t, tr.IsContiguous())
	assert.Equal(t, []uint16{1, 4, 2, 5, 3, 6}, valuesOf(t, tr))
	tr.Release()

	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), v)
}

func TestFromDescriptorErrorsSkipRelease(t *testing.T) {
	calls := 0
	release := func() { calls++ }
	data := make([]byte, 16)

	tests := []struct {
		name string
		d    Descriptor
		want error
	}{
		{"kind mismatch", Descriptor{Kind: Int32, Shape: Shape{4}, Strides: []int{4}, Data: data}, ErrTypeMismatch},
		{"unaligned stride", Descriptor{Kind: Float32, Shape: Shape{2}, Strides: []int{6}, Data: data}, ErrUnsupportedType},
		{"out of bounds", Descriptor{Kind: Float32, Shape: Shape{8}, Strides: []int{4}, Data: data}, ErrIndex},
		{"stride count", Descriptor{Kind: Float32, Shape: Shape{2, 2}, Strides: []int{4}, Data: data}, ErrShapeMismatch},
		{"negative stride", Descriptor{Kind: Float32, Shape: Shape{2}, Strides: []int{-4}, Data: data}, ErrShapeMismatch},
		{"stride overflow", Descriptor{Kind: Float32, Shape: Shape{5}, Strides: []int{math.MaxInt / 2}, Data: data}, ErrIndex},
		{"end overflow", Descriptor{Kind: Float32, Shape: Shape{2}, Strides: []int{math.MaxInt - 2}, Data: data}, ErrIndex},
		{"size overflow", Descriptor{Kind: Float32, Shape: Shape{math.MaxInt / 2, 3}, Strides: []int{0, 0}, Data: data}, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDescriptor[float32](tt.d, release)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, calls)
}

func TestNewOf(t *testing.T) {
	for _, dt := range DataTypes() {
		a, err := NewOf(dt, Shape{2, 3})
		require.NoError(t, err, dt.String())
		assert.Equal(t, dt, a.DataType())
		assert.Equal(t, 6, a.Size())
		assert.Equal(t, 6*dt.Size(), a.NBytes())
		a.Release()
	}

	a, err := NewOf(DataType(99), Shape{1})
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Nil(t, a)

	a, err = NewOf(Float64, Shape{-1})
	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestFromDescriptorOf(t *testing.T) {
	src, err := FromSlice([]int8{1, -1, 3}, nil)
	require.NoError(t, err)
	d, err := src.Descriptor()
	require.NoError(t, err)

	a, err := FromDescriptorOf(d, nil)
	require.NoError(t, err)
	assert.Equal(t, Int8, a.DataType())

	dst, err := NewOf(Float32, Shape{3})
	require.NoError(t, err)
	require.NoError(t, dst.SetItem(Ellipsis{}, a))
	f := dst.(*SimpleArray[float32])
	assert.Equal(t, []float32{1, -1, 3}, valuesOf(t, f))

	d.Kind = DataType(-1)
	a, err = FromDescriptorOf(d, nil)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Nil(t, a)
}
