package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modmesh/modmesh-go/internal/buffer"
)

func iota64(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestNewSizeAndBody(t *testing.T) {
	a, err := New[float64](Shape{5, 3})
	require.NoError(t, err)
	defer a.Release()

	assert.Equal(t, 15, a.Size())
	assert.Equal(t, 2, a.Ndim())
	assert.Equal(t, 8, a.ItemSize())
	assert.Equal(t, 120, a.NBytes())
	assert.Equal(t, []int{3, 1}, a.Stride())
	assert.Equal(t, 5, a.Nbody())
	assert.False(t, a.HasGhost())
	assert.False(t, a.IsBorrowed())
	assert.True(t, a.IsContiguous())

	require.NoError(t, a.SetNghost(2))
	assert.Equal(t, 2, a.Nghost())
	assert.Equal(t, 3, a.Nbody())
	assert.True(t, a.HasGhost())
	assert.Equal(t, a.Shape()[0], a.Nghost()+a.Nbody())

	assert.ErrorIs(t, a.SetNghost(6), ErrIndex)
	assert.ErrorIs(t, a.SetNghost(-1), ErrIndex)
	assert.Equal(t, 2, a.Nghost())
}

func TestNewRejectsNegativeShape(t *testing.T) {
	_, err := New[int32](Shape{2, -3})
	assert.Error(t, err)
}

func TestRankZero(t *testing.T) {
	a, err := New[float64](Shape{})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Size())
	assert.Equal(t, 1, a.Nbody())
	assert.Equal(t, 0, a.Ndim())
	assert.ErrorIs(t, a.SetNghost(1), ErrIndex)
	assert.NoError(t, a.SetNghost(0))

	require.NoError(t, a.Set(0, 4.5))
	v, err := a.AtIndex()
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)
}

func TestFullAndFromSlice(t *testing.T) {
	a, err := Full[int16](Shape{2, 3}, 7)
	require.NoError(t, err)
	for p := range a.Elements() {
		assert.Equal(t, int16(7), *p)
	}

	b, err := FromSlice([]uint8{1, 2, 3, 4, 5, 6}, Shape{3, 2})
	require.NoError(t, err)
	v, err := b.AtIndex(2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(6), v)

	c, err := FromSlice([]bool{true, false}, nil)
	require.NoError(t, err)
	assert.Equal(t, Shape{2}, c.Shape())

	_, err = FromSlice([]float32{1, 2, 3}, Shape{2, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestShapeAndStrideAreCopies(t *testing.T) {
	a, err := New[int64](Shape{2, 3})
	require.NoError(t, err)

	s := a.Shape()
	s[0] = 99
	st := a.Stride()
	st[0] = 99
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, []int{3, 1}, a.Stride())
}

func TestReshapeRoundTrip(t *testing.T) {
	a, err := FromSlice(iota64(24), nil)
	require.NoError(t, err)

	b, err := a.Reshape(Shape{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{12, 4, 1}, b.Stride())
	assert.Equal(t, 0, b.Nghost())

	v, err := b.AtIndex(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 23.0, v)

	// Views share the buffer.
	require.NoError(t, b.SetIndex(-1, 0, 0, 1))
	v, err = a.At(1)
	require.NoError(t, err)
	assert.Equal(t, -1.0, v)

	c, err := b.Reshape(Shape{24})
	require.NoError(t, err)
	assert.Equal(t, a.Shape(), c.Shape())
	assert.Equal(t, a.Stride(), c.Stride())
	for i := range 24 {
		x, _ := a.At(i)
		y, _ := c.At(i)
		assert.Equal(t, x, y)
	}

	_, err = a.Reshape(Shape{5, 5})
	assert.ErrorIs(t, err, ErrReshape)
}

func TestReshapeDropsGhost(t *testing.T) {
	a, err := New[float32](Shape{4, 2})
	require.NoError(t, err)
	require.NoError(t, a.SetNghost(1))

	b, err := a.Reshape(Shape{8})
	require.NoError(t, err)
	assert.Equal(t, 0, b.Nghost())
	assert.Equal(t, 1, a.Nghost())
}

func TestIndexRoundTrip(t *testing.T) {
	shape := Shape{3, 4, 5}
	a, err := New[float64](shape)
	require.NoError(t, err)

	for i := range shape.NumElements() {
		idx := []int{i / 20, (i / 5) % 4, i % 5}
		require.NoError(t, a.SetIndex(float64(i), idx...))
	}
	for i := range shape.NumElements() {
		v, err := a.At(i)
		require.NoError(t, err)
		assert.Equal(t, float64(i), v)
	}
}

func TestGhostIndexing(t *testing.T) {
	a, err := FromSlice(iota64(10), Shape{5, 2})
	require.NoError(t, err)
	require.NoError(t, a.SetNghost(2))

	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = a.At(-4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	v, err = a.At(5)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	_, err = a.At(6)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.At(-5)
	assert.ErrorIs(t, err, ErrIndex)

	v, err = a.AtIndex(-2, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = a.AtIndex(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)

	_, err = a.AtIndex(3, 0)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.AtIndex(-3, 0)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.AtIndex(0, 2)
	assert.ErrorIs(t, err, ErrIndex)
	_, err = a.AtIndex(0)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestReleasedArray(t *testing.T) {
	a, err := New[int32](Shape{4})
	require.NoError(t, err)

	a.Release()
	a.Release()
	assert.True(t, a.Released())

	_, err = a.At(0)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, a.Fill(1), ErrReleased)
	_, err = a.Reshape(Shape{2, 2})
	assert.ErrorIs(t, err, ErrReleased)
	_, err = a.Descriptor()
	assert.ErrorIs(t, err, ErrReleased)
}

func TestViewsKeepBufferAlive(t *testing.T) {
	a, err := FromSlice([]int64{1, 2, 3, 4}, nil)
	require.NoError(t, err)
	b, err := a.Reshape(Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Buffer().RefCount())

	a.Release()
	assert.Equal(t, 1, b.Buffer().RefCount())
	v, err := b.AtIndex(1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	b.Release()
	assert.True(t, b.Buffer().Released())
}

func TestBorrowedReleaseRunsOnceThroughArrays(t *testing.T) {
	calls := 0
	buf := buffer.Borrow(make([]byte, 32), func() { calls++ })

	a, err := Wrap[float64](Shape{4}, buf)
	require.NoError(t, err)
	assert.True(t, a.IsBorrowed())
	buf.Release()
	assert.Zero(t, calls)

	b, err := a.Reshape(Shape{2, 2})
	require.NoError(t, err)
	c, err := a.Clone()
	require.NoError(t, err)
	assert.False(t, c.IsBorrowed())

	a.Release()
	a.Release()
	assert.Zero(t, calls)
	b.Release()
	assert.Equal(t, 1, calls)
	b.Release()
	c.Release()
	assert.Equal(t, 1, calls)
}

func TestWrapStrided(t *testing.T) {
	base, err := FromSlice(iota64(12), Shape{3, 4})
	require.NoError(t, err)

	even, err := WrapStrided[float64](Shape{3, 2}, []int{4, 2}, base.Buffer())
	require.NoError(t, err)
	assert.False(t, even.IsContiguous())

	var got []float64
	for p := range even.Elements() {
		got = append(got, *p)
	}
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, got)

	_, err = even.Reshape(Shape{6})
	assert.ErrorIs(t, err, ErrReshape)
	assert.ErrorIs(t, err, ErrNotContiguous)

	c, err := even.Clone()
	require.NoError(t, err)
	assert.True(t, c.IsContiguous())
	v, err := c.At(5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	_, err = WrapStrided[float64](Shape{3, 2}, []int{4, 5}, base.Buffer())
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = WrapStrided[float64](Shape{3, 2}, []int{4}, base.Buffer())
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = Wrap[float64](Shape{4, 4}, base.Buffer())
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = WrapStrided[float64](Shape{3, 2}, []int{math.MaxInt / 2, 1}, base.Buffer())
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = WrapStrided[float64](Shape{2}, []int{math.MaxInt / 8}, base.Buffer())
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = WrapStrided[float64](Shape{math.MaxInt / 4}, []int{1}, base.Buffer())
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSizeOverflow(t *testing.T) {
	_, err := New[float64](Shape{math.MaxInt / 4})
	assert.ErrorIs(t, err, buffer.ErrAllocation)

	_, err = New[int8](Shape{math.MaxInt / 2, 3})
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = FromSlice([]float64{}, Shape{math.MaxInt / 2, 3})
	assert.ErrorIs(t, err, ErrOverflow)

	a, err := FromSlice(iota64(6), nil)
	require.NoError(t, err)
	defer a.Release()
	_, err = a.Reshape(Shape{math.MaxInt / 2, 3, 0})
	assert.ErrorIs(t, err, ErrReshape)
	_, err = a.Reshape(Shape{math.MaxInt / 2, 3})
	assert.ErrorIs(t, err, ErrReshape)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCloneKeepsGhost(t *testing.T) {
	a, err := FromSlice([]int8{1, 2, 3, 4}, Shape{4})
	require.NoError(t, err)
	require.NoError(t, a.SetNghost(1))

	c, err := a.Clone()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Nghost())
	require.NoError(t, c.Set(0, 20))

	v, _ := a.At(0)
	assert.Equal(t, int8(2), v)
	v, _ = c.At(-1)
	assert.Equal(t, int8(1), v)
}

func TestSimpleArrayString(t *testing.T) {
	a, err := New[uint16](Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, "SimpleArray[uint16](2, 3) nghost=0", a.String())
}
