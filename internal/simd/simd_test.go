package simd

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeature(t *testing.T) {
	for f, name := range featureNames {
		got, err := ParseFeature(name)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFeature(" AVX2 ")
	require.NoError(t, err)
	assert.Equal(t, AVX2, got)

	_, err = ParseFeature("sve2")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestFeatureWidthAndLanes(t *testing.T) {
	assert.Equal(t, 0, None.Width())
	assert.Equal(t, 16, NEON.Width())
	assert.Equal(t, 16, SSE42.Width())
	assert.Equal(t, 32, AVX2.Width())
	assert.Equal(t, 64, AVX512.Width())

	assert.Equal(t, 1, None.Lanes(4))
	assert.Equal(t, 4, SSE2.Lanes(4))
	assert.Equal(t, 8, AVX2.Lanes(4))
	assert.Equal(t, 64, AVX512.Lanes(1))
	assert.Equal(t, 1, SSE2.Lanes(0))
}

func TestCovers(t *testing.T) {
	assert.True(t, AVX2.Covers(SSE41))
	assert.True(t, AVX2.Covers(None))
	assert.False(t, SSE42.Covers(AVX))
	assert.False(t, AVX512.Covers(NEON))
	assert.True(t, NEON.Covers(NEON))
	assert.False(t, NEON.Covers(SSE2))
	assert.False(t, None.Covers(SSE2))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, AVX2, resolve(DefaultConfig(), AVX2))
	assert.Equal(t, None, resolve(Config{Override: "none"}, AVX2))
	assert.Equal(t, SSE42, resolve(Config{Override: "sse4.2"}, AVX2))
	// Raising above the detected capability is refused.
	assert.Equal(t, SSE42, resolve(Config{Override: "avx512"}, SSE42))
	assert.Equal(t, NEON, resolve(Config{Override: "avx"}, NEON))
	assert.Equal(t, AVX, resolve(Config{Override: "bogus"}, AVX))
}

func TestDetectIsDeterministic(t *testing.T) {
	first := Detect()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect())
	}
}

func TestCurrentConcurrentFirstAccess(t *testing.T) {
	const n = 32
	results := make([]Feature, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Current()
		}(i)
	}
	wg.Wait()

	for _, f := range results {
		assert.Equal(t, results[0], f)
	}
	assert.True(t, Detect().Covers(Current()))
}
