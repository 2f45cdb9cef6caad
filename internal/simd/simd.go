// Package simd reports the widest vector instruction extension available on
// the running CPU.
//
// The capability is probed once per process and cached; every later call to
// Current returns the same value.
package simd

import (
	"errors"
	"fmt"
	"strings"
)

// Feature is a vector instruction-set extension.
//
// x86 features are ordered so that a larger value implies every smaller x86
// value. NEON is the only ARM entry.
type Feature int

// Supported features.
const (
	None Feature = iota
	NEON
	SSE
	SSE2
	SSE3
	SSSE3
	SSE41
	SSE42
	AVX
	AVX2
	AVX512
)

// ErrUnknownFeature is returned by ParseFeature for unrecognized names.
var ErrUnknownFeature = errors.New("unknown simd feature")

var featureNames = map[Feature]string{
	None:   "none",
	NEON:   "neon",
	SSE:    "sse",
	SSE2:   "sse2",
	SSE3:   "sse3",
	SSSE3:  "ssse3",
	SSE41:  "sse4.1",
	SSE42:  "sse4.2",
	AVX:    "avx",
	AVX2:   "avx2",
	AVX512: "avx512",
}

// String returns the lower-case feature name.
func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return "unknown"
}

// Width returns the vector register width in bytes (0 for None).
func (f Feature) Width() int {
	switch f {
	case NEON, SSE, SSE2, SSE3, SSSE3, SSE41, SSE42:
		return 16
	case AVX, AVX2:
		return 32
	case AVX512:
		return 64
	default:
		return 0
	}
}

// IsX86 reports whether f belongs to the x86 SSE/AVX family.
func (f Feature) IsX86() bool {
	return f >= SSE && f <= AVX512
}

// Lanes returns how many elements of the given byte size fit in one vector
// register. It never returns less than 1.
func (f Feature) Lanes(elemSize int) int {
	if elemSize <= 0 || f.Width() < elemSize {
		return 1
	}
	return f.Width() / elemSize
}

// Covers reports whether a CPU whose widest extension is f also provides g.
func (f Feature) Covers(g Feature) bool {
	switch {
	case g == None:
		return true
	case g == NEON:
		return f == NEON
	case g.IsX86():
		return f.IsX86() && g <= f
	default:
		return false
	}
}

// ParseFeature resolves a feature from its name (case-insensitive).
func ParseFeature(name string) (Feature, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for f, n := range featureNames {
		if n == want {
			return f, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}
