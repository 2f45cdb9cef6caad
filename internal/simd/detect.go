package simd

import (
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// x86Ranked lists the probed x86 extensions, richest first.
// SSE has no separate flag and is implied by SSE2.
var x86Ranked = []struct {
	feature Feature
	has     *bool
}{
	{AVX512, &cpu.X86.HasAVX512F},
	{AVX2, &cpu.X86.HasAVX2},
	{AVX, &cpu.X86.HasAVX},
	{SSE42, &cpu.X86.HasSSE42},
	{SSE41, &cpu.X86.HasSSE41},
	{SSSE3, &cpu.X86.HasSSSE3},
	{SSE3, &cpu.X86.HasSSE3},
	{SSE2, &cpu.X86.HasSSE2},
}

// Detect probes the CPU and returns the highest-ranked extension found.
// It has no side effects and does not consult the cache.
func Detect() Feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, r := range x86Ranked {
			if *r.has {
				return r.feature
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return NEON
		}
	case "arm":
		if cpu.ARM.HasNEON {
			return NEON
		}
	}
	return None
}

// current is published once; concurrent first callers block until it is set.
var current = sync.OnceValue(func() Feature {
	detected := Detect()
	selected := resolve(ConfigFromEnv(), detected)
	slog.Debug("simd capability", "detected", detected, "selected", selected)
	return selected
})

// Current returns the process-wide capability, probing on first use.
func Current() Feature {
	return current()
}

// resolve applies cfg to a detected feature. An override can only lower the
// capability; names the CPU does not cover are ignored.
func resolve(cfg Config, detected Feature) Feature {
	if cfg.Override == "" {
		return detected
	}
	f, err := ParseFeature(cfg.Override)
	if err != nil {
		slog.Debug("ignoring simd override", "override", cfg.Override, "error", err)
		return detected
	}
	if !detected.Covers(f) {
		slog.Debug("ignoring simd override", "override", f, "detected", detected)
		return detected
	}
	return f
}
