package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "modmesh "+version+"\n", out)
}

func TestSIMDCommand(t *testing.T) {
	out, err := execute(t, "simd")
	require.NoError(t, err)
	assert.Contains(t, out, "detected: ")
	assert.Contains(t, out, "selected: ")
	assert.Contains(t, out, "float64")
}

func TestProfileCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_powers: [6]\nops: [add, mul]\n"), 0o600))

	out, err := execute(t, "profile", "--config", path, "--iterations", "1", "--length", "64")
	require.NoError(t, err)
	assert.Contains(t, out, "## add N = 64 max: 2^6 type: uint8")
	assert.Contains(t, out, "## mul N = 64 max: 2^6 type: uint8")
	assert.Equal(t, 2, strings.Count(out, "| scalar "))
	assert.Equal(t, 2, strings.Count(out, "| vector "))
}

func TestProfileCommandBadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ops: [pow]\n"), 0o600))

	_, err := execute(t, "profile", "--config", path)
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}
