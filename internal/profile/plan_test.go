package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modmesh/modmesh-go/internal/array"
)

func TestDefaultPlanIsValid(t *testing.T) {
	assert.NoError(t, DefaultPlan().Validate())
}

func TestParsePlanKeepsDefaults(t *testing.T) {
	p, err := ParsePlan([]byte("length: 64\nops: [mul]\n"))
	require.NoError(t, err)
	assert.Equal(t, 64, p.Length)
	assert.Equal(t, []string{"mul"}, p.Ops)
	assert.Equal(t, DefaultPlan().Iterations, p.Iterations)
	assert.Equal(t, DefaultPlan().MaxPowers, p.MaxPowers)
}

func TestParsePlanRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"bad yaml":      "length: [",
		"zero length":   "length: 0",
		"no iterations": "iterations: -1",
		"power too big": "max_powers: [64]",
		"power too low": "max_powers: [0]",
		"unknown op":    "ops: [pow]",
		"empty ops":     "ops: []",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlan([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}
}

func TestLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 2\nmax_powers: [6, 14]\nseed: 7\n"), 0o600))

	p, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Iterations)
	assert.Equal(t, []int{6, 14}, p.MaxPowers)
	assert.Equal(t, uint64(7), p.Seed)

	_, err = LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, array.Uint8, KindFor(6))
	assert.Equal(t, array.Uint16, KindFor(14))
	assert.Equal(t, array.Uint32, KindFor(22))
	assert.Equal(t, array.Uint32, KindFor(30))
	assert.Equal(t, array.Uint64, KindFor(38))
	assert.Equal(t, array.Uint64, KindFor(63))
}
