package profile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/modmesh/modmesh-go/internal/array"
)

// ErrInvalidPlan is returned for a plan that cannot be run.
var ErrInvalidPlan = errors.New("invalid profile plan")

// Plan describes one profiling session. For each max power and operator the
// session times the scalar and vector loops over Length random elements,
// Iterations times.
type Plan struct {
	Length     int      `yaml:"length"`
	Iterations int      `yaml:"iterations"`
	MaxPowers  []int    `yaml:"max_powers"`
	Ops        []string `yaml:"ops"`
	Seed       uint64   `yaml:"seed"`
}

// DefaultPlan matches the stock session: 4M elements, values up to 2^6,
// 2^14 and so on, add/sub/mul.
func DefaultPlan() Plan {
	return Plan{
		Length:     1 << 22,
		Iterations: 10,
		MaxPowers:  []int{6, 14, 22, 30, 38, 46},
		Ops:        []string{"add", "sub", "mul"},
		Seed:       1,
	}
}

// LoadPlan reads a YAML plan. Fields missing from the file keep their
// DefaultPlan values.
func LoadPlan(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(raw)
}

// ParsePlan decodes a YAML plan over DefaultPlan and validates it.
func ParsePlan(raw []byte) (Plan, error) {
	p := DefaultPlan()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Plan{}, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Validate checks the plan before anything is allocated.
func (p Plan) Validate() error {
	if p.Length <= 0 {
		return fmt.Errorf("%w: length %d", ErrInvalidPlan, p.Length)
	}
	if p.Iterations <= 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidPlan, p.Iterations)
	}
	if len(p.MaxPowers) == 0 || len(p.Ops) == 0 {
		return fmt.Errorf("%w: no max_powers or ops", ErrInvalidPlan)
	}
	for _, pow := range p.MaxPowers {
		if pow < 1 || pow > 63 {
			return fmt.Errorf("%w: max power %d outside [1, 63]", ErrInvalidPlan, pow)
		}
	}
	for _, name := range p.Ops {
		if _, err := array.ParseOperator(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
	}
	return nil
}

// KindFor returns the narrowest unsigned kind the session uses for values
// below 2^pow.
func KindFor(pow int) array.DataType {
	kinds := [...]array.DataType{
		array.Uint8, array.Uint16, array.Uint32, array.Uint32,
		array.Uint64, array.Uint64, array.Uint64, array.Uint64,
	}
	return kinds[pow/8]
}
