package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/modmesh/modmesh-go/internal/array"
)

// Row is one measured loop of a table.
type Row struct {
	Name    string
	Calls   uint64
	PerCall time.Duration
	// Ratio is PerCall over the scalar loop's PerCall.
	Ratio float64
}

// Table holds the rows measured for one operator at one max power.
type Table struct {
	Op     array.Operator
	MaxPow int
	Kind   array.DataType
	Length int
	Rows   []Row
}

// WriteMarkdown prints the table the way the profiling notes record it.
func (t Table) WriteMarkdown(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "## %s N = %d max: 2^%d type: %s\n\n", t.Op.Name(), t.Length, t.MaxPow, t.Kind); err != nil {
		return err
	}
	row := func(cols ...string) error {
		_, err := fmt.Fprintf(w, "| %-10s | %-15s | %-15s |\n", cols[0], cols[1], cols[2])
		return err
	}
	if err := row("func", "per call (ms)", "cmp to scalar"); err != nil {
		return err
	}
	if err := row("----------", "---------------", "---------------"); err != nil {
		return err
	}
	for _, r := range t.Rows {
		ms := float64(r.PerCall) / float64(time.Millisecond)
		if err := row(r.Name, fmt.Sprintf("%.3E", ms), fmt.Sprintf("%.3f", r.Ratio)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Run executes the plan and returns one table per (max power, operator)
// pair, in plan order. It stops between iterations when ctx is done.
func Run(ctx context.Context, plan Plan) ([]Table, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(plan.Seed, plan.Seed^0x9e3779b97f4a7c15))
	p := NewCallProfiler()

	var out []Table
	for _, pow := range plan.MaxPowers {
		kind := KindFor(pow)
		for _, name := range plan.Ops {
			op, _ := array.ParseOperator(name)
			p.Reset()
			for range plan.Iterations {
				if err := ctx.Err(); err != nil {
					return out, err
				}
				if err := runOnce(kind, op, pow, plan.Length, rng, p); err != nil {
					return out, fmt.Errorf("%s 2^%d: %w", name, pow, err)
				}
			}
			recs, err := p.Result()
			if err != nil {
				return out, err
			}
			t := Table{Op: op, MaxPow: pow, Kind: kind, Length: plan.Length, Rows: rowsOf(recs)}
			slog.Debug("profiled", "op", name, "max_pow", pow, "kind", kind, "rows", len(t.Rows))
			out = append(out, t)
		}
	}
	return out, nil
}

func rowsOf(recs []Record) []Row {
	var base time.Duration
	for _, r := range recs {
		if r.Name == array.KernelScalar.String() {
			base = r.PerCall()
		}
	}
	rows := make([]Row, len(recs))
	for i, r := range recs {
		rows[i] = Row{Name: r.Name, Calls: r.Count, PerCall: r.PerCall()}
		if base > 0 {
			rows[i].Ratio = float64(r.PerCall()) / float64(base)
		}
	}
	return rows
}

func runOnce(kind array.DataType, op array.Operator, pow, n int, rng *rand.Rand, p *CallProfiler) error {
	switch kind {
	case array.Uint8:
		return measure[uint8](op, pow, n, rng, p)
	case array.Uint16:
		return measure[uint16](op, pow, n, rng, p)
	case array.Uint32:
		return measure[uint32](op, pow, n, rng, p)
	case array.Uint64:
		return measure[uint64](op, pow, n, rng, p)
	default:
		return fmt.Errorf("%w: %s", array.ErrUnsupportedType, kind)
	}
}

// measure times every loop on the same pair of random operands.
func measure[T array.Unsigned](op array.Operator, pow, n int, rng *rand.Rand, p *CallProfiler) error {
	lhs, err := random[T](n, pow, false, rng)
	if err != nil {
		return err
	}
	defer lhs.Release()
	rhs, err := random[T](n, pow, op == array.OpDiv, rng)
	if err != nil {
		return err
	}
	defer rhs.Release()

	for _, path := range []array.Kernel{array.KernelScalar, array.KernelVector} {
		stop := p.Probe(path.String())
		res, err := lhs.Apply(op, rhs, path)
		stop()
		if err != nil {
			return err
		}
		res.Release()
	}
	return nil
}

// random fills n elements with values in [0, 2^pow), or [1, 2^pow) when
// nonzero is set.
func random[T array.Unsigned](n, pow int, nonzero bool, rng *rand.Rand) (*array.SimpleArray[T], error) {
	limit := uint64(1) << pow
	data := make([]T, n)
	for i := range data {
		if nonzero {
			data[i] = T(rng.Uint64N(limit-1) + 1)
		} else {
			data[i] = T(rng.Uint64N(limit))
		}
	}
	return array.FromSlice(data, nil)
}
