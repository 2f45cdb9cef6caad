// Package profile times named calls and runs the arithmetic kernel
// comparison behind `modmesh profile`.
package profile

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricName = "modmesh_call_duration_seconds"

// Record is the accumulated timing of one probe name.
type Record struct {
	Name  string
	Count uint64
	Total time.Duration
}

// PerCall returns the mean duration of one call.
func (r Record) PerCall() time.Duration {
	if r.Count == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Count)
}

// CallProfiler accumulates call durations per probe name in a histogram on
// a private registry, so it never collides with process-wide metrics.
type CallProfiler struct {
	reg   *prometheus.Registry
	calls *prometheus.HistogramVec

	mu    sync.Mutex
	order []string
	seen  map[string]bool
}

// NewCallProfiler returns an empty profiler.
func NewCallProfiler() *CallProfiler {
	calls := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metricName,
		Help:    "Duration of profiled calls.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"name"})
	reg := prometheus.NewRegistry()
	reg.MustRegister(calls)
	return &CallProfiler{reg: reg, calls: calls, seen: make(map[string]bool)}
}

// Probe starts timing a call and returns the function that stops it.
//
//	stop := p.Probe("add")
//	defer stop()
func (p *CallProfiler) Probe(name string) func() {
	p.mu.Lock()
	if !p.seen[name] {
		p.seen[name] = true
		p.order = append(p.order, name)
	}
	p.mu.Unlock()

	timer := prometheus.NewTimer(p.calls.WithLabelValues(name))
	return func() { timer.ObserveDuration() }
}

// Reset drops every record.
func (p *CallProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls.Reset()
	p.order = nil
	p.seen = make(map[string]bool)
}

// Registry exposes the profiler's metrics, e.g. for a push or an HTTP
// handler.
func (p *CallProfiler) Registry() *prometheus.Registry {
	return p.reg
}

// Result returns one record per probe name in first-probed order.
func (p *CallProfiler) Result() ([]Record, error) {
	families, err := p.reg.Gather()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Record)
	for _, mf := range families {
		if mf.GetName() != metricName {
			continue
		}
		for _, m := range mf.GetMetric() {
			var name string
			for _, l := range m.GetLabel() {
				if l.GetName() == "name" {
					name = l.GetValue()
				}
			}
			h := m.GetHistogram()
			byName[name] = Record{
				Name:  name,
				Count: h.GetSampleCount(),
				Total: time.Duration(h.GetSampleSum() * float64(time.Second)),
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Record, 0, len(p.order))
	for _, name := range p.order {
		if r, ok := byName[name]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}
