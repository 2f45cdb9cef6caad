package buffer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// allocationsTotal counts buffers created, by ownership mode.
	allocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modmesh_buffer_allocations_total",
		Help: "Total buffers created by ownership mode",
	}, []string{"mode"})

	// releasesTotal counts buffers whose last reference was dropped.
	releasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modmesh_buffer_releases_total",
		Help: "Total buffers finalized by ownership mode",
	}, []string{"mode"})

	// liveBytes tracks bytes referenced by live buffers.
	liveBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "modmesh_buffer_live_bytes",
		Help: "Bytes held by buffers that have not been finalized",
	}, []string{"mode"})

	// resizesTotal counts expander reallocations.
	resizesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modmesh_buffer_resizes_total",
		Help: "Total expander reallocations",
	})
)

func trackAlloc(m Mode, n int) {
	allocationsTotal.WithLabelValues(m.String()).Inc()
	liveBytes.WithLabelValues(m.String()).Add(float64(n))
}

func trackRelease(m Mode, n int) {
	releasesTotal.WithLabelValues(m.String()).Inc()
	liveBytes.WithLabelValues(m.String()).Sub(float64(n))
}
