package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the simulation instruments. A nil *Metrics records nothing.
type Metrics struct {
	tickDuration   prometheus.Histogram
	cliqueDuration prometheus.Histogram
	cliqueSize     prometheus.Gauge
	vertices       prometheus.Gauge
	arcs           prometheus.Gauge
	energy         prometheus.Gauge
	arcsCreated    prometheus.Counter
}

// NewMetrics registers the simulation metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "forcegraph_tick_duration_seconds",
			Help:    "Time to consume input and advance the layout by one tick",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.004, 0.016, 0.05},
		}),
		cliqueDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "forcegraph_clique_duration_seconds",
			Help:    "Time to run the greedy clique search",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		cliqueSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "forcegraph_clique_size",
			Help: "Size of the last clique found",
		}),
		vertices: f.NewGauge(prometheus.GaugeOpts{
			Name: "forcegraph_vertices",
			Help: "Number of vertices in the graph",
		}),
		arcs: f.NewGauge(prometheus.GaugeOpts{
			Name: "forcegraph_arcs",
			Help: "Number of recorded arcs, duplicates included",
		}),
		energy: f.NewGauge(prometheus.GaugeOpts{
			Name: "forcegraph_energy",
			Help: "Summed vertex speed after the last tick",
		}),
		arcsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "forcegraph_arcs_created_total",
			Help: "Arcs created since start",
		}),
	}
}

func (m *Metrics) observeTick(seconds float64, vertices, arcs int, energy float64) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(seconds)
	m.vertices.Set(float64(vertices))
	m.arcs.Set(float64(arcs))
	m.energy.Set(energy)
}

func (m *Metrics) observeClique(seconds float64, size int) {
	if m == nil {
		return
	}
	m.cliqueDuration.Observe(seconds)
	m.cliqueSize.Set(float64(size))
}

func (m *Metrics) arcCreated() {
	if m == nil {
		return
	}
	m.arcsCreated.Inc()
}
