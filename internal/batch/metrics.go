package batch

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "xbpgh"

// Metrics counts batch outcomes on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Records *prometheus.CounterVec
	Waste   prometheus.Histogram
	Frames  prometheus.Histogram
}

// NewMetrics creates the batch collectors and registers them on a fresh
// registry, so several validators never collide.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "batch",
				Name:      "records_total",
				Help:      "Save records processed, by outcome",
			},
			[]string{"status"},
		),
		Waste: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "batch",
				Name:      "waste_cells",
				Help:      "Cells that died during a simulated solution",
				Buckets:   prometheus.LinearBuckets(0, 2, 10),
			},
		),
		Frames: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "batch",
				Name:      "frames",
				Help:      "States in which a simulated solution changed the board",
				Buckets:   prometheus.LinearBuckets(1, 1, 12),
			},
		),
	}
	m.registry.MustRegister(m.Records, m.Waste, m.Frames)
	return m
}

// Registry exposes the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every collector in the text exposition format, for
// pickup by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observe(o Outcome) {
	if m == nil {
		return
	}
	m.Records.WithLabelValues(string(o.Status)).Inc()
	if o.Result != nil {
		m.Waste.Observe(float64(o.Result.Metrics.NumWaste))
		m.Frames.Observe(float64(o.Result.Metrics.NumFrames))
	}
}
