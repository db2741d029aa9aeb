package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ringbuf"

// Metrics are the process-level series of a tail process. Per-buffer
// counters live with each buffer (see pkg/buffer WithMetrics).
type Metrics struct {
	// Ingest
	RecordsIngested *prometheus.CounterVec
	IngestErrors    *prometheus.CounterVec
	IngestLatency   *prometheus.HistogramVec

	// Rings
	RecordsEvicted *prometheus.CounterVec
	RingOccupancy  *prometheus.GaugeVec
	RingCapacity   *prometheus.GaugeVec

	// NATS
	NATSConnected  prometheus.Gauge
	NATSReconnects prometheus.Counter
}

// NewMetrics creates an unregistered Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RecordsIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "records_total",
				Help:      "Total number of records read from a source",
			},
			[]string{"source"},
		),

		IngestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "errors_total",
				Help:      "Total number of source read errors by class",
			},
			[]string{"source", "class"},
		),

		IngestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "write_duration_seconds",
				Help:      "Time to store one record in its ring",
				Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"ring"},
		),

		RecordsEvicted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ring",
				Name:      "evicted_total",
				Help:      "Total number of records evicted from a full ring",
			},
			[]string{"ring"},
		),

		RingOccupancy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ring",
				Name:      "occupancy",
				Help:      "Current number of records held by a ring",
			},
			[]string{"ring"},
		),

		RingCapacity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ring",
				Name:      "capacity",
				Help:      "Maximum number of records a ring holds",
			},
			[]string{"ring"},
		),

		NATSConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "nats",
				Name:      "connected",
				Help:      "NATS connection status (0=disconnected, 1=connected)",
			},
		),

		NATSReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "nats",
				Name:      "reconnects_total",
				Help:      "Total number of NATS reconnections",
			},
		),
	}
}

func (c *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.RecordsIngested,
		c.IngestErrors,
		c.IngestLatency,
		c.RecordsEvicted,
		c.RingOccupancy,
		c.RingCapacity,
		c.NATSConnected,
		c.NATSReconnects,
	}
}

// RecordIngested counts one record read from source.
func (c *Metrics) RecordIngested(source string) {
	c.RecordsIngested.WithLabelValues(source).Inc()
}

// RecordIngestError counts a failed read from source.
func (c *Metrics) RecordIngestError(source, class string) {
	c.IngestErrors.WithLabelValues(source, class).Inc()
}

// RecordWriteDuration observes how long storing a record took.
func (c *Metrics) RecordWriteDuration(ring string, d time.Duration) {
	c.IngestLatency.WithLabelValues(ring).Observe(d.Seconds())
}

// RecordEvicted counts a record pushed out of ring by a newer one.
func (c *Metrics) RecordEvicted(ring string) {
	c.RecordsEvicted.WithLabelValues(ring).Inc()
}

// RecordRingState publishes the occupancy and capacity of ring.
func (c *Metrics) RecordRingState(ring string, size, capacity int) {
	c.RingOccupancy.WithLabelValues(ring).Set(float64(size))
	c.RingCapacity.WithLabelValues(ring).Set(float64(capacity))
}

// RecordNATSStatus updates NATS connection status
func (c *Metrics) RecordNATSStatus(connected bool) {
	value := 0.0
	if connected {
		value = 1.0
	}
	c.NATSConnected.Set(value)
}

// RecordNATSReconnect increments reconnection counter
func (c *Metrics) RecordNATSReconnect() {
	c.NATSReconnects.Inc()
}
