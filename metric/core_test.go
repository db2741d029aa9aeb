package metric

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func family(t *testing.T, r *MetricsRegistry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.PrometheusRegistry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric family %s not gathered", name)
	return nil
}

func labels(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func TestCoreMetrics_WriteDuration(t *testing.T) {
	r := NewMetricsRegistry()
	core := r.CoreMetrics()

	core.RecordWriteDuration("tail", 3*time.Microsecond)
	core.RecordWriteDuration("tail", 5*time.Microsecond)

	f := family(t, r, "ringbuf_ingest_write_duration_seconds")
	assert.Equal(t, dto.MetricType_HISTOGRAM, f.GetType())
	require.Len(t, f.GetMetric(), 1)

	m := f.GetMetric()[0]
	assert.Equal(t, map[string]string{"ring": "tail"}, labels(m))
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
	assert.InDelta(t, 8e-6, m.GetHistogram().GetSampleSum(), 1e-9)
}

func TestCoreMetrics_IngestErrorsByClass(t *testing.T) {
	r := NewMetricsRegistry()
	core := r.CoreMetrics()

	core.RecordIngestError("stdin", "invalid")
	core.RecordIngestError("stdin", "invalid")
	core.RecordIngestError("stdin", "transient")

	f := family(t, r, "ringbuf_ingest_errors_total")
	assert.Equal(t, dto.MetricType_COUNTER, f.GetType())

	got := make(map[string]float64)
	for _, m := range f.GetMetric() {
		l := labels(m)
		assert.Equal(t, "stdin", l["source"])
		got[l["class"]] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"invalid": 2, "transient": 1}, got)
}
