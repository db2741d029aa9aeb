package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Monitor)
		wantCode int
		want     string
	}{
		{"healthy", func(m *Monitor) { m.UpdateHealthy("a", "") }, http.StatusOK, StateHealthy},
		{"degraded", func(m *Monitor) { m.UpdateDegraded("a", "") }, http.StatusOK, StateDegraded},
		{"unhealthy", func(m *Monitor) { m.UpdateUnhealthy("a", "") }, http.StatusServiceUnavailable, StateUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor()
			tt.setup(m)

			rec := httptest.NewRecorder()
			Handler(m, "ringtail").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got Status
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "ringtail", got.Component)
			assert.Equal(t, tt.want, got.Status)
			require.Len(t, got.SubStatuses, 1)
			assert.Equal(t, "a", got.SubStatuses[0].Component)
		})
	}
}
