package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.AppointmentWritten("create")
	m.AppointmentWritten("create")
	m.Reassignment("assigned")
	m.ObserveHTTP("POST", "/api/appointments", "201", 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.appointments.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reassigned.WithLabelValues("assigned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/appointments", "201")))
}

func TestHandler_Exposes(t *testing.T) {
	m := New()
	m.Reassignment("expired")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `reassignments_total{outcome="expired"} 1`)
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
