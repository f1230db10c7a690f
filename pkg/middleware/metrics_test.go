package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findMetric gathers reg and returns the sample of family name whose labels
// include all of labels.
func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			got := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			match := true
			for k, v := range labels {
				if got[k] != v {
					match = false
					break
				}
			}
			if match {
				return m
			}
		}
	}
	return nil
}

func metricsRouter(reg *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()
	r.Use(NewHTTPMetrics(reg, "brand-service").Middleware)
	r.Get("/api/brands/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "99" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	return r
}

func TestHTTPMetrics_CountsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metricsRouter(reg)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/brands/"+id, nil))
	}

	m := findMetric(t, reg, "http_requests_total", map[string]string{
		"service": "brand-service", "method": "GET", "path": "/api/brands/{id}", "status": "200",
	})
	require.NotNil(t, m)
	assert.Equal(t, float64(3), m.GetCounter().GetValue())
}

func TestHTTPMetrics_CapturesStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metricsRouter(reg).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/brands/99", nil))

	m := findMetric(t, reg, "http_requests_total", map[string]string{"status": "404"})
	require.NotNil(t, m)
	assert.Equal(t, float64(1), m.GetCounter().GetValue())

	h := findMetric(t, reg, "http_request_duration_seconds", map[string]string{"status": "404"})
	require.NotNil(t, h)
	assert.Equal(t, uint64(1), h.GetHistogram().GetSampleCount())
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	metricsRouter(reg).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	m := findMetric(t, reg, "http_requests_total", map[string]string{"status": "404"})
	require.NotNil(t, m)
}

func TestHTTPMetrics_InFlightReturnsToZero(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg, "brand-service")

	var during float64
	handler := metrics.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		during = findMetric(t, reg, "http_requests_in_flight", nil).GetGauge().GetValue()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, float64(1), during)
	assert.Equal(t, float64(0), findMetric(t, reg, "http_requests_in_flight", nil).GetGauge().GetValue())
}

func TestNewHTTPMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewHTTPMetrics(reg, "brand-service")
	assert.Panics(t, func() { NewHTTPMetrics(reg, "brand-service") })
}
