package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"

	"github.com/harentsoaR/doctor-registration/internal/monitoring"
)

func requestCount(t *testing.T, method, path, status string) float64 {
	t.Helper()
	var m dto.Metric
	if err := monitoring.RequestsTotal.WithLabelValues(method, path, status).Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestPrometheusMetricsLabelsByRoute(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMetrics())
	r.GET("/api/doctors/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := requestCount(t, http.MethodGet, "/api/doctors/:id", "OK")
	unmatchedBefore := requestCount(t, http.MethodGet, "unmatched", "Not Found")

	for _, path := range []string{"/api/doctors/1", "/api/doctors/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := requestCount(t, http.MethodGet, "/api/doctors/:id", "OK") - before; got != 2 {
		t.Errorf("route count delta = %v, want 2", got)
	}
	if got := requestCount(t, http.MethodGet, "unmatched", "Not Found") - unmatchedBefore; got != 1 {
		t.Errorf("unmatched count delta = %v, want 1", got)
	}
}
