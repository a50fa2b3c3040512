package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	RelayOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "doctor_relay_outcomes_total",
			Help: "Relay calls to the upstream doctors API by outcome",
		},
		[]string{"method", "outcome"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "doctor_relay_upstream_duration_seconds",
			Help:    "Time spent waiting on the upstream doctors API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registration_validation_failures_total",
			Help: "Wizard validation failures by step",
		},
		[]string{"step"},
	)
)

// Init registers the collectors on the default registry. Call it once.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RelayOutcomes)
	prometheus.MustRegister(UpstreamDuration)
	prometheus.MustRegister(ValidationFailures)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
