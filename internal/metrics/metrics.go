package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lucopay",
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route, method and status class",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lucopay",
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"route", "method"},
	)

	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lucopay",
			Name:      "upstream_calls_total",
			Help:      "Calls to the identity and payment providers by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	KeepAlivePingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lucopay",
			Name:      "keepalive_pings_total",
			Help:      "Keep-alive self pings by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, UpstreamCallsTotal, KeepAlivePingsTotal)
}

func IncRequest(route, method, status string) {
	HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
}

func ObserveDuration(route, method string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

func IncUpstream(op, outcome string) {
	UpstreamCallsTotal.WithLabelValues(op, outcome).Inc()
}

func IncKeepAlive(result string) {
	KeepAlivePingsTotal.WithLabelValues(result).Inc()
}
