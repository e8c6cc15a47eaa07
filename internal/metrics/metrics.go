// Package metrics exposes Prometheus counters for the API surface and
// the fault gateway.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API requests by method and response status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsbox_http_requests_total",
		Help: "API requests served, by method and status code.",
	}, []string{"method", "status"})

	// FaultsInjectedTotal counts gateway fault decisions by kind.
	FaultsInjectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsbox_faults_injected_total",
		Help: "Faults injected by the request gateway, by kind.",
	}, []string{"kind"})
)

// Fault kinds recorded by the gateway.
const (
	FaultRateLimit = "rate_limit"
	FaultError     = "error"
	FaultLatency   = "latency"
)

// ObserveRequest records one served API request.
func ObserveRequest(method string, status int) {
	RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// ObserveFault records one gateway fault decision.
func ObserveFault(kind string) {
	FaultsInjectedTotal.WithLabelValues(kind).Inc()
}
