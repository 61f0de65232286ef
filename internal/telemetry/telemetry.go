// Package telemetry exports client-side request metrics for the CMS and
// platform SDKs to Prometheus.
package telemetry

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/cmsadmin/pkg/apiclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricRequestsTotal          = "cmsadmin_client_requests_total"
	MetricRequestDurationSeconds = "cmsadmin_client_request_duration_seconds"
	MetricTokenRefreshTotal      = "cmsadmin_client_token_refresh_total"
)

// Observer implements apiclient.Observer. It owns its registry so tests and
// multiple servers in one process never collide on the default one.
type Observer struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	refresh  *prometheus.CounterVec
}

var _ apiclient.Observer = (*Observer)(nil)

// New creates an Observer with Go runtime and process collectors attached.
func New() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricRequestsTotal,
				Help: "Total number of API requests made by the admin clients.",
			},
			[]string{"api", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricRequestDurationSeconds,
				Help:    "API request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api", "method"},
		),
		refresh: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricTokenRefreshTotal,
				Help: "Token refresh attempts by outcome.",
			},
			[]string{"outcome"},
		),
	}

	o.registry.MustRegister(
		o.requests,
		o.duration,
		o.refresh,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return o
}

// ObserveRequest records one completed request. status 0 means the request
// never got a response.
func (o *Observer) ObserveRequest(api, method string, status int, elapsedSeconds float64) {
	o.requests.WithLabelValues(api, method, statusLabel(status)).Inc()
	o.duration.WithLabelValues(api, method).Observe(elapsedSeconds)
}

// ObserveRefresh counts a refresh outcome. The api label is dropped since
// both clients share one session.
func (o *Observer) ObserveRefresh(_ string, outcome string) {
	o.refresh.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry.
func (o *Observer) Registry() *prometheus.Registry { return o.registry }

// Handler serves the registry in the Prometheus text format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
