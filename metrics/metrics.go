// Package metrics exposes Prometheus collectors for the extraction service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	extractionsTotal       *prometheus.CounterVec
	fetchDurationSeconds   *prometheus.HistogramVec
	fieldsTotal            *prometheus.CounterVec
	httpRequestsTotal      *prometheus.CounterVec
	httpDurationSeconds    *prometheus.HistogramVec
	shortLinkResolvedTotal prometheus.Counter

	once sync.Once
)

// Init registers the collectors. It is safe to call multiple times; every
// Observe function calls it.
func Init() {
	once.Do(func() {
		extractionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aliadapter_extractions_total",
				Help: "Extraction requests by outcome (ok or the error kind).",
			},
			[]string{"outcome"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aliadapter_fetch_duration_seconds",
				Help:    "Outbound request latency, labeled by stage (resolve or page).",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"stage"},
		)

		fieldsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aliadapter_fields_total",
				Help: "Extracted fields, labeled by field and whether a value was found.",
			},
			[]string{"field", "found"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route and code.",
			},
			[]string{"method", "route", "code"},
		)

		httpDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "route"},
		)

		shortLinkResolvedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "aliadapter_short_links_resolved_total",
				Help: "Short links resolved to a product URL.",
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// ObserveExtraction counts a finished extraction. outcome is "ok" or an
// error kind.
func ObserveExtraction(outcome string) {
	Init()
	extractionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch records the latency of one outbound request.
func ObserveFetch(stage string, d time.Duration) {
	Init()
	fetchDurationSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveField counts a field hit or miss.
func ObserveField(field string, found bool) {
	Init()
	fieldsTotal.WithLabelValues(field, strconv.FormatBool(found)).Inc()
}

// ObserveShortLink counts a resolved short link.
func ObserveShortLink() {
	Init()
	shortLinkResolvedTotal.Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, d time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}
