package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateRequestsTotal  prometheus.Counter
	TableRequestsTotal prometheus.Counter

	PageFetchesTotal  *prometheus.CounterVec
	PageFetchDuration prometheus.Histogram
	CacheLookupsTotal *prometheus.CounterVec
	ExtractionsTotal  *prometheus.CounterVec
	ProxyChecksTotal  *prometheus.CounterVec
}

// NewMetrics registers all collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RateRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_requests_total",
				Help: "Total number of single rate requests",
			},
		),

		TableRequestsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "table_requests_total",
				Help: "Total number of rate table requests",
			},
		),

		PageFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "page_fetches_total",
				Help: "Converter page fetches that reached the network, by outcome",
			},
			[]string{"outcome"},
		),

		PageFetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "page_fetch_duration_seconds",
				Help:    "Converter page fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Response cache lookups, by result",
			},
			[]string{"result"},
		),

		ExtractionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_extractions_total",
				Help: "Rate extractions from fetched pages, by result",
			},
			[]string{"result"},
		),

		ProxyChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "proxy_checks_total",
				Help: "Proxy reachability checks, by result",
			},
			[]string{"result"},
		),
	}
}

// The helpers below accept a nil receiver so components can run without
// metrics wired in.

func (m *Metrics) ObserveFetch(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.PageFetchesTotal.WithLabelValues(outcome).Inc()
	m.PageFetchDuration.Observe(seconds)
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) Extraction(found bool) {
	if m == nil {
		return
	}
	result := "absent"
	if found {
		result = "found"
	}
	m.ExtractionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ProxyCheck(ok bool) {
	if m == nil {
		return
	}
	result := "failed"
	if ok {
		result = "ok"
	}
	m.ProxyChecksTotal.WithLabelValues(result).Inc()
}
