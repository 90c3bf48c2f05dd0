// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 地理编码结果标签
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport_error"
	OutcomeParse     = "parse_error"
)

var (
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depotquote",
		Name:      "geocode_requests_total",
		Help:      "Outbound address lookups by outcome.",
	}, []string{"outcome"})

	GeocodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "depotquote",
		Name:      "geocode_duration_seconds",
		Help:      "Latency of outbound address lookups.",
		Buckets:   prometheus.DefBuckets,
	})

	GeocodeCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depotquote",
		Name:      "geocode_cache_total",
		Help:      "Geocode cache lookups by result.",
	}, []string{"result"})

	QuotesProduced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depotquote",
		Name:      "quotes_produced_total",
		Help:      "Quotes returned to callers by depot.",
	}, []string{"depot"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depotquote",
		Name:      "submissions_total",
		Help:      "Quote submissions by result.",
	}, []string{"result"})
)
