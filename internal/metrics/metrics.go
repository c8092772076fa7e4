// Package metrics exposes Prometheus collectors for the incident desk.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "incident_desk"

// analysis 결과 label 값
const (
	AnalysisCacheHit    = "cache_hit"
	AnalysisComputed    = "computed"
	AnalysisNotCached   = "not_cached"
	AnalysisFailed      = "failed"
	AnalysisUnavailable = "unconfigured"
)

var (
	AnalysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_requests_total",
		Help:      "Incident analysis requests by outcome.",
	}, []string{"result"})

	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "completion_duration_seconds",
		Help:      "Latency of completion API calls.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"provider", "outcome"})

	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected by the fixed window limiter.",
	}, []string{"route"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Assignment notifications by channel and outcome.",
	}, []string{"channel", "outcome"})
)

// Handler - /metrics 엔드포인트
func Handler() http.Handler {
	return promhttp.Handler()
}
