package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint", "status"},
	)

	BackendCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "backend_calls_total",
			Help:      "Total AI backend calls",
		},
		[]string{"operation", "status"},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "cache_hits_total",
			Help:      "Total cache gate hits",
		},
		[]string{"cache"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "cache_misses_total",
			Help:      "Total cache gate misses",
		},
		[]string{"cache"},
	)

	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	SharedLinkResolvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legalai",
			Subsystem: "gateway",
			Name:      "shared_link_resolves_total",
			Help:      "Total public share resolutions",
		},
		[]string{"outcome"},
	)
)

// NormalizeEndpoint collapses path parameters so metric cardinality stays
// bounded. Gin's FullPath already carries :param placeholders; raw paths
// from unmatched routes are bucketed together.
func NormalizeEndpoint(fullPath, rawPath string) string {
	if fullPath != "" {
		return fullPath
	}
	if strings.HasPrefix(rawPath, "/api/") {
		return "unmatched_api"
	}
	return "unmatched"
}
