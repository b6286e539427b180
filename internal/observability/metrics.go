// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// PostListingRequests counts listing queries by filter shape, which is
	// the hot path of the API.
	PostListingRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_post_listing_requests_total",
		Help: "Total post listing queries by active filter combination",
	}, []string{"category", "keyword", "status"})

	// LikeToggles counts like toggle outcomes.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_like_toggles_total",
		Help: "Total like toggles by resulting state",
	}, []string{"result"})
)

// BoolLabel renders a boolean as a metric label value.
func BoolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
