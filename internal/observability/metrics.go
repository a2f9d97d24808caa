// Package observability provides prometheus metrics and tracing setup.
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

	// FeedCacheHits counts whole-page feed cache hits by route.
	FeedCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_hits_total",
		Help: "Total number of feed page cache hits",
	}, []string{"route"})

	// FeedCacheMisses counts whole-page feed cache misses by route.
	FeedCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_misses_total",
		Help: "Total number of feed page cache misses",
	}, []string{"route"})

	// PostsCreated counts successfully persisted posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts successfully persisted comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_created_total",
		Help: "Total number of comments created",
	})
)
