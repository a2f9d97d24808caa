package cache

import (
	"context"
	"time"

	"inkwell/internal/observability"
)

// The feed page cache stores whole rendered feed results keyed by route plus
// raw query string. Entries expire lazily via the Redis TTL; nothing
// invalidates them on write, so readers may observe a bounded staleness
// window until expiry. Clear exists for explicit invalidation.

const feedKeyPrefix = "feedpage:"

// PageKey builds the cache key for a feed page from the route path and the
// raw query string.
func PageKey(path, rawQuery string) string {
	if rawQuery == "" {
		return feedKeyPrefix + path
	}
	return feedKeyPrefix + path + "?" + rawQuery
}

// GetPage looks up a cached feed page into dest, recording hit/miss metrics.
func GetPage(ctx context.Context, path, rawQuery string, dest any) bool {
	found, err := GetJSON(ctx, PageKey(path, rawQuery), dest)
	if err != nil || !found {
		observability.FeedCacheMisses.WithLabelValues(path).Inc()
		return false
	}
	observability.FeedCacheHits.WithLabelValues(path).Inc()
	return true
}

// SetPage stores a feed page with the given TTL. Best-effort: storage errors
// are dropped so a broken cache never fails the request.
func SetPage(ctx context.Context, path, rawQuery string, v any, ttl time.Duration) {
	_ = SetJSON(ctx, PageKey(path, rawQuery), v, ttl)
}

// ClearPages removes every cached feed page.
func ClearPages(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, feedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
