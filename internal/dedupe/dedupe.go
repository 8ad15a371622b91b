// Package dedupe skips candidate documents that an earlier run has already
// scored. Mining pipelines re-crawl the same hosts; remembering seen URLs
// in Redis keeps repeated runs from re-reporting the same pairs.
package dedupe

import (
	"context"
	"log/slog"
	"time"

	"github.com/bitextools/docalign/pkg/redis"
)

const keyPrefix = "docalign:seen:"

// Filter remembers candidate URLs in Redis with a TTL.
type Filter struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewFilter(client *redis.Client, ttl time.Duration) *Filter {
	return &Filter{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "dedupe"),
	}
}

// Seen marks url as seen and reports whether it had been seen before.
// Redis errors are logged and treated as unseen: scoring a candidate twice
// is preferable to dropping it.
func (f *Filter) Seen(ctx context.Context, url string) bool {
	set, err := f.client.SetNX(ctx, keyPrefix+url, 1, f.ttl)
	if err != nil {
		f.logger.Warn("dedupe check failed, scoring anyway", "url", url, "error", err)
		return false
	}
	return !set
}
