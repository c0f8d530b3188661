// Package ratelimit builds the login throttle. Counters live in Redis when a URL
// is configured so several API replicas share one budget, and in memory otherwise.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const keyPrefix = "dayflow:ratelimit"

// Limiter wraps a ulule limiter together with the resources it owns.
type Limiter struct {
	*limiter.Limiter
	Backend string
	client  *redis.Client
}

// New parses rate ("10-M", "100-H") and picks the store. A Redis that cannot be
// reached falls back to memory with a warning.
func New(ctx context.Context, redisURL, rate string) (*Limiter, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	if redisURL != "" {
		client, store, err := redisStore(ctx, redisURL)
		if err == nil {
			return &Limiter{Limiter: limiter.New(store, parsed), Backend: "redis", client: client}, nil
		}
		slog.Warn("Failed to create Redis store for rate limiting, falling back to memory", "error", err)
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          keyPrefix,
		CleanUpInterval: time.Minute,
	})
	return &Limiter{Limiter: limiter.New(store, parsed), Backend: "memory"}, nil
}

func redisStore(ctx context.Context, redisURL string) (*redis.Client, limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   keyPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create redis store: %w", err)
	}
	return client, store, nil
}

// Close releases the Redis connection, if any.
func (l *Limiter) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}
