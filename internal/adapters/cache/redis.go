// Package cache keeps built rating tables in Redis so that repeated
// requests over the same ratings snapshot skip the rebuild.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/okian/edgefinder/internal/domain/model"
	"github.com/okian/edgefinder/internal/domain/rating"
)

const defaultPrefix = "edgefinder:ratings:"

// RatingCache stores ranked rating entries as JSON values with a TTL.
type RatingCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// Option configures a RatingCache.
type Option func(*RatingCache)

// WithTTL sets the entry lifetime. Zero keeps entries until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(c *RatingCache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *RatingCache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// NewRatingCache wraps a Redis client.
func NewRatingCache(client redis.Cmdable, opts ...Option) *RatingCache {
	c := &RatingCache{client: client, ttl: 5 * time.Minute, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entries stored under key. A missing key is a miss, not an error.
func (c *RatingCache) Get(ctx context.Context, key string) ([]rating.Entry, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache.Get %s: %w", key, err)
	}
	var entries []rating.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("cache.Get %s: decode: %w", key, err)
	}
	return entries, true, nil
}

// Set stores entries under key.
func (c *RatingCache) Set(ctx context.Context, key string, entries []rating.Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cache.Set %s: encode: %w", key, err)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.Set %s: %w", key, err)
	}
	return nil
}

// Key fingerprints rating rows; any change to a row yields a new key.
func Key(rows []model.RatingRow) string {
	h := xxhash.New()
	for _, r := range rows {
		for _, f := range []string{r.Team, r.Rating, r.Wins, r.Losses, r.Games} {
			_, _ = h.WriteString(f)
			_, _ = h.WriteString("\x1f")
		}
		_, _ = h.WriteString("\x1e")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
