package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingsCache keeps per-book rating aggregates in redis so the detail page
// and index don't recompute the average on every hit. The cache is advisory:
// a nil *RatingsCache (redis not configured) degrades to a no-op and every
// read falls through to the database.
type RatingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type bookAverage struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// NewRatingsCache connects to redis using a redis:// URL. An empty URL
// returns a nil cache, which every method treats as no-op.
func NewRatingsCache(redisURL string, ttl time.Duration) (*RatingsCache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RatingsCache{client: rdb, ttl: ttl}, nil
}

func averageKey(bookID string) string {
	return fmt.Sprintf("book:%s:avg_rating", bookID)
}

// GetAverage returns the cached aggregate for a book, reporting a miss when
// the cache is disabled or the key is absent.
func (c *RatingsCache) GetAverage(ctx context.Context, bookID string) (float64, int64, bool) {
	if c == nil || c.client == nil {
		return 0, 0, false
	}

	raw, err := c.client.Get(ctx, averageKey(bookID)).Result()
	if err != nil {
		return 0, 0, false
	}

	var entry bookAverage
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return 0, 0, false
	}
	return entry.Average, entry.Count, true
}

func (c *RatingsCache) SetAverage(ctx context.Context, bookID string, average float64, count int64) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(bookAverage{Average: average, Count: count})
	if err != nil {
		return
	}
	// best effort; a failed SET just means the next read recomputes
	c.client.Set(ctx, averageKey(bookID), raw, c.ttl)
}

// InvalidateAverage drops a book's cached aggregate after a rating write.
func (c *RatingsCache) InvalidateAverage(ctx context.Context, bookID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, averageKey(bookID))
}

func (c *RatingsCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
