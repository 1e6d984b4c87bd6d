package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Harsh-BH/jobtracker/internal/repository"
)

var _ repository.WindowCounter = (*WindowCounter)(nil)

const keyPrefix = "jobtracker:ratelimit:"

// WindowCounter is a fixed-window counter shared by every replica through Redis.
type WindowCounter struct {
	client *goredis.Client
}

// NewWindowCounter wraps an existing Redis client.
func NewWindowCounter(client *goredis.Client) *WindowCounter {
	return &WindowCounter{client: client}
}

// NewClient parses a redis:// URL and verifies the server is reachable.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (w *WindowCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	bucket := time.Now().UnixNano() / int64(window)
	k := fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)

	pipe := w.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis: incr window: %w", err)
	}
	return incr.Val(), nil
}
