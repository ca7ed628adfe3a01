package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moroapp/moro/internal/domain/port"
)

// Compile-time interface check.
var _ port.CallbackRegistry = (*RedisCallbackRegistry)(nil)

// RedisCallbackRegistry implements port.CallbackRegistry using Redis SET NX.
// The key expires after ttl, which bounds the window in which the payment
// gateway may retry a webhook delivery.
type RedisCallbackRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCallbackRegistry creates a Redis-backed callback registry.
func NewRedisCallbackRegistry(client *redis.Client, ttl time.Duration) *RedisCallbackRegistry {
	return &RedisCallbackRegistry{client: client, ttl: ttl}
}

// MarkProcessed records the callback id, reporting true on first delivery
// and false when the id was already seen.
func (r *RedisCallbackRegistry) MarkProcessed(ctx context.Context, callbackID string) (bool, error) {
	key := "moro:callback:" + callbackID
	first, err := r.client.SetNX(ctx, key, "1", r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark callback processed: %w", err)
	}
	return first, nil
}

// Release forgets a callback id, allowing a redelivery to be processed.
func (r *RedisCallbackRegistry) Release(ctx context.Context, callbackID string) error {
	if err := r.client.Del(ctx, "moro:callback:"+callbackID).Err(); err != nil {
		return fmt.Errorf("release callback: %w", err)
	}
	return nil
}
