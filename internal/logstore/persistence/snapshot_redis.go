package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is used when no key is configured.
const DefaultRedisKey = "logvault:snapshot"

// RedisSnapshotter stores the encoded image under one key with no expiry.
// SET replaces the value atomically.
type RedisSnapshotter struct {
	client redis.UniversalClient
	key    string
}

func NewRedis(client redis.UniversalClient, key string) *RedisSnapshotter {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSnapshotter{client: client, key: key}
}

func (r *RedisSnapshotter) Save(ctx context.Context, img *Image) error {
	data, err := Encode(img)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (r *RedisSnapshotter) Load(ctx context.Context) (*Image, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}
	return Decode(data)
}

// Quarantine renames the key to <key>:corrupt-<timestamp>.
func (r *RedisSnapshotter) Quarantine(ctx context.Context, at time.Time) (string, error) {
	dst := r.key + ":" + quarantineSuffix(at)
	if err := r.client.Rename(ctx, r.key, dst).Err(); err != nil {
		return "", fmt.Errorf("redis rename snapshot: %w", err)
	}
	return dst, nil
}

// Close is a no-op; the client is owned by the caller.
func (r *RedisSnapshotter) Close() error {
	return nil
}
