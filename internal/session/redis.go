package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/osamaqaseem39/stationary-gbs/pkg/errors"
)

const redisKeyPrefix = "storefront:session:"

// RedisPort implements Port using Redis with a per-entry TTL.
type RedisPort struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPort creates a Redis-backed session port.
func NewRedisPort(client *redis.Client, ttl time.Duration) *RedisPort {
	return &RedisPort{
		client: client,
		ttl:    ttl,
	}
}

// Load retrieves the stored bytes for key from Redis.
func (p *RedisPort) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("session", key)
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return data, nil
}

// Save stores data under key with the configured TTL.
func (p *RedisPort) Save(ctx context.Context, key string, data []byte) error {
	if err := p.client.Set(ctx, redisKeyPrefix+key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Clear removes the entry for key.
func (p *RedisPort) Clear(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
