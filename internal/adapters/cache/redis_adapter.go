package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JhoJha/Viajes-Economicos-Chaskiway/internal/domain/providers"
	apperrors "github.com/JhoJha/Viajes-Economicos-Chaskiway/pkg/errors"
)

// RedisAdapter implements CacheProvider using Redis
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redis.Client) providers.CacheProvider {
	return &RedisAdapter{client: client}
}

// Get retrieves a value from Redis
func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewNotFoundError("cache key not found")
		}
		return nil, apperrors.NewExternalError("failed to get value from cache", err)
	}
	return val, nil
}

// Set stores a value in Redis with expiration
func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	expiration := time.Duration(expirationSeconds) * time.Second
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return apperrors.NewExternalError("failed to set value in cache", err)
	}
	return nil
}

// Delete removes a value from Redis
func (r *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return apperrors.NewExternalError("failed to delete value from cache", err)
	}
	return nil
}

// DeletePattern removes all keys matching a glob pattern
func (r *RedisAdapter) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return apperrors.NewExternalError("failed to scan cache keys", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.NewExternalError("failed to delete cache keys", err)
	}
	return nil
}
