package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
)

// RedisOptions configures [NewRedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache stores entries in Redis, using native key expiry for TTLs.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying with backoff while the server is unreachable.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	c := NewRedisCacheFromClient(client)
	err := RetryWithBackoff(ctx, func() error {
		return c.Ping(ctx)
	})
	if err != nil {
		_ = client.Close()
		return nil, herrors.Wrap(herrors.ErrCodeNetwork, err, "connect redis at %s", opts.Addr)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. Close closes it.
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Ping checks that the server answers. Failures are retryable.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return Retryable(backendErr(err, "ping"))
	}
	return nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, backendErr(err, "get %s", key)
	}
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl stores the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return backendErr(err, "set %s", key)
	}
	return nil
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return backendErr(err, "delete %s", key)
	}
	return nil
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func backendErr(err error, format string, args ...any) error {
	return herrors.Wrap(herrors.ErrCodeNetwork, errors.Join(ErrBackend, err), format, args...)
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
