// Package storage provides an optional Redis cache for AutoPick.
package storage

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps go-redis. When no REDIS_URL is configured the client is
// disabled and every operation is a cheap no-op, so callers never need to
// branch on availability.
type RedisClient struct {
	client  *redis.Client
	prefix  string
	enabled bool
	ctx     context.Context
}

// NewRedisClient creates a new Redis client. An empty URL yields a disabled
// client.
func NewRedisClient(redisURL, prefix string) *RedisClient {
	if redisURL == "" {
		log.Println("Redis not configured (REDIS_URL missing), caching in memory only")
		return &RedisClient{prefix: prefix, enabled: false, ctx: context.Background()}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse REDIS_URL: %v", err)
		return &RedisClient{prefix: prefix, enabled: false, ctx: context.Background()}
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
		return &RedisClient{prefix: prefix, enabled: false, ctx: ctx}
	}

	log.Println("Redis connected successfully")
	return &RedisClient{
		client:  client,
		prefix:  prefix,
		enabled: true,
		ctx:     ctx,
	}
}

// Get retrieves a cached value. A miss returns "" with no error.
func (r *RedisClient) Get(key string) (string, error) {
	if !r.enabled {
		return "", nil
	}
	val, err := r.client.Get(r.ctx, r.prefix+":"+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// Set stores a value with a TTL. Zero TTL means no expiration.
func (r *RedisClient) Set(key, value string, ttl time.Duration) error {
	if !r.enabled {
		return nil
	}
	return r.client.Set(r.ctx, r.prefix+":"+key, value, ttl).Err()
}

// Delete removes a key.
func (r *RedisClient) Delete(key string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Del(r.ctx, r.prefix+":"+key).Err()
}
