// Package cache is a small key/value port backed by Redis. The orders
// service uses it to remember which order an idempotency key produced.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns "" and no error when key is absent.
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(operation string, parts ...string) string
	Close() error
}

type redisCache struct {
	client      *redis.Client
	serviceName string
}

func NewRedisCache(addr, serviceName string) Cache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: addr}), serviceName)
}

func NewRedisCacheFromClient(client *redis.Client, serviceName string) Cache {
	return &redisCache{client: client, serviceName: serviceName}
}

func (r *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// GenerateKey namespaces keys as service:operation:part1:part2...
func (r *redisCache) GenerateKey(operation string, parts ...string) string {
	return GenerateKey(r.serviceName, operation, parts...)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

func GenerateKey(serviceName, operation string, parts ...string) string {
	return strings.Join(append([]string{serviceName, operation}, parts...), ":")
}
