// Package redis provides the Redis client wrapper used for read-through caches.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient defines the Redis operations used by the service.
type RedisClient interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
	GetClient() redis.UniversalClient
}

// Nil is the sentinel returned by Get when a key does not exist.
const Nil = redis.Nil

// Option is a function that configures a Client.
type Option func(*Client)

// Client wraps a go-redis universal client.
type Client struct {
	opts   *redis.UniversalOptions
	client redis.UniversalClient
}

// New creates a Redis client with the provided options and verifies the
// connection with a ping.
func New(opts ...Option) (RedisClient, error) {
	client := &Client{
		opts: &redis.UniversalOptions{
			Addrs:        []string{"localhost:6379"},
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.client = redis.NewUniversalClient(client.opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// NewWithConfig creates a Redis client from a config struct.
func NewWithConfig(config Config) (RedisClient, error) {
	return New(
		WithAddrs(config.Addrs),
		WithUsername(config.Username),
		WithPassword(config.Password),
		WithDB(config.DB),
		WithPoolSize(config.PoolSize),
	)
}

// Set stores a key with an expiration.
func (r *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get returns the value of a key, or redis.Nil when absent.
func (r *Client) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Del removes a key.
func (r *Client) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Exists reports whether a key is present.
func (r *Client) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close closes the Redis client.
func (r *Client) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying go-redis client for advanced operations.
func (r *Client) GetClient() redis.UniversalClient {
	return r.client
}
