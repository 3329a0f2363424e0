package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves as a cache that never hits.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures the cache connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New creates a new Redis-backed cache client.
func New(opts Options) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		ttl: opts.TTL,
	}
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both count as a miss
		return nil
	}
	return res
}

// Set stores value with the configured TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}

// Delete removes keys, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

// GetJSON decodes the cached value under key into dst and reports a hit.
func (c *Client) GetJSON(ctx context.Context, key string, dst any) bool {
	data := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes v and stores it under key.
func (c *Client) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, payload)
}

// Ping checks connectivity. A nil client reports no error.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
