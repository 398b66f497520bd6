// Package cache is the Redis side-store for derived data: rating summaries
// and the session revocation list. Nothing in it is a source of truth, so
// every operation degrades to a miss instead of failing the request when
// Redis is down.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a Redis connection with miss-on-error semantics. A nil
// *Client is valid and behaves like an always-empty cache, which keeps
// tests and cache-less deployments off the network entirely.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis. The connection is lazy; reachability is only
// observable through Ping or the first operation.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) ready() bool {
	return c != nil && c.rdb != nil
}

// Ping reports whether Redis is reachable. Used at startup for logging only.
func (c *Client) Ping(ctx context.Context) error {
	if !c.ready() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Get returns the stored value, or nil on a miss. Connectivity errors read
// as misses too.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.ready() {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike: a miss
		return nil, nil
	}
	return data, nil
}

// Set stores value under key for ttl. Write failures are swallowed; the
// entry simply never lands.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.ready() {
		return nil
	}
	c.rdb.Set(ctx, key, value, ttl)
	return nil
}

// Delete drops a key, used to invalidate a summary after a write. Failure
// is tolerated: a stale entry expires on its own TTL.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.ready() {
		return nil
	}
	c.rdb.Del(ctx, key)
	return nil
}
