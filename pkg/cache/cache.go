// Package cache provides an optional read-through Redis cache for
// classifier-path verdicts. The engine is deterministic for a fixed model
// and registry, so caching a final result keyed on the normalized text
// never changes semantics; it only skips repeated inference. Rule verdicts
// are not cached (the rule layer is cheaper than the network hop).
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix versions the cache layout; bump when Entry changes shape.
const keyPrefix = "scamwatch:verdict:v1:"

// Entry is the cached form of a classification result.
type Entry struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Client caches verdicts in Redis with a fixed TTL. Safe for concurrent
// use. Lookup and store failures are reported to the caller, who treats
// them as misses; the cache is an optimization, never a dependency.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds a cache client and verifies connectivity.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Get returns the cached entry for normalized text. The second return is
// false on a miss or any deserialization/transport problem.
func (c *Client) Get(ctx context.Context, normalized string) (Entry, bool) {
	raw, err := c.rdb.Get(ctx, key(normalized)).Bytes()
	if err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Set stores an entry under the normalized text's key.
func (c *Client) Set(ctx context.Context, normalized string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, key(normalized), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// key hashes the normalized text so arbitrary message content never
// appears verbatim in Redis keys.
func key(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return keyPrefix + hex.EncodeToString(sum[:])
}
