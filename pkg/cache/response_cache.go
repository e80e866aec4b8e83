// Package cache provides an exact-match response cache in front of the
// pipeline. Repeated queries are common in call-center traffic (the same
// FAQ phrased identically), and cached hits skip the embedding and
// generation calls entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bfsi-assistant-be/internal/constant"
	"bfsi-assistant-be/pkg/pipeline"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = time.Hour

// ResponseCache stores completed pipeline states keyed by a hash of the
// normalized query. Optional collaborator: a nil *ResponseCache is valid
// and all operations no-op on it.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis using a URL (redis://host:port/db). Returns an
// error when the URL is malformed or the server does not answer PING, so
// the caller can degrade to running without a cache.
func New(ctx context.Context, redisURL string) (*ResponseCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &ResponseCache{
		client: client,
		ttl:    defaultTTL,
	}, nil
}

func cacheKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return fmt.Sprintf("bfsi:response:%x", sha256.Sum256([]byte(normalized)))
}

// Get returns the cached state for a query, if any.
func (c *ResponseCache) Get(ctx context.Context, query string) (*pipeline.State, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, cacheKey(query)).Result()
	if err != nil {
		return nil, false
	}

	var state pipeline.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, false
	}
	return &state, true
}

// Set stores a completed state. Guardrail rejections are not cached: they
// are cheap to recompute and caching them would pin transient phrasing.
func (c *ResponseCache) Set(ctx context.Context, query string, state *pipeline.State) {
	if c == nil || state == nil || state.TierUsed == constant.TierGuardrail {
		return
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(query), raw, c.ttl)
}
