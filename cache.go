package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small stale-while-revalidate cache for derived analysis
// payloads. Entries are always kept in memory; when Redis is enabled
// they are mirrored there so several replicas behind a proxy can share
// warm results. Entries stay servable for a grace window after going
// stale so a slow recompute never blocks a reader.
type CacheConfig struct {
	RedisURL    string
	EnableRedis bool
	DefaultTTL  time.Duration
}

type Cache struct {
	cfg CacheConfig
	rdb *redis.Client

	mu      sync.RWMutex
	entries map[string]*cacheEntry

	refreshMu  sync.Mutex
	refreshing map[string]bool
}

// cacheEnvelope is the serialized form (memory and Redis share it so a
// Redis hit round-trips the staleness marker too).
type cacheEnvelope struct {
	StaleAt time.Time       `json:"stale_at"`
	Data    json.RawMessage `json:"data"`
}

type cacheEntry struct {
	env     cacheEnvelope
	expires time.Time
}

// staleFactor: an entry is servable for staleFactor×TTL total, stale
// after 1×TTL.
const staleFactor = 3

func NewCache(cfg CacheConfig) *Cache {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	c := &Cache{
		cfg:        cfg,
		entries:    make(map[string]*cacheEntry),
		refreshing: make(map[string]bool),
	}
	if cfg.EnableRedis && cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("[CACHE] invalid REDIS_URL, running memory-only: %v", err)
		} else {
			c.rdb = redis.NewClient(opt)
			log.Printf("[CACHE] redis tier enabled (%s)", opt.Addr)
		}
	}
	return c
}

// Get unmarshals a cached value into dest. Reports false on miss.
// A hard-expired entry is reclaimed on lookup; keys embed upload IDs
// and never repeat, so leaving dead entries behind would grow the map
// for the life of the process.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		if time.Now().Before(e.expires) {
			return json.Unmarshal(e.env.Data, dest) == nil
		}
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
	}

	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] redis get failed for %s: %v", key, err)
		}
		return false
	}
	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false
	}
	// Promote to the memory tier; remaining lifetime is whatever the
	// staleness marker implies.
	c.mu.Lock()
	c.entries[key] = &cacheEntry{env: env, expires: env.StaleAt.Add((staleFactor - 1) * c.cfg.DefaultTTL)}
	c.mu.Unlock()
	return json.Unmarshal(env.Data, dest) == nil
}

// Set stores a value with the given TTL (DefaultTTL when ttl<=0).
func (c *Cache) Set(ctx context.Context, key string, val any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.cfg.DefaultTTL
	}
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	env := cacheEnvelope{StaleAt: time.Now().Add(ttl), Data: data}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{env: env, expires: time.Now().Add(staleFactor * ttl)}
	c.mu.Unlock()

	if c.rdb != nil {
		raw, err := json.Marshal(env)
		if err != nil {
			return err
		}
		if err := c.rdb.Set(ctx, key, raw, staleFactor*ttl).Err(); err != nil {
			log.Printf("[CACHE] redis set failed for %s: %v", key, err)
		}
	}
	return nil
}

// IsStale reports whether the entry is past its soft TTL (still
// servable, but a background refresh should be kicked off).
func (c *Cache) IsStale(ctx context.Context, key string) bool {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	return time.Now().After(e.env.StaleAt)
}

// TryStartRefresh claims the refresh slot for a key. Exactly one caller
// wins until FinishRefresh; everyone else keeps serving stale data.
func (c *Cache) TryStartRefresh(key string) bool {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	if c.refreshing[key] {
		return false
	}
	c.refreshing[key] = true
	return true
}

func (c *Cache) FinishRefresh(key string) {
	c.refreshMu.Lock()
	delete(c.refreshing, key)
	c.refreshMu.Unlock()
}

// Sweep drops hard-expired entries; runs on the janitor cadence.
// The Redis tier handles its own TTLs.
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Invalidate drops a single key from both tiers.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			log.Printf("[CACHE] redis del failed for %s: %v", key, err)
		}
	}
}

// Ping reports whether the Redis tier (if any) is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
