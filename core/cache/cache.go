package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rediser is the slice of the redis client the cache uses. *redis.Client
// satisfies it; tests substitute an in-memory fake.
type Rediser interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache is a thread-safe TTL key-value store. The in-process map is always
// the primary store; when a redis client is attached, Set writes through and
// GetInto falls back to redis on a local miss so instances sharing redis warm
// each other.
type Cache struct {
	m     sync.Map
	redis Rediser
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache(nil)
	})
	return instance
}

// NewCache creates a Cache. client may be nil (memory only).
func NewCache(client Rediser) *Cache {
	return &Cache{redis: client}
}

// AttachRedis wires a redis client into the singleton after config init.
func AttachRedis(client *redis.Client) {
	GetInstance().redis = client
}

type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // UnixNano; 0 means no expiration
}

// Set stores a value with an optional TTL in seconds. ttl 0 means no expiry.
func (c *Cache) Set(key string, value interface{}, ttl int64) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(time.Duration(ttl) * time.Second).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if c.redis != nil {
		if b, err := json.Marshal(value); err == nil {
			c.redis.Set(context.Background(), key, b, time.Duration(ttl)*time.Second)
		}
	}
}

// Get returns the raw in-process value. Expired entries are dropped on read.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		if c.redis != nil {
			c.redis.Del(context.Background(), key)
		}
		return nil, false
	}
	return item.Value, true
}

// GetInto consults redis after a local miss, unmarshalling the stored JSON
// into dest. Returns false when no redis client is attached, the key is
// absent, or the payload does not decode. Redis owns the entry's TTL, so the
// local map is not re-primed here.
func (c *Cache) GetInto(key string, dest interface{}) bool {
	if c.redis == nil {
		return false
	}
	b, err := c.redis.Get(context.Background(), key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

// Delete removes a key from memory and redis.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
	if c.redis != nil {
		c.redis.Del(context.Background(), key)
	}
}

// DeleteMany removes multiple keys.
func (c *Cache) DeleteMany(keys ...string) {
	for _, key := range keys {
		c.Delete(key)
	}
}

// Prune drops every expired in-process entry. Called from cron.
func (c *Cache) Prune() int {
	now := time.Now().UnixNano()
	removed := 0
	c.m.Range(func(k, v interface{}) bool {
		item := v.(cacheItem)
		if item.ExpiresAt > 0 && now > item.ExpiresAt {
			c.m.Delete(k)
			removed++
		}
		return true
	})
	return removed
}
