package cache

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Cache membungkus redis; Client nil = cache dimatikan, semua call langsung ke fn.
type Cache struct {
	Client *redis.Client
	Prefix string
}

func New(client *redis.Client, prefix string) *Cache {
	return &Cache{Client: client, Prefix: strings.TrimSuffix(prefix, ":")}
}

func (c *Cache) Enabled() bool { return c != nil && c.Client != nil }

// Key: <prefix>:<part1>:<part2>...
func (c *Cache) Key(parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	if c != nil && c.Prefix != "" {
		all = append(all, c.Prefix)
	}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			all = append(all, p)
		}
	}
	return strings.Join(all, ":")
}

// CacheOrExecute: hit → decode ke dest; miss → fn, simpan, decode.
// Error redis tidak menggagalkan request.
func (c *Cache) CacheOrExecute(ctx context.Context, key string, dest any, ttl time.Duration, fn func() (any, error)) error {
	if c.Enabled() {
		raw, err := c.Client.Get(ctx, key).Bytes()
		if err == nil {
			if err := sonic.Unmarshal(raw, dest); err == nil {
				return nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] get %s: %v", key, err)
		}
	}

	val, err := fn()
	if err != nil {
		return err
	}
	raw, err := sonic.Marshal(val)
	if err != nil {
		return err
	}
	if c.Enabled() {
		if err := c.Client.Set(ctx, key, raw, ttl).Err(); err != nil {
			log.Printf("[CACHE] set %s: %v", key, err)
		}
	}
	return sonic.Unmarshal(raw, dest)
}

// InvalidatePrefix menghapus semua key <prefix>* lewat SCAN.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}
	iter := c.Client.Scan(ctx, 0, prefix+"*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[CACHE] scan %s: %v", prefix, err)
		return
	}
	if len(keys) > 0 {
		if err := c.Client.Del(ctx, keys...).Err(); err != nil {
			log.Printf("[CACHE] del %s*: %v", prefix, err)
		}
	}
}
