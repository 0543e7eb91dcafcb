package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NameCache keeps user display names in redis. Names are read on every
// rating and settlement write, so the cache saves a users lookup on the hot
// path; any redis error is treated as a miss.
type NameCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewNameCache(rdb *redis.Client) *NameCache {
	return &NameCache{rdb: rdb, ttl: time.Hour}
}

func nameKey(userID int) string {
	return fmt.Sprintf("user:name:%d", userID)
}

func (c *NameCache) Get(ctx context.Context, userID int) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	name, err := c.rdb.Get(ctx, nameKey(userID)).Result()
	if err != nil {
		return "", false
	}
	return name, true
}

func (c *NameCache) Set(ctx context.Context, userID int, name string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, nameKey(userID), name, c.ttl).Err()
}

// Invalidate вызывается при смене имени в профиле.
func (c *NameCache) Invalidate(ctx context.Context, userID int) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, nameKey(userID)).Err()
}
