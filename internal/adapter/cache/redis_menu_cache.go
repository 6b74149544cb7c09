package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/Dineep4/QuickBite/internal/entity"
	"github.com/Dineep4/QuickBite/internal/usecase"
)

const menuKey = "menu:all"

// RedisMenuCache keeps the full menu listing as one JSON blob with a
// short TTL. Mutations invalidate rather than patch, so a stale entry
// can only outlive an edit by the Invalidate call failing.
type RedisMenuCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMenuCache(rdb *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMenuCache) GetAll(ctx context.Context) ([]domain.MenuItem, bool, error) {
	raw, err := c.rdb.Get(ctx, menuKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []domain.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisMenuCache) SetAll(ctx context.Context, items []domain.MenuItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, menuKey, raw, c.ttl).Err()
}

func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, menuKey).Err()
}

var _ usecase.MenuCache = (*RedisMenuCache)(nil)
