package faq

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "blog:faqs:"

// Cache 公开 FAQ 列表的 Redis 缓存
// client 为空时所有操作都是空操作
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache 创建缓存
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get 读取缓存，未命中时返回 false
func (c *Cache) Get(ctx context.Context, slug string) ([]Item, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, cacheKeyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

// Set 写入缓存
func (c *Cache) Set(ctx context.Context, slug string, items []Item) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+slug, data, c.ttl).Err()
}

// Invalidate 删除缓存
func (c *Cache) Invalidate(ctx context.Context, slug string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKeyPrefix+slug).Err()
}
