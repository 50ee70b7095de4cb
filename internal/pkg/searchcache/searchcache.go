// Package searchcache 缓存上游搜索结果。
//
// 同样的筛选条件在短时间内重复提交时直接命中缓存，省掉一次
// 付费的上游调用。键是查询各维度拼接后的哈希，值是归一化后的
// 商品列表 JSON。
package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"arbitragescout/internal/model"
	"arbitragescout/internal/pkg/metrics"
)

const keyPrefix = "arbitragescout:searchcache:"

// Cache 是基于 Redis 的搜索结果缓存。
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New 创建缓存，ttl 非正时用 10 分钟。
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key 把查询的各个维度拼成稳定的缓存键。
func Key(query, market, category string, page int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%d", query, market, category, page))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get 按键取缓存的商品列表；未命中返回 (nil, false, nil)。
// 缓存读失败降级为未命中，不阻断搜索。
func (c *Cache) Get(ctx context.Context, key string) ([]model.Listing, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, nil
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		if metrics.SearchCacheMissTotal != nil {
			metrics.SearchCacheMissTotal.Inc()
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("searchcache get: %w", err)
	}
	var listings []model.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, false, fmt.Errorf("searchcache decode: %w", err)
	}
	if metrics.SearchCacheHitTotal != nil {
		metrics.SearchCacheHitTotal.Inc()
	}
	return listings, true, nil
}

// Set 写入一次搜索的结果。空结果也缓存，避免重复打到上游。
func (c *Cache) Set(ctx context.Context, key string, listings []model.Listing) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("searchcache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("searchcache set: %w", err)
	}
	return nil
}
