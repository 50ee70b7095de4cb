// Package watchlist 管理用户收藏的商品清单。
//
// 每个用户的清单存成一个 Redis 键（JSON 数组），键在进程重启后
// 保持稳定，恢复会话依赖这一点。清单规模在几十条以内，整读整写
// 比逐条结构化存储简单得多。
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"arbitragescout/internal/model"
)

const keyPrefix = "arbitragescout:watchlist:"

// ErrPersistence 标记底层存储读写失败。操作可由调用方重试，
// 失败时内存视图不会被更新。
var ErrPersistence = errors.New("watchlist persistence failure")

// Store 是基于 Redis 的收藏清单存储。
type Store struct {
	rdb *redis.Client
	// now 可注入，测试里固定时间
	now func() time.Time
}

// NewStore 创建收藏清单存储。
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

func key(userID string) string {
	return keyPrefix + userID
}

// load 读出整个清单；键不存在时返回空清单。
func (s *Store) load(ctx context.Context, userID string) ([]model.WatchlistEntry, error) {
	raw, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrPersistence, err)
	}
	var entries []model.WatchlistEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrPersistence, err)
	}
	return entries, nil
}

func (s *Store) save(ctx context.Context, userID string, entries []model.WatchlistEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if err := s.rdb.Set(ctx, key(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrPersistence, err)
	}
	return nil
}

// List 返回用户的收藏清单，按加入先后排列。
func (s *Store) List(ctx context.Context, userID string) ([]model.WatchlistEntry, error) {
	return s.load(ctx, userID)
}

// Save 把一个商品加入清单。
//
// trackedPrice 固定为保存时刻的价格，savedAt 为当前时间。
// 同一 ASIN 已在清单里时不追加重复条目，静默 no-op（价格
// 漂移徽标假设每个用户每个 ASIN 唯一）。不可识别的商品
// （ASIN 为空或占位符）直接拒绝。
func (s *Store) Save(ctx context.Context, userID string, listing model.Listing) error {
	if !listing.Identifiable() {
		return fmt.Errorf("listing has no stable identifier")
	}

	entries, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.ASIN == listing.ASIN {
			return nil
		}
	}

	entries = append(entries, model.WatchlistEntry{
		Listing:      listing,
		TrackedPrice: listing.Price,
		SavedAt:      s.now().UTC(),
	})
	return s.save(ctx, userID, entries)
}

// Remove 从清单移除一个 ASIN；不存在时 no-op，不算错误。
func (s *Store) Remove(ctx context.Context, userID, asin string) error {
	entries, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ASIN != asin {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	return s.save(ctx, userID, kept)
}

// Resync 用最新行情覆盖一个条目的活动字段（价格、排名、评分、
// 评论数、销量文本），trackedPrice 和 savedAt 保持不变。
// 条目不存在时 no-op。
func (s *Store) Resync(ctx context.Context, userID, asin string, fresh model.Listing) error {
	entries, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	updated := false
	for i := range entries {
		if entries[i].ASIN != asin {
			continue
		}
		entries[i].Price = fresh.Price
		entries[i].BSR = fresh.BSR
		entries[i].Rating = fresh.Rating
		entries[i].ReviewCount = fresh.ReviewCount
		entries[i].SalesVolume = fresh.SalesVolume
		updated = true
		break
	}
	if !updated {
		return nil
	}
	return s.save(ctx, userID, entries)
}

// Contains 报告一个 ASIN 是否已在用户清单里。
func (s *Store) Contains(ctx context.Context, userID, asin string) (bool, error) {
	entries, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ASIN == asin {
			return true, nil
		}
	}
	return false, nil
}
