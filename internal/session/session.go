// Package session 管理登录会话携带的上下文和搜索额度。
//
// 会话值在请求链路里显式传递，不放全局变量。额度计数放 Redis，
// 进程重启后保留，多实例部署时共享同一份计数。
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"arbitragescout/internal/model"
)

const creditKeyPrefix = "arbitragescout:credits:"

// FreeSearchLimit 是免费用户的搜索额度。
const FreeSearchLimit = 5

// BasicSearchLimit 是基础付费套餐的搜索额度。
const BasicSearchLimit = 100

// ProSearchLimit 实际上不限次数，取一个够大的上限。
const ProSearchLimit = 999999

// ErrNoCredits 表示免费额度已耗尽，提示用户升级。
var ErrNoCredits = errors.New("search credits exhausted")

// Session 是一次已认证请求携带的用户上下文。
type Session struct {
	UserID string
	Email  string
	Tier   string
	// DefaultCost 是本会话的默认进货成本，ROI 排序和导出用它
	DefaultCost float64
}

// Limit 返回该会话的搜索额度上限。未知等级按免费处理。
func (s Session) Limit() int {
	switch s.Tier {
	case model.TierPro:
		return ProSearchLimit
	case model.TierBasic:
		return BasicSearchLimit
	default:
		return FreeSearchLimit
	}
}

// Manager 维护每个用户已消耗的搜索次数。
type Manager struct {
	rdb *redis.Client
}

// NewManager 创建额度管理器。
func NewManager(rdb *redis.Client) *Manager {
	return &Manager{rdb: rdb}
}

func creditKey(userID string) string {
	return creditKeyPrefix + userID
}

// Consume 为一次搜索扣减额度。
//
// 超出会话等级的上限时返回 ErrNoCredits，计数不会继续增长
// 到离谱的值（先 INCR 后检查，超限即回退）。
func (m *Manager) Consume(ctx context.Context, sess Session) error {
	used, err := m.rdb.Incr(ctx, creditKey(sess.UserID)).Result()
	if err != nil {
		return fmt.Errorf("consume credit: %w", err)
	}
	if used > int64(sess.Limit()) {
		if err := m.rdb.Decr(ctx, creditKey(sess.UserID)).Err(); err != nil {
			return fmt.Errorf("rollback credit: %w", err)
		}
		return ErrNoCredits
	}
	return nil
}

// Used 返回已消耗的搜索次数。
func (m *Manager) Used(ctx context.Context, userID string) (int, error) {
	n, err := m.rdb.Get(ctx, creditKey(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read credits: %w", err)
	}
	return n, nil
}

// Remaining 返回剩余额度（不小于 0）。
func (m *Manager) Remaining(ctx context.Context, sess Session) (int, error) {
	used, err := m.Used(ctx, sess.UserID)
	if err != nil {
		return 0, err
	}
	left := sess.Limit() - used
	if left < 0 {
		left = 0
	}
	return left, nil
}

// Reset 清零计数（升级套餐或运营手动重置时用）。
func (m *Manager) Reset(ctx context.Context, userID string) error {
	if err := m.rdb.Del(ctx, creditKey(userID)).Err(); err != nil {
		return fmt.Errorf("reset credits: %w", err)
	}
	return nil
}
