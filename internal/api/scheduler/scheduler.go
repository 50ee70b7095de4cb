// Package scheduler 周期性刷新收藏清单的行情数据。
//
// 每到一个同步周期，调度器枚举所有用户，为每个用户投递一个刷新
// 任务到工作池。任务重新查询收藏的商品，更新价格和排名快照，并
// 在价格低于收藏价时发送降价提醒邮件。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"arbitragescout/internal/model"
	"arbitragescout/internal/pkg/metrics"
	"arbitragescout/internal/pkg/notify"
	"arbitragescout/internal/pkg/queue"
	"arbitragescout/internal/search"
	"arbitragescout/internal/watchlist"

	"gorm.io/gorm"
)

// EntryStore 是调度器需要的收藏清单操作子集。
type EntryStore interface {
	List(ctx context.Context, userID string) ([]model.WatchlistEntry, error)
	Resync(ctx context.Context, userID, asin string, fresh model.Listing) error
}

// Searcher 按查询返回归一化商品列表。
type Searcher interface {
	Run(ctx context.Context, q search.Query) ([]model.Listing, error)
}

// Scheduler 周期性刷新所有用户的收藏行情。
type Scheduler struct {
	db       *gorm.DB
	store    EntryStore
	searcher Searcher
	notifier notify.Notifier
	logger   *slog.Logger
	interval time.Duration
	pool     *queue.Queue
}

// NewScheduler 创建调度器。
//
// 参数:
//
//	db: 用户库，用于枚举有收藏的用户
//	store: 收藏清单存储
//	searcher: 行情查询
//	notifier: 降价提醒
//	logger: 日志
//	interval: 同步周期
//	workers: 工作池大小
//	capacity: 任务队列容量
func NewScheduler(
	db *gorm.DB,
	store EntryStore,
	searcher Searcher,
	notifier notify.Notifier,
	logger *slog.Logger,
	interval time.Duration,
	workers int,
	capacity int,
) *Scheduler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		db:       db,
		store:    store,
		searcher: searcher,
		notifier: notifier,
		logger:   logger,
		interval: interval,
		pool:     queue.NewQueue(logger, workers, capacity),
	}
}

// Run 启动调度循环，阻塞直到 ctx 取消。
func (s *Scheduler) Run(ctx context.Context) {
	s.pool.Start(ctx)
	defer s.pool.Shutdown()

	s.logger.Info("watchlist scheduler started", slog.String("interval", s.interval.String()))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watchlist scheduler stopped")
			return
		case <-ticker.C:
			s.syncAll(ctx)
		}
	}
}

// syncAll 为每个用户投递一个刷新任务。
func (s *Scheduler) syncAll(ctx context.Context) {
	var users []model.User
	if err := s.db.WithContext(ctx).Select("id", "email").Find(&users).Error; err != nil {
		s.logger.Error("list users failed", slog.String("error", err.Error()))
		return
	}

	for _, u := range users {
		userID := strconv.FormatUint(uint64(u.ID), 10)
		email := u.Email
		ok := s.pool.Enqueue(func(jobCtx context.Context) error {
			return s.SyncUser(jobCtx, userID, email)
		})
		if !ok {
			s.logger.Warn("sync job dropped, queue full", slog.String("user", userID))
		}
	}
}

// SyncUser 刷新一个用户收藏清单里所有商品的行情。
//
// 每个条目按 ASIN 重新搜索取最新快照。单个条目失败不中断整个
// 清单的刷新。最新价低于收藏价时发降价提醒。
func (s *Scheduler) SyncUser(ctx context.Context, userID, email string) error {
	entries, err := s.store.List(ctx, userID)
	if err != nil {
		if metrics.WatchlistSyncTotal != nil {
			metrics.WatchlistSyncTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("list watchlist: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	var firstErr error
	refreshed := 0
	for _, entry := range entries {
		if err := s.syncEntry(ctx, userID, email, entry); err != nil {
			s.logger.Warn("sync entry failed",
				slog.String("user", userID),
				slog.String("asin", entry.ASIN),
				slog.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		refreshed++
	}

	outcome := "ok"
	if firstErr != nil {
		outcome = "partial"
	}
	if metrics.WatchlistSyncTotal != nil {
		metrics.WatchlistSyncTotal.WithLabelValues(outcome).Inc()
	}
	s.logger.Info("watchlist synced",
		slog.String("user", userID),
		slog.Int("refreshed", refreshed),
		slog.Int("total", len(entries)),
	)
	return firstErr
}

// syncEntry 刷新单个收藏条目。
func (s *Scheduler) syncEntry(ctx context.Context, userID, email string, entry model.WatchlistEntry) error {
	fresh, err := s.lookup(ctx, entry)
	if err != nil {
		return err
	}
	if fresh == nil {
		// 商品已下架或搜不到，保留旧快照
		return nil
	}

	if err := s.store.Resync(ctx, userID, entry.ASIN, *fresh); err != nil {
		return err
	}

	if fresh.Price > 0 && fresh.Price < entry.TrackedPrice {
		s.alertPriceDrop(ctx, entry, *fresh, email)
	}
	return nil
}

// lookup 按 ASIN 搜索并挑出匹配的商品。
func (s *Scheduler) lookup(ctx context.Context, entry model.WatchlistEntry) (*model.Listing, error) {
	listings, err := s.searcher.Run(ctx, search.Query{Keywords: entry.ASIN})
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		if l.ASIN == entry.ASIN {
			return &l, nil
		}
	}
	return nil, nil
}

func (s *Scheduler) alertPriceDrop(ctx context.Context, entry model.WatchlistEntry, fresh model.Listing, email string) {
	if s.notifier == nil || email == "" {
		return
	}

	updated := entry
	updated.Listing = fresh
	if err := s.notifier.SendPriceDrop(ctx, updated, email); err != nil {
		s.logger.Warn("price drop alert failed",
			slog.String("asin", entry.ASIN),
			slog.String("error", err.Error()),
		)
		return
	}
	if metrics.PriceDropAlertTotal != nil {
		metrics.PriceDropAlertTotal.Inc()
	}
	s.logger.Info("price drop alert sent",
		slog.String("asin", entry.ASIN),
		slog.Float64("tracked", entry.TrackedPrice),
		slog.Float64("current", fresh.Price),
	)
}

var _ EntryStore = (*watchlist.Store)(nil)
