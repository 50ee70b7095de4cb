// Package metrics 注册并暴露 Prometheus 指标。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchTotal 搜索请求总数（按结果分类: ok / empty / error）。
	SearchTotal *prometheus.CounterVec

	// UpstreamErrorTotal 上游搜索接口失败数（按错误类别）。
	UpstreamErrorTotal *prometheus.CounterVec

	// SearchCacheHitTotal 搜索结果缓存命中数。
	SearchCacheHitTotal prometheus.Counter

	// SearchCacheMissTotal 搜索结果缓存未命中数。
	SearchCacheMissTotal prometheus.Counter

	// CreditConsumedTotal 已消耗的搜索额度总数。
	CreditConsumedTotal prometheus.Counter

	// WatchlistSyncTotal 收藏清单行情刷新次数（按结果: ok / error）。
	WatchlistSyncTotal *prometheus.CounterVec

	// PriceDropAlertTotal 已发出的降价提醒数。
	PriceDropAlertTotal prometheus.Counter

	// RateLimitWaitDuration 限流等待时长分布。
	RateLimitWaitDuration prometheus.Histogram

	// RateLimitTimeoutTotal 限流等待超时数。
	RateLimitTimeoutTotal prometheus.Counter

	// WorkerPoolSize 当前 worker 池大小。
	WorkerPoolSize prometheus.Gauge
)

var initOnce sync.Once

// InitMetrics 注册全部指标。重复调用是安全的（只注册一次）。
func InitMetrics(workerPoolSize int) {
	initOnce.Do(func() {
		SearchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "arbitragescout_search_total",
			Help: "Total number of search requests by outcome.",
		}, []string{"outcome"})

		UpstreamErrorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "arbitragescout_upstream_error_total",
			Help: "Upstream search provider failures by kind.",
		}, []string{"kind"})

		SearchCacheHitTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbitragescout_search_cache_hit_total",
			Help: "Search cache hits.",
		})

		SearchCacheMissTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbitragescout_search_cache_miss_total",
			Help: "Search cache misses.",
		})

		CreditConsumedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbitragescout_credit_consumed_total",
			Help: "Search credits consumed.",
		})

		WatchlistSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "arbitragescout_watchlist_sync_total",
			Help: "Watchlist resync runs by outcome.",
		}, []string{"outcome"})

		PriceDropAlertTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbitragescout_price_drop_alert_total",
			Help: "Price drop notifications sent.",
		})

		RateLimitWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbitragescout_ratelimit_wait_seconds",
			Help:    "Time spent waiting for a rate limit token.",
			Buckets: prometheus.DefBuckets,
		})

		RateLimitTimeoutTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "arbitragescout_ratelimit_timeout_total",
			Help: "Rate limit waits that timed out.",
		})

		WorkerPoolSize = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "arbitragescout_worker_pool_size",
			Help: "Configured sync worker pool size.",
		})
		WorkerPoolSize.Set(float64(workerPoolSize))
	})
}
