package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"arbitragescout/internal/advisor"
	"arbitragescout/internal/api/auth"
	"arbitragescout/internal/api/middleware"
	"arbitragescout/internal/api/scheduler"
	"arbitragescout/internal/config"
	"arbitragescout/internal/demand"
	"arbitragescout/internal/export"
	"arbitragescout/internal/model"
	"arbitragescout/internal/pkg/metrics"
	"arbitragescout/internal/pkg/notify"
	"arbitragescout/internal/pkg/ratelimit"
	"arbitragescout/internal/pkg/searchcache"
	"arbitragescout/internal/results"
	"arbitragescout/internal/search"
	"arbitragescout/internal/session"
	"arbitragescout/internal/watchlist"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Server 封装了 API 服务所需的依赖和路由处理。
//
// 它持有数据库连接、Redis 客户端、搜索编排器以及 Gin 路由引擎。
// 搜索/收藏/额度依赖以接口注入，便于在测试里替换。
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	rdb      *redis.Client
	router   *gin.Engine
	auth     *auth.Handler
	sched    *scheduler.Scheduler
	searcher Searcher
	watch    WatchStore
	credits  CreditManager
	cache    ResultCache
	limiter  *ratelimit.Limiter
	adviser  Adviser

	// 每个用户的当前搜索结果与会话默认成本
	mu     sync.Mutex
	states map[string]*userState
}

// Searcher 执行一次搜索并返回归一化结果。
type Searcher interface {
	Run(ctx context.Context, q search.Query) ([]model.Listing, error)
}

// WatchStore 是收藏清单存储。
type WatchStore interface {
	List(ctx context.Context, userID string) ([]model.WatchlistEntry, error)
	Save(ctx context.Context, userID string, listing model.Listing) error
	Remove(ctx context.Context, userID, asin string) error
}

// CreditManager 管理搜索额度。
type CreditManager interface {
	Consume(ctx context.Context, sess session.Session) error
	Remaining(ctx context.Context, sess session.Session) (int, error)
}

// ResultCache 缓存整页搜索结果。
type ResultCache interface {
	Get(ctx context.Context, key string) ([]model.Listing, bool, error)
	Set(ctx context.Context, key string, listings []model.Listing) error
}

// Adviser 为单个商品生成建议文本。
type Adviser interface {
	Advise(ctx context.Context, l model.Listing, acquisitionCost float64) string
}

// userState 持有一个用户的结果集和会话默认进货成本。
type userState struct {
	set  *results.Set
	mu   sync.Mutex
	cost float64
}

func (u *userState) defaultCost() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cost
}

func (u *userState) setDefaultCost(cost float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cost = cost
}

// NewServer 初始化 API 服务器。
//
// 它负责：
// 1. 连接 MySQL 数据库并执行自动迁移
// 2. 连接 Redis
// 3. 组装搜索编排器、收藏存储、额度管理、调度器
// 4. 初始化 Gin 路由引擎
//
// 参数:
//
//	ctx: 上下文
//	cfg: 配置对象
//	logger: 日志记录器
//
// 返回值:
//
//	*Server: 初始化完成的服务器实例
//	error: 初始化失败返回错误
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Lead{}); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	metrics.InitMetrics(cfg.App.WorkerPoolSize)

	client := search.NewClient(search.ClientOptions{
		Host:    cfg.Provider.Host,
		Key:     cfg.Provider.Key,
		Timeout: cfg.Provider.Timeout,
	}, logger)
	orchestrator := search.NewOrchestrator(client, logger)

	store := watchlist.NewStore(rdb)
	emailNotifier := notify.NewEmailNotifier(&cfg.Email, logger)

	sched := scheduler.NewScheduler(
		db,
		store,
		orchestrator,
		emailNotifier,
		logger,
		cfg.App.SyncInterval,
		cfg.App.WorkerPoolSize,
		cfg.App.QueueCapacity,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		rdb:      rdb,
		router:   r,
		auth:     auth.NewHandler(db, cfg.Security.JWTSecret, logger),
		sched:    sched,
		searcher: orchestrator,
		watch:    store,
		credits:  session.NewManager(rdb),
		cache:    searchcache.New(rdb, cfg.App.CacheTTL),
		limiter:  ratelimit.NewLimiter(rdb, logger, "arbitragescout:ratelimit:search", cfg.App.RateLimit, cfg.App.RateBurst),
		adviser:  advisor.New(),
		states:   make(map[string]*userState),
	}
	s.registerRoutes()
	return s, nil
}

// Router 返回 HTTP 路由处理器。
func (s *Server) Router() http.Handler {
	return s.router
}

// StartScheduler 启动收藏清单行情刷新调度器。
func (s *Server) StartScheduler(ctx context.Context) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("PANIC in watchlist scheduler", slog.Any("panic", r))
			}
		}()
		s.sched.Run(ctx)
	}()
}

// Close 关闭数据库与缓存连接。
func (s *Server) Close() error {
	var firstErr error
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			firstErr = err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else if closeErr := sqlDB.Close(); closeErr != nil {
			if firstErr == nil {
				firstErr = closeErr
			}
		}
	}
	return firstErr
}

// registerRoutes 注册所有的 API 路由。
func (s *Server) registerRoutes() {
	// Prometheus metrics 端点
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/healthz", s.handleHealthz)

	s.router.POST("/leads", s.auth.CaptureLead)
	s.router.POST("/register", s.auth.Register)
	s.router.POST("/login", s.auth.Login)

	authed := s.router.Group("/")
	authed.Use(middleware.AuthMiddleware(s.cfg.Security.JWTSecret))
	authed.GET("/config", s.handleGetConfig)
	authed.POST("/logout", s.auth.Logout)

	authed.POST("/search", s.handleSearch)
	authed.GET("/results", s.handleResults)
	authed.POST("/results/select", s.handleToggleSelect)
	authed.POST("/results/clear", s.handleClearSelection)
	authed.GET("/results/export", s.handleExport)

	authed.GET("/watchlist", s.handleWatchlistList)
	authed.POST("/watchlist", s.handleWatchlistSave)
	authed.POST("/watchlist/bulk", s.handleWatchlistSaveSelected)
	authed.DELETE("/watchlist/:asin", s.handleWatchlistRemove)
	authed.POST("/watchlist/sync", s.handleWatchlistSync)

	authed.POST("/listings/:asin/advise", s.handleAdvise)
}

// sessionFrom 从请求上下文组装会话值。
func sessionFrom(c *gin.Context) session.Session {
	return session.Session{
		UserID: c.GetString("userID"),
		Email:  c.GetString("email"),
		Tier:   c.GetString("tier"),
	}
}

// stateFor 取或建一个用户的结果状态。
func (s *Server) stateFor(userID string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		st = &userState{set: results.NewSet()}
		s.states[userID] = st
	}
	return st
}

func (s *Server) handleHealthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.rdb == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}

	var one int
	if err := s.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleGetConfig 返回站点/类目选项和会话的额度信息。
//
// GET /config
func (s *Server) handleGetConfig(c *gin.Context) {
	sess := sessionFrom(c)
	remaining, err := s.credits.Remaining(c.Request.Context(), sess)
	if err != nil {
		s.logger.Warn("read credits failed", slog.String("error", err.Error()))
		remaining = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"marketplaces":      search.Marketplaces,
		"categories":        search.Categories,
		"tier":              sess.Tier,
		"search_limit":      sess.Limit(),
		"credits_remaining": remaining,
	})
}

// searchRequest 搜索请求参数。
type searchRequest struct {
	Keywords string   `json:"keywords"`
	Market   string   `json:"market"`
	Category string   `json:"category"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
	Page     int      `json:"page"`
	Cost     float64  `json:"cost"` // 会话默认进货成本
}

// handleSearch 执行一次搜索并替换当前结果集。
//
// POST /search
func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Market != "" && !search.ValidMarket(req.Market) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported market"})
		return
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_price exceeds max_price"})
		return
	}

	sess := sessionFrom(c)
	ctx := c.Request.Context()

	if err := s.credits.Consume(ctx, sess); err != nil {
		if errors.Is(err, session.ErrNoCredits) {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "search limit reached, upgrade to continue", "kind": "credits"})
			return
		}
		s.logger.Error("consume credit failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "credit check failed"})
		return
	}
	if metrics.CreditConsumedTotal != nil {
		metrics.CreditConsumedTotal.Inc()
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down", "kind": "throttled"})
		return
	}

	st := s.stateFor(sess.UserID)
	if req.Cost > 0 {
		st.setDefaultCost(req.Cost)
	}

	q := search.Query{
		Keywords: req.Keywords,
		Market:   req.Market,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Page:     req.Page,
	}

	gen := st.set.BeginSearch()

	cacheKey := searchcache.Key(cacheQueryString(q), q.Market, q.Category, q.Page)
	if cached, hit, err := s.cache.Get(ctx, cacheKey); err == nil && hit {
		st.set.Complete(gen, cached)
		s.respondSearch(c, st, cached)
		return
	} else if err != nil {
		// 缓存故障降级为未命中
		s.logger.Warn("search cache read failed", slog.String("error", err.Error()))
	}

	listings, err := s.searcher.Run(ctx, q)
	if err != nil {
		st.set.Fail(gen, err)
		s.respondSearchError(c, err)
		return
	}

	if err := s.cache.Set(ctx, cacheKey, listings); err != nil {
		s.logger.Warn("search cache write failed", slog.String("error", err.Error()))
	}

	if !st.set.Complete(gen, listings) {
		// 期间又发起了新搜索，本次响应作废
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer search"})
		return
	}
	s.respondSearch(c, st, listings)
}

func cacheQueryString(q search.Query) string {
	min, max := "", ""
	if q.MinPrice != nil {
		min = strconv.FormatFloat(*q.MinPrice, 'f', -1, 64)
	}
	if q.MaxPrice != nil {
		max = strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64)
	}
	return fmt.Sprintf("%s|%s|%s", q.Keywords, min, max)
}

func (s *Server) respondSearch(c *gin.Context, st *userState, listings []model.Listing) {
	outcome := "ok"
	if len(listings) == 0 {
		outcome = "empty"
	}
	if metrics.SearchTotal != nil {
		metrics.SearchTotal.WithLabelValues(outcome).Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"phase":    st.set.Phase(),
		"count":    len(listings),
		"listings": listings,
	})
}

// respondSearchError 把搜索失败映射到 HTTP 状态。
// 四类失败对客户端可区分: 限流 / 上游鉴权 / 上游错误 / 网络。
func (s *Server) respondSearchError(c *gin.Context, err error) {
	var ue *search.UpstreamError
	var ce *search.ConnectivityError

	kind := "upstream"
	status := http.StatusBadGateway
	message := "search provider failed"

	switch {
	case errors.Is(err, search.ErrThrottled):
		kind = "throttled"
		status = http.StatusTooManyRequests
		message = "search provider is rate limiting, retry later"
	case errors.Is(err, search.ErrAuth):
		kind = "auth"
		message = "search provider rejected credentials, check the subscription"
	case errors.As(err, &ce):
		kind = "connectivity"
		status = http.StatusServiceUnavailable
		message = "search provider unreachable"
	case errors.As(err, &ue):
		message = fmt.Sprintf("search provider returned status %d", ue.Status)
	}

	if metrics.SearchTotal != nil {
		metrics.SearchTotal.WithLabelValues("error").Inc()
	}
	if metrics.UpstreamErrorTotal != nil {
		metrics.UpstreamErrorTotal.WithLabelValues(kind).Inc()
	}
	s.logger.Warn("search failed", slog.String("kind", kind), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": message, "kind": kind})
}

// handleResults 返回当前结果集的一个视图。
//
// GET /results?sort=roi&demand=high&cost=12.5
func (s *Server) handleResults(c *gin.Context) {
	sess := sessionFrom(c)
	st := s.stateFor(sess.UserID)

	key, ok := results.ParseSortKey(c.Query("sort"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort key"})
		return
	}
	tier := demand.ParseTier(c.Query("demand"))

	cost := st.defaultCost()
	if v := c.Query("cost"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost"})
			return
		}
		cost = parsed
	}

	resp := gin.H{
		"phase":    st.set.Phase(),
		"listings": st.set.View(key, tier, cost),
		"selected": st.set.SelectedCount(),
	}
	if err := st.set.Err(); err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

type selectRequest struct {
	ASIN string `json:"asin" binding:"required"`
}

// handleToggleSelect 切换一个商品的选中状态。
//
// POST /results/select
func (s *Server) handleToggleSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := s.stateFor(sessionFrom(c).UserID)
	if !st.set.ToggleSelect(req.ASIN) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing has no stable identifier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asin":     req.ASIN,
		"selected": st.set.IsSelected(req.ASIN),
		"count":    st.set.SelectedCount(),
	})
}

// handleClearSelection 清空选中集合。
//
// POST /results/clear
func (s *Server) handleClearSelection(c *gin.Context) {
	st := s.stateFor(sessionFrom(c).UserID)
	st.set.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"count": 0})
}

// handleExport 把选中的商品导出为 CSV。
//
// GET /results/export?cost=12.5
//
// 未勾选任何条目时导出全部；导出消费掉选中集合（随后清空）。
func (s *Server) handleExport(c *gin.Context) {
	sess := sessionFrom(c)
	st := s.stateFor(sess.UserID)

	cost := st.defaultCost()
	if v := c.Query("cost"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cost"})
			return
		}
		cost = parsed
	}

	listings := st.set.SelectedListings()
	if len(listings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results to export"})
		return
	}

	csvText, err := export.EncodeCSV(listings, cost)
	if err != nil {
		s.logger.Error("csv encode failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	st.set.ClearSelection()

	filename := fmt.Sprintf("arbitrage-scout-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

// watchlistEntryResponse 带价格漂移徽标的收藏条目。
type watchlistEntryResponse struct {
	model.WatchlistEntry
	PriceDelta float64 `json:"price_delta"`
	Badge      string  `json:"badge"` // dropped / increased / 空
}

// handleWatchlistList 返回收藏清单。
//
// GET /watchlist
func (s *Server) handleWatchlistList(c *gin.Context) {
	sess := sessionFrom(c)
	entries, err := s.watch.List(c.Request.Context(), sess.UserID)
	if err != nil {
		s.respondPersistenceError(c, err)
		return
	}

	out := make([]watchlistEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = watchlistEntryResponse{
			WatchlistEntry: e,
			PriceDelta:     e.PriceDelta(),
			Badge:          priceBadge(e.PriceDelta()),
		}
	}
	c.JSON(http.StatusOK, gin.H{"entries": out, "count": len(out)})
}

func priceBadge(delta float64) string {
	switch {
	case delta < 0:
		return "dropped"
	case delta > 0:
		return "increased"
	default:
		return ""
	}
}

// handleWatchlistSave 把当前结果集里的一个商品加入收藏。
//
// POST /watchlist
func (s *Server) handleWatchlistSave(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	st := s.stateFor(sess.UserID)

	var target *model.Listing
	for _, l := range st.set.Listings() {
		if l.ASIN == req.ASIN {
			target = &l
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not in current results"})
		return
	}

	if err := s.watch.Save(c.Request.Context(), sess.UserID, *target); err != nil {
		if errors.Is(err, watchlist.ErrPersistence) {
			s.respondPersistenceError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"saved": req.ASIN})
}

// handleWatchlistSaveSelected 批量收藏当前选中的商品。
//
// POST /watchlist/bulk
//
// 批量保存消费掉选中集合。无法识别的条目跳过，不中断整批。
func (s *Server) handleWatchlistSaveSelected(c *gin.Context) {
	sess := sessionFrom(c)
	st := s.stateFor(sess.UserID)

	listings := st.set.SelectedListings()
	if len(listings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing to save"})
		return
	}

	saved := 0
	for _, l := range listings {
		if !l.Identifiable() {
			continue
		}
		if err := s.watch.Save(c.Request.Context(), sess.UserID, l); err != nil {
			if errors.Is(err, watchlist.ErrPersistence) {
				s.respondPersistenceError(c, err)
				return
			}
			continue
		}
		saved++
	}
	st.set.ClearSelection()
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// handleWatchlistRemove 从收藏清单移除一个商品。
//
// DELETE /watchlist/:asin
func (s *Server) handleWatchlistRemove(c *gin.Context) {
	sess := sessionFrom(c)
	asin := c.Param("asin")

	if err := s.watch.Remove(c.Request.Context(), sess.UserID, asin); err != nil {
		s.respondPersistenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": asin})
}

// handleWatchlistSync 立即刷新当前用户收藏清单的行情。
//
// POST /watchlist/sync
func (s *Server) handleWatchlistSync(c *gin.Context) {
	sess := sessionFrom(c)

	if err := s.sched.SyncUser(c.Request.Context(), sess.UserID, sess.Email); err != nil {
		s.logger.Error("watchlist sync failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sync failed, try again later"})
		return
	}

	entries, err := s.watch.List(c.Request.Context(), sess.UserID)
	if err != nil {
		s.respondPersistenceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": len(entries)})
}

type adviseRequest struct {
	Cost float64 `json:"cost"`
}

// handleAdvise 为一个商品生成采购建议。
//
// POST /listings/:asin/advise
//
// 先在当前结果集里找，找不到再查收藏清单。
func (s *Server) handleAdvise(c *gin.Context) {
	var req adviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := sessionFrom(c)
	st := s.stateFor(sess.UserID)
	asin := c.Param("asin")

	var target *model.Listing
	for _, l := range st.set.Listings() {
		if l.ASIN == asin {
			target = &l
			break
		}
	}
	if target == nil {
		entries, err := s.watch.List(c.Request.Context(), sess.UserID)
		if err == nil {
			for _, e := range entries {
				if e.ASIN == asin {
					target = &e.Listing
					break
				}
			}
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}

	cost := req.Cost
	if cost == 0 {
		cost = st.defaultCost()
	}

	c.JSON(http.StatusOK, gin.H{
		"asin":   asin,
		"advice": s.adviser.Advise(c.Request.Context(), *target, cost),
	})
}

func (s *Server) respondPersistenceError(c *gin.Context, err error) {
	s.logger.Error("watchlist persistence failed", slog.String("error", err.Error()))
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, retry the operation", "kind": "persistence"})
}
