package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"arbitragescout/internal/api/auth"
	"arbitragescout/internal/api/scheduler"
	"arbitragescout/internal/config"
	"arbitragescout/internal/model"
	"arbitragescout/internal/pkg/ratelimit"
	"arbitragescout/internal/search"
	"arbitragescout/internal/session"
	"arbitragescout/internal/watchlist"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test_secret"

type fakeSearcher struct {
	mu       sync.Mutex
	listings []model.Listing
	err      error
	calls    int
	lastQ    search.Query
}

func (f *fakeSearcher) Run(ctx context.Context, q search.Query) ([]model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

type fakeWatch struct {
	mu      sync.Mutex
	entries map[string][]model.WatchlistEntry
	listErr error
	saveErr error
}

func newFakeWatch() *fakeWatch {
	return &fakeWatch{entries: make(map[string][]model.WatchlistEntry)}
}

func (f *fakeWatch) List(ctx context.Context, userID string) ([]model.WatchlistEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.WatchlistEntry(nil), f.entries[userID]...), nil
}

func (f *fakeWatch) Save(ctx context.Context, userID string, listing model.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	for _, e := range f.entries[userID] {
		if e.ASIN == listing.ASIN {
			return nil
		}
	}
	f.entries[userID] = append(f.entries[userID], model.WatchlistEntry{
		Listing:      listing,
		TrackedPrice: listing.Price,
		SavedAt:      time.Now().UTC(),
	})
	return nil
}

func (f *fakeWatch) Remove(ctx context.Context, userID, asin string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[userID][:0]
	for _, e := range f.entries[userID] {
		if e.ASIN != asin {
			kept = append(kept, e)
		}
	}
	f.entries[userID] = kept
	return nil
}

func (f *fakeWatch) Resync(ctx context.Context, userID, asin string, fresh model.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries[userID] {
		if e.ASIN == asin {
			e.Price = fresh.Price
			e.BSR = fresh.BSR
			f.entries[userID][i] = e
		}
	}
	return nil
}

type fakeCredits struct {
	consumeErr error
	remaining  int
	consumed   int
}

func (f *fakeCredits) Consume(ctx context.Context, sess session.Session) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.consumed++
	return nil
}

func (f *fakeCredits) Remaining(ctx context.Context, sess session.Session) (int, error) {
	return f.remaining, nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]model.Listing
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]model.Listing)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]model.Listing, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ls, ok := f.store[key]
	return ls, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, listings []model.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.store[key] = listings
	return nil
}

type fakeAdviser struct{ advice string }

func (f *fakeAdviser) Advise(ctx context.Context, l model.Listing, acquisitionCost float64) string {
	return f.advice
}

type testEnv struct {
	srv      *Server
	searcher *fakeSearcher
	watch    *fakeWatch
	credits  *fakeCredits
	cache    *fakeCache
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Security.JWTSecret = testSecret
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	searcher := &fakeSearcher{}
	watch := newFakeWatch()
	credits := &fakeCredits{remaining: 5}
	cache := newFakeCache()

	sched := scheduler.NewScheduler(nil, watch, searcher, nil, logger, time.Hour, 1, 10)

	r := gin.New()
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		router:   r,
		auth:     auth.NewHandler(nil, testSecret, logger),
		sched:    sched,
		searcher: searcher,
		watch:    watch,
		credits:  credits,
		cache:    cache,
		limiter:  ratelimit.NewLimiter(nil, logger, "", 0, 0),
		adviser:  &fakeAdviser{advice: "buy it"},
		states:   make(map[string]*userState),
	}
	s.registerRoutes()

	return &testEnv{srv: s, searcher: searcher, watch: watch, credits: credits, cache: cache}
}

func signToken(t *testing.T, userID, email, tier string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"tier":  tier,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.srv.router.ServeHTTP(w, req)
	return w
}

func sampleListings() []model.Listing {
	return []model.Listing{
		{ASIN: "B001", Title: "Widget A", Price: 30, Currency: "USD", BSR: 5000, SalesVolume: "2K+ bought in past month", Rating: 4.5},
		{ASIN: "B002", Title: "Widget B", Price: 15, Currency: "USD", BSR: 80000, SalesVolume: "500+ bought in past month", Rating: 4.0},
		{ASIN: "B003", Title: "Widget C", Price: 60, Currency: "USD", BSR: 400000, Rating: 3.2},
	}
}

func TestSearch_RequiresAuth(t *testing.T) {
	env := newTestServer(t)

	w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSearch_Success(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	w := env.do(t, http.MethodPost, "/search", gin.H{
		"keywords": "widget",
		"market":   "us",
		"category": "aps",
		"cost":     10,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Phase    string          `json:"phase"`
		Count    int             `json:"count"`
		Listings []model.Listing `json:"listings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 3 || len(resp.Listings) != 3 {
		t.Fatalf("expected 3 listings, got count=%d len=%d", resp.Count, len(resp.Listings))
	}
	if env.credits.consumed != 1 {
		t.Fatalf("expected 1 credit consumed, got %d", env.credits.consumed)
	}
	if env.cache.sets != 1 {
		t.Fatalf("expected result cached once, got %d", env.cache.sets)
	}
	if env.searcher.lastQ.Market != "us" {
		t.Fatalf("market not forwarded: %q", env.searcher.lastQ.Market)
	}
}

func TestSearch_CacheHitSkipsProvider(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	body := gin.H{"keywords": "widget", "market": "US"}
	if w := env.do(t, http.MethodPost, "/search", body, token); w.Code != http.StatusOK {
		t.Fatalf("first search failed: %d", w.Code)
	}
	if w := env.do(t, http.MethodPost, "/search", body, token); w.Code != http.StatusOK {
		t.Fatalf("second search failed: %d", w.Code)
	}

	if env.searcher.calls != 1 {
		t.Fatalf("expected provider hit once, got %d", env.searcher.calls)
	}
	// 缓存命中仍然扣额度
	if env.credits.consumed != 2 {
		t.Fatalf("expected 2 credits consumed, got %d", env.credits.consumed)
	}
}

func TestSearch_NoCredits(t *testing.T) {
	env := newTestServer(t)
	env.credits.consumeErr = session.ErrNoCredits
	token := signToken(t, "7", "u@example.com", "free")

	w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, token)
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "credits") {
		t.Fatalf("expected credits kind in body: %s", w.Body.String())
	}
}

func TestSearch_InvalidMarket(t *testing.T) {
	env := newTestServer(t)
	token := signToken(t, "7", "u@example.com", "free")

	w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget", "market": "XX"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.credits.consumed != 0 {
		t.Fatalf("invalid request must not consume credits")
	}
}

func TestSearch_PriceBoundsValidated(t *testing.T) {
	env := newTestServer(t)
	token := signToken(t, "7", "u@example.com", "free")

	min, max := 50.0, 10.0
	w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "w", "min_price": min, "max_price": max}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSearch_UpstreamErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"throttled", fmt.Errorf("wrapped: %w", search.ErrThrottled), http.StatusTooManyRequests, "throttled"},
		{"auth", search.ErrAuth, http.StatusBadGateway, "auth"},
		{"upstream", &search.UpstreamError{Status: 500}, http.StatusBadGateway, "upstream"},
		{"connectivity", &search.ConnectivityError{Err: errors.New("refused")}, http.StatusServiceUnavailable, "connectivity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestServer(t)
			env.searcher.err = tc.err
			token := signToken(t, "7", "u@example.com", "free")

			w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, token)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			var resp struct {
				Kind string `json:"kind"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Kind != tc.kind {
				t.Fatalf("expected kind %q, got %q", tc.kind, resp.Kind)
			}
		})
	}
}

func TestResults_SortAndFilter(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget", "cost": 10}, token); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/results?sort=rank", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Listings []model.Listing `json:"listings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Listings) != 3 || resp.Listings[0].ASIN != "B001" {
		t.Fatalf("rank sort wrong, got %+v", resp.Listings)
	}

	// 需求档过滤
	w = env.do(t, http.MethodGet, "/results?sort=rank&demand=high", nil, token)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Listings) != 1 || resp.Listings[0].ASIN != "B001" {
		t.Fatalf("high demand filter wrong, got %+v", resp.Listings)
	}
}

func TestResults_InvalidSortKey(t *testing.T) {
	env := newTestServer(t)
	token := signToken(t, "7", "u@example.com", "free")

	w := env.do(t, http.MethodGet, "/results?sort=bogus", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestResults_IsolatedPerUser(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	tokenA := signToken(t, "1", "a@example.com", "free")
	tokenB := signToken(t, "2", "b@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, tokenA); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/results", nil, tokenB)
	var resp struct {
		Listings []model.Listing `json:"listings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Listings) != 0 {
		t.Fatalf("user B must not see user A results, got %d", len(resp.Listings))
	}
}

func TestSelectAndExport(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget", "cost": 10}, token); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}

	if w := env.do(t, http.MethodPost, "/results/select", gin.H{"asin": "B002"}, token); w.Code != http.StatusOK {
		t.Fatalf("select failed: %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/results/export", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("export failed: %d %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "arbitrage-scout-") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "B002") {
		t.Fatalf("expected only selected row, got %q", lines[1])
	}

	// 导出后选中集合被清空
	st := env.srv.stateFor("7")
	if st.set.SelectedCount() != 0 {
		t.Fatalf("selection must be cleared after export")
	}
}

func TestExport_NoSelectionExportsAll(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, token); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/results/export?cost=10", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("export failed: %d", w.Code)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
}

func TestExport_EmptyResults(t *testing.T) {
	env := newTestServer(t)
	token := signToken(t, "7", "u@example.com", "free")

	w := env.do(t, http.MethodGet, "/results/export", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestWatchlist_SaveListRemove(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, token); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}

	if w := env.do(t, http.MethodPost, "/watchlist", gin.H{"asin": "B001"}, token); w.Code != http.StatusCreated {
		t.Fatalf("save failed: %d %s", w.Code, w.Body.String())
	}

	// 不在当前结果里的 ASIN
	if w := env.do(t, http.MethodPost, "/watchlist", gin.H{"asin": "B999"}, token); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown asin, got %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/watchlist", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	var resp struct {
		Count   int `json:"count"`
		Entries []struct {
			ASIN       string  `json:"asin"`
			PriceDelta float64 `json:"price_delta"`
			Badge      string  `json:"badge"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Entries[0].ASIN != "B001" {
		t.Fatalf("unexpected watchlist: %+v", resp)
	}
	if resp.Entries[0].Badge != "" {
		t.Fatalf("fresh entry must have no badge, got %q", resp.Entries[0].Badge)
	}

	if w := env.do(t, http.MethodDelete, "/watchlist/B001", nil, token); w.Code != http.StatusOK {
		t.Fatalf("remove failed: %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/watchlist", nil, token)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 {
		t.Fatalf("expected empty watchlist, got %d", resp.Count)
	}
}

func TestWatchlist_BulkSaveSelected(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, token); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}
	env.do(t, http.MethodPost, "/results/select", gin.H{"asin": "B001"}, token)
	env.do(t, http.MethodPost, "/results/select", gin.H{"asin": "B003"}, token)

	w := env.do(t, http.MethodPost, "/watchlist/bulk", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("bulk save failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Saved int `json:"saved"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Saved != 2 {
		t.Fatalf("expected 2 saved, got %d", resp.Saved)
	}

	st := env.srv.stateFor("7")
	if st.set.SelectedCount() != 0 {
		t.Fatalf("selection must be cleared after bulk save")
	}
}

func TestWatchlist_PersistenceFailure(t *testing.T) {
	env := newTestServer(t)
	env.watch.listErr = fmt.Errorf("%w: connection refused", watchlist.ErrPersistence)
	token := signToken(t, "7", "u@example.com", "free")

	w := env.do(t, http.MethodGet, "/watchlist", nil, token)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "persistence") {
		t.Fatalf("expected persistence kind in body: %s", w.Body.String())
	}
}

func TestWatchlist_SyncRefreshesPrices(t *testing.T) {
	env := newTestServer(t)
	token := signToken(t, "7", "u@example.com", "free")

	env.watch.entries["7"] = []model.WatchlistEntry{{
		Listing:      model.Listing{ASIN: "B001", Title: "Widget A", Price: 30, Currency: "USD", BSR: 5000},
		TrackedPrice: 30,
		SavedAt:      time.Now().UTC(),
	}}
	env.searcher.listings = []model.Listing{{ASIN: "B001", Title: "Widget A", Price: 24, Currency: "USD", BSR: 4000}}

	w := env.do(t, http.MethodPost, "/watchlist/sync", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("sync failed: %d %s", w.Code, w.Body.String())
	}

	entries, _ := env.watch.List(context.Background(), "7")
	if entries[0].Price != 24 {
		t.Fatalf("price not refreshed, got %v", entries[0].Price)
	}
	if entries[0].TrackedPrice != 30 {
		t.Fatalf("tracked price must stay, got %v", entries[0].TrackedPrice)
	}
}

func TestAdvise(t *testing.T) {
	env := newTestServer(t)
	env.searcher.listings = sampleListings()
	token := signToken(t, "7", "u@example.com", "free")

	if w := env.do(t, http.MethodPost, "/search", gin.H{"keywords": "widget"}, token); w.Code != http.StatusOK {
		t.Fatalf("seed search failed: %d", w.Code)
	}

	w := env.do(t, http.MethodPost, "/listings/B001/advise", gin.H{"cost": 12}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("advise failed: %d", w.Code)
	}
	var resp struct {
		Advice string `json:"advice"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Advice != "buy it" {
		t.Fatalf("unexpected advice %q", resp.Advice)
	}

	w = env.do(t, http.MethodPost, "/listings/B999/advise", gin.H{"cost": 12}, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown listing, got %d", w.Code)
	}
}

func TestGetConfig(t *testing.T) {
	env := newTestServer(t)
	env.credits.remaining = 3
	token := signToken(t, "7", "u@example.com", "pro")

	w := env.do(t, http.MethodGet, "/config", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Marketplaces []search.Marketplace `json:"marketplaces"`
		Categories   []search.Category    `json:"categories"`
		Tier         string               `json:"tier"`
		Credits      int                  `json:"credits_remaining"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Marketplaces) == 0 || len(resp.Categories) == 0 {
		t.Fatalf("config options missing")
	}
	if resp.Tier != "pro" || resp.Credits != 3 {
		t.Fatalf("unexpected tier/credits: %+v", resp)
	}
}
