package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client 是上游商品搜索接口的 HTTP 客户端。
//
// 上游是一个 RapidAPI 风格的 JSON 接口：GET /search，凭证放在
// x-rapidapi-key / x-rapidapi-host 请求头里。Client 只负责传输和
// 状态码分类，字段归一化交给 Normalize。
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	key        string
	logger     *slog.Logger
}

// ClientOptions 是构造 Client 需要的配置。
type ClientOptions struct {
	// Host 是上游主机名，同时用于拼 URL 和 x-rapidapi-host 头。
	Host string
	// Key 是接口密钥。
	Key string
	// Timeout 是单次请求的超时，零值用 15s。
	Timeout time.Duration
	// BaseURL 覆盖请求地址（测试用），为空时用 https://<Host>。
	BaseURL string
}

// NewClient 创建搜索客户端。
func NewClient(opts ClientOptions, logger *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://" + opts.Host
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		host:       opts.Host,
		key:        opts.Key,
		logger:     logger,
	}
}

// envelope 是上游响应的外层结构，只取需要的字段。
type envelope struct {
	Data struct {
		Products []RawProduct `json:"products"`
	} `json:"data"`
}

// Search 调用上游搜索接口并返回原始商品记录。
//
// 参数:
//   - ctx: 请求上下文
//   - req: 已合成好的查询（见 Orchestrator.buildQuery）
//
// 返回值:
//   - []RawProduct: 上游原始记录，保持上游顺序
//   - error: 限流/鉴权/上游/网络四类之一（见 errors.go）
func (c *Client) Search(ctx context.Context, req ProviderRequest) ([]RawProduct, error) {
	q := url.Values{}
	q.Set("query", req.Query)
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("country", req.Market)
	q.Set("sort_by", "RELEVANCE")
	q.Set("product_condition", "ALL")
	if req.Category != "" && req.Category != CategoryAll {
		q.Set("category_id", req.Category)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("x-rapidapi-key", c.key)
	httpReq.Header.Set("x-rapidapi-host", c.host)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("search upstream returned non-success",
			"status", resp.StatusCode,
			"query", req.Query,
			"elapsed", time.Since(started))
		return nil, classifyStatus(resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	c.logger.Debug("search upstream responded",
		"products", len(env.Data.Products),
		"elapsed", time.Since(started))
	return env.Data.Products, nil
}
