package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"arbitragescout/internal/model"
)

// ProviderRequest 是发给上游搜索接口的有效查询。
type ProviderRequest struct {
	Query    string
	Category string
	Market   string
	Page     int
}

// Provider 是上游搜索接口的抽象，方便测试时注入假实现。
type Provider interface {
	Search(ctx context.Context, req ProviderRequest) ([]RawProduct, error)
}

// Query 是用户在搜索表单里填的筛选条件。
type Query struct {
	Keywords string
	Market   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Page     int
}

// Orchestrator 负责一次完整的搜索：合成有效查询、调上游、
// 归一化、按价格区间做客户端侧兜底过滤。
type Orchestrator struct {
	provider Provider
	logger   *slog.Logger
}

// NewOrchestrator 创建搜索编排器。
func NewOrchestrator(provider Provider, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{provider: provider, logger: logger}
}

// buildQuery 把用户筛选条件合成为上游能理解的查询文本。
//
// 规则：无关键词但选了具体类目 → "best sellers in <类目名>"；
// 关键词和类目都有 → "<关键词> in <类目名>"；两者都无 →
// 通用热销查询。给了价格区间时再追加一段价格上下文，引导
// 上游返回接近区间的结果（不保证，之后还有客户端侧过滤）。
func buildQuery(q Query) string {
	keywords := strings.TrimSpace(q.Keywords)
	categoryName := CategoryName(q.Category)

	query := keywords
	switch {
	case keywords == "" && q.Category != CategoryAll && categoryName != "":
		query = "best sellers in " + categoryName
	case keywords != "" && q.Category != CategoryAll && categoryName != "":
		query = keywords + " in " + categoryName
	case keywords == "":
		query = "top trending products"
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		min := 0.0
		if q.MinPrice != nil {
			min = *q.MinPrice
		}
		max := "any"
		if q.MaxPrice != nil {
			max = fmt.Sprintf("%g", *q.MaxPrice)
		}
		query += fmt.Sprintf(" price %g to %s", min, max)
	}
	return query
}

// Run 执行一次搜索并返回归一化后的商品列表。
//
// 上游的失败原样向上传递（限流/鉴权/上游/网络四类），这里不
// 做重试。空结果不是错误，由调用方的状态机处理。
func (o *Orchestrator) Run(ctx context.Context, q Query) ([]model.Listing, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Market == "" {
		q.Market = "US"
	}
	if q.Category == "" {
		q.Category = CategoryAll
	}

	req := ProviderRequest{
		Query:    buildQuery(q),
		Category: q.Category,
		Market:   strings.ToUpper(q.Market),
		Page:     q.Page,
	}

	raw, err := o.provider.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	listings := NormalizeAll(raw)

	// 上游不一定在服务端尊重价格区间，这里兜底过滤一遍
	if q.MinPrice != nil || q.MaxPrice != nil {
		filtered := listings[:0]
		for _, l := range listings {
			if q.MinPrice != nil && l.Price < *q.MinPrice {
				continue
			}
			if q.MaxPrice != nil && l.Price > *q.MaxPrice {
				continue
			}
			filtered = append(filtered, l)
		}
		listings = filtered
	}

	o.logger.Info("search completed",
		"query", req.Query,
		"market", req.Market,
		"page", req.Page,
		"results", len(listings))
	return listings, nil
}
