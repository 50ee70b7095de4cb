package model

import (
	"time"
)

// UnknownBSR 表示上游未提供排名时使用的哨兵值（排名越大越差）。
const UnknownBSR = 999999

// Listing 表示一次搜索返回的商品条目。
//
// 它是瞬态数据：每次搜索响应重新构建，除非用户显式保存到 Watchlist，
// 否则不会落盘。ASIN 是商品在源平台的唯一标识，用于去重和选中操作；
// ASIN 为空的条目视为不可识别，不能被保存或选中。
type Listing struct {
	ASIN        string  `json:"asin"`         // 平台唯一标识
	Title       string  `json:"title"`        // 商品标题
	ImageURL    string  `json:"image_url"`    // 主图链接
	Price       float64 `json:"price"`        // 当前售价（非负）
	Currency    string  `json:"currency"`     // ISO 货币代码，如 "USD"
	BSR         int     `json:"bsr"`          // Best Seller Rank，越小越热门；缺失用 UnknownBSR
	ReviewCount int     `json:"review_count"` // 评论数
	Rating      float64 `json:"rating"`       // 评分 0.0–5.0
	SalesVolume string  `json:"sales_volume"` // 月销量文本，如 "1K+"，可能为空
	ProductURL  string  `json:"product_url"`  // 商品详情页链接
}

// Identifiable 报告该条目是否具有可用作键的标识。
func (l Listing) Identifiable() bool {
	return l.ASIN != "" && l.ASIN != "N/A"
}

// WatchlistEntry 表示被用户保存追踪的商品。
//
// TrackedPrice 是保存那一刻的价格，只写一次；后续 resync 仅覆盖
// 实时字段（价格、排名、评分、评论数），用于计算价格漂移徽标。
type WatchlistEntry struct {
	Listing
	TrackedPrice float64   `json:"tracked_price"` // 保存时的价格（不可变）
	SavedAt      time.Time `json:"saved_at"`      // 保存时间
}

// PriceDelta 返回当前价格与追踪价格的差值。
//
// 负数表示降价（利好），正数表示涨价，0 表示无变化。
func (e WatchlistEntry) PriceDelta() float64 {
	return e.Price - e.TrackedPrice
}
