package search

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"arbitragescout/internal/model"
)

// RawProduct 是上游返回的单条原始记录。字段名跟随上游，
// 所有字段都可能缺失，归一化时逐项兜底。
type RawProduct struct {
	ASIN        string          `json:"asin"`
	Title       string          `json:"product_title"`
	Photo       string          `json:"product_photo"`
	Price       json.RawMessage `json:"product_price"` // 可能是数字也可能是 "$12.99" 这样的文本
	Currency    string          `json:"currency"`
	NumRatings  json.RawMessage `json:"product_num_ratings"`
	StarRating  json.RawMessage `json:"product_star_rating"`
	SalesVolume string          `json:"sales_volume"`
	ProductURL  string          `json:"product_url"`
}

// Normalize 把一条原始记录归一化为内部 Listing。
//
// 全函数、永不失败：每个缺失字段都有确定的兜底值。缺失标识的
// 条目得到占位符 "N/A"，后续的保存/选中操作会拒绝它们。
func Normalize(p RawProduct) model.Listing {
	asin := p.ASIN
	if asin == "" {
		asin = "N/A"
	}
	title := p.Title
	if title == "" {
		title = "Untitled Product"
	}
	image := p.Photo
	if image == "" {
		image = fmt.Sprintf("https://picsum.photos/seed/%s/300/300", asin)
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}
	productURL := p.ProductURL
	if productURL == "" {
		productURL = "https://www.amazon.com/dp/" + asin
	}
	volume := p.SalesVolume
	if volume == "" {
		volume = "N/A"
	}

	return model.Listing{
		ASIN:        asin,
		Title:       title,
		ImageURL:    image,
		Price:       parsePrice(p.Price),
		Currency:    currency,
		BSR:         rankFromVolume(p.SalesVolume),
		ReviewCount: int(parseLooseNumber(p.NumRatings)),
		Rating:      parseLooseNumber(p.StarRating),
		SalesVolume: volume,
		ProductURL:  productURL,
	}
}

// NormalizeAll 归一化一批原始记录，保持顺序。
func NormalizeAll(products []RawProduct) []model.Listing {
	out := make([]model.Listing, len(products))
	for i, p := range products {
		out[i] = Normalize(p)
	}
	return out
}

// parsePrice 从混合表示里解析价格：数字直接用，文本剔除
// 非数字非小数点字符后解析，失败兜底为 0。
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLooseNumber 解析上游时而给数字时而给字符串的数值字段。
func parseLooseNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// rankFromVolume 在上游不给排名时，用销量文本反推一个排名：
// 销量越高排名数值越小。缺失销量用 UnknownBSR 哨兵。
//
// 反推公式: max(1, 1000000 - 基数×倍率)，倍率只认 "k"。
func rankFromVolume(volume string) int {
	if volume == "" {
		return model.UnknownBSR
	}
	multiplier := 1
	if strings.Contains(strings.ToLower(volume), "k") {
		multiplier = 1000
	}

	base := 1
	start := -1
	for i, r := range volume {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			base, _ = strconv.Atoi(volume[start:i])
			break
		}
	}
	if start >= 0 && base == 1 {
		if v, err := strconv.Atoi(volume[start:]); err == nil {
			base = v
		}
	}

	rank := 1000000 - base*multiplier
	if rank < 1 {
		rank = 1
	}
	return rank
}
