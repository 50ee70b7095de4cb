// Package demand 根据销量文本与 BSR 排名对商品做粗粒度的需求分级。
package demand

import (
	"strconv"
	"strings"

	"arbitragescout/internal/model"
)

// Tier 表示需求等级。
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"

	// TierAll 是过滤器的恒等哨兵，匹配任意等级。
	TierAll Tier = "ALL"
)

// 分级阈值。
const (
	highVolume   = 1000   // 月销 >= 1000 视为高需求
	mediumVolume = 100    // 月销 >= 100 视为中需求
	highRank     = 25000  // BSR <= 25k 视为高需求
	mediumRank   = 150000 // BSR <= 150k 视为中需求
)

// ParseVolume 把销量文本解析为月销量估算值。
//
// 规则：剔除所有非数字、非小数点字符得到数字部分，再根据是否包含
// "k"/"K"（×1000）或 "m"/"M"（×1000000）放大。空串或无法解析时
// 返回 0，不报错。
//
// 例: "1.5K" -> 1500, "2M+" -> 2000000, "400+" -> 400, "N/A" -> 0。
func ParseVolume(label string) float64 {
	if label == "" || label == "N/A" {
		return 0
	}
	lower := strings.ToLower(label)

	var b strings.Builder
	for _, r := range lower {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	num, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(lower, "k"):
		return num * 1_000
	case strings.Contains(lower, "m"):
		return num * 1_000_000
	}
	return num
}

// Classify 把销量文本与排名映射为需求等级。
//
// 全函数：任何输入都会返回确定的等级，缺失数据走默认值
// （排名缺失按 model.UnknownBSR，销量缺失按 0）。HIGH 判定优先，
// 满足 HIGH 的商品不会因为同时命中 MEDIUM 的排名区间而降级。
func Classify(salesVolume string, bsr int) Tier {
	volume := ParseVolume(salesVolume)
	if bsr <= 0 {
		bsr = model.UnknownBSR
	}

	switch {
	case volume >= highVolume || bsr <= highRank:
		return TierHigh
	case (volume >= mediumVolume && volume < highVolume) || (bsr > highRank && bsr <= mediumRank):
		return TierMedium
	default:
		return TierLow
	}
}

// Matches 报告商品是否落在指定等级；TierAll 匹配一切。
func Matches(filter Tier, salesVolume string, bsr int) bool {
	if filter == TierAll {
		return true
	}
	return Classify(salesVolume, bsr) == filter
}

// ParseTier 把请求参数解析为等级；无效值回落到 TierAll。
func ParseTier(s string) Tier {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case TierHigh:
		return TierHigh
	case TierMedium:
		return TierMedium
	case TierLow:
		return TierLow
	default:
		return TierAll
	}
}
