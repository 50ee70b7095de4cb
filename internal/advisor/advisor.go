// Package advisor 为单个商品生成采购建议文本。
//
// 外部智能分析服务在生产环境被关掉了（成本原因），这里基于
// 利润测算和需求分级在本地合成建议，接口形状保留：输入一个
// 商品快照，输出一段自由文本。
package advisor

import (
	"context"
	"fmt"
	"strings"

	"arbitragescout/internal/demand"
	"arbitragescout/internal/model"
	"arbitragescout/internal/profit"
)

// DegradedMessage 是完全无法给出建议时的兜底文案。
const DegradedMessage = "Intelligence service offline. Evaluate ROI based on current price and your acquisition cost."

// Advisor 生成采购建议。
type Advisor struct{}

// New 创建 Advisor。
func New() *Advisor {
	return &Advisor{}
}

// Advise 为一个商品生成建议文本。
//
// acquisitionCost 是调用方的进货成本假设。函数是全函数，
// 任何输入都能得到一段文本，不返回错误。
func (a *Advisor) Advise(_ context.Context, l model.Listing, acquisitionCost float64) string {
	b := profit.ComputeDefault(l.Price, acquisitionCost)
	tier := demand.Classify(l.SalesVolume, l.BSR)

	var sb strings.Builder
	fmt.Fprintf(&sb, "At a cost of %.2f against the current price of %.2f, net profit is %.2f per unit (ROI %.1f%%, margin %.1f%%). ",
		acquisitionCost, l.Price, b.NetProfit, b.ROIPercent, b.MarginPercent)

	switch {
	case acquisitionCost <= 0:
		sb.WriteString("Set a realistic acquisition cost before relying on the ROI figure. ")
	case b.NetProfit <= 0:
		sb.WriteString("This listing loses money at your cost assumption; look for a cheaper source or skip it. ")
	case b.ROIPercent >= 50:
		sb.WriteString("Strong ROI for a resale play if the source price holds. ")
	case b.ROIPercent >= 20:
		sb.WriteString("Workable ROI, but fees leave little room for price erosion. ")
	default:
		sb.WriteString("Thin ROI; a small price drop on the listing wipes out the profit. ")
	}

	switch tier {
	case demand.TierHigh:
		sb.WriteString("Demand looks high, so inventory should turn quickly.")
	case demand.TierMedium:
		sb.WriteString("Demand is moderate; avoid committing to deep stock.")
	default:
		sb.WriteString("Demand looks low; treat this as a test buy at most.")
	}

	if l.Rating > 0 && l.Rating < 3.5 {
		fmt.Fprintf(&sb, " Note the weak %.1f-star rating; returns may eat into the margin.", l.Rating)
	}

	return sb.String()
}
