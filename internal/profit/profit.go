// Package profit 提供纯函数的利润与 ROI 计算。
//
// 所有函数无副作用、确定性，可以在每次渲染/排序时重复调用。
package profit

// 费用默认值。FBA 配送费采用固定估算值，不按商品尺寸/重量计算
// （Listing 上虽有尺寸字段，这里是有意的简化）。
const (
	DefaultReferralRate   = 0.15 // 平台佣金比例
	DefaultFulfillmentFee = 4.50 // FBA 配送费（固定估算）
)

// Breakdown 表示一个商品的利润拆解。
//
// 它完全由 (price, acquisitionCost, 费率常量) 推导，不含隐藏状态，
// 永不单独持久化。
type Breakdown struct {
	AcquisitionCost float64 `json:"acquisition_cost"` // 进货成本（用户输入）
	ReferralFee     float64 `json:"referral_fee"`     // 平台佣金 = price × rate
	FulfillmentFee  float64 `json:"fulfillment_fee"`  // FBA 配送费（固定）
	NetProfit       float64 `json:"net_profit"`       // 净利润
	ROIPercent      float64 `json:"roi_percent"`      // 投资回报率（%）
	MarginPercent   float64 `json:"margin_percent"`   // 利润率（%）
}

// Compute 根据售价和进货成本计算利润拆解。
//
// 进货成本不做钳制：0 或负数会被原样接受（负成本会产生虚高利润，
// 这是已知边界情况，由调用方决定是否提示）。除法有保护：
// cost <= 0 时 ROI 为 0，price == 0 时 margin 为 0。
//
// 参数:
//
//	price: 商品售价（>= 0）
//	acquisitionCost: 进货成本（任意实数）
//	referralRate: 佣金比例（如 0.15）
//	fulfillmentFee: 配送费（固定值）
//
// 返回值:
//
//	Breakdown: 利润拆解结果
func Compute(price, acquisitionCost, referralRate, fulfillmentFee float64) Breakdown {
	referralFee := price * referralRate
	netProfit := price - acquisitionCost - referralFee - fulfillmentFee

	roi := 0.0
	if acquisitionCost > 0 {
		roi = netProfit / acquisitionCost * 100
	}

	margin := 0.0
	if price > 0 {
		margin = netProfit / price * 100
	}

	return Breakdown{
		AcquisitionCost: acquisitionCost,
		ReferralFee:     referralFee,
		FulfillmentFee:  fulfillmentFee,
		NetProfit:       netProfit,
		ROIPercent:      roi,
		MarginPercent:   margin,
	}
}

// ComputeDefault 使用默认费率计算利润拆解。
func ComputeDefault(price, acquisitionCost float64) Breakdown {
	return Compute(price, acquisitionCost, DefaultReferralRate, DefaultFulfillmentFee)
}
