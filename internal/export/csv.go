// Package export 把选中的商品连同利润计算编码为 CSV 文本。
package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"arbitragescout/internal/model"
	"arbitragescout/internal/profit"
)

// header 是固定的表头行。
var header = []string{"asin", "title", "price", "bsr", "sales_volume", "roi", "profit", "url"}

// EncodeCSV 把商品列表编码为一段 CSV 文本。
//
// ROI/利润按调用方传入的全局进货成本计算（一位小数加 "%" 后缀 /
// 两位小数），不读取任何 UI 里逐项编辑过的成本；需要逐项成本时
// 使用 EncodeCSVWithCosts。标题等文本字段按标准 CSV 规则转义
// （内嵌引号加倍并整体加引号），数字字段不加引号。
//
// 结果集规模在几十条以内，直接拼接整段文本返回，不做流式输出。
func EncodeCSV(listings []model.Listing, acquisitionCost float64) (string, error) {
	return EncodeCSVWithCosts(listings, acquisitionCost, nil)
}

// EncodeCSVWithCosts 同 EncodeCSV，但允许用 costs 按 ASIN 覆盖
// 个别商品的进货成本。
func EncodeCSVWithCosts(listings []model.Listing, acquisitionCost float64, costs map[string]float64) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, l := range listings {
		cost := acquisitionCost
		if override, ok := costs[l.ASIN]; ok {
			cost = override
		}
		b := profit.ComputeDefault(l.Price, cost)

		record := []string{
			l.ASIN,
			l.Title,
			strconv.FormatFloat(l.Price, 'f', 2, 64),
			strconv.Itoa(l.BSR),
			l.SalesVolume,
			strconv.FormatFloat(b.ROIPercent, 'f', 1, 64) + "%",
			strconv.FormatFloat(b.NetProfit, 'f', 2, 64),
			l.ProductURL,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
