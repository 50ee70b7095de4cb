package search

import "strings"

// CategoryAll 是"全部类目"的哨兵值，表示不附加类目条件。
const CategoryAll = "aps"

// Marketplace 描述一个支持的站点。
type Marketplace struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
}

// Category 是上游搜索接口认识的类目。
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Marketplaces 是全部支持的站点，按区域分组排列。
var Marketplaces = []Marketplace{
	// 北美
	{Code: "US", Name: "United States", Currency: "USD", Symbol: "$"},
	{Code: "CA", Name: "Canada", Currency: "CAD", Symbol: "C$"},
	{Code: "MX", Name: "Mexico", Currency: "MXN", Symbol: "$"},
	// 欧洲
	{Code: "GB", Name: "United Kingdom", Currency: "GBP", Symbol: "£"},
	{Code: "DE", Name: "Germany", Currency: "EUR", Symbol: "€"},
	{Code: "FR", Name: "France", Currency: "EUR", Symbol: "€"},
	{Code: "IT", Name: "Italy", Currency: "EUR", Symbol: "€"},
	{Code: "ES", Name: "Spain", Currency: "EUR", Symbol: "€"},
	{Code: "NL", Name: "Netherlands", Currency: "EUR", Symbol: "€"},
	{Code: "PL", Name: "Poland", Currency: "PLN", Symbol: "zł"},
	{Code: "SE", Name: "Sweden", Currency: "SEK", Symbol: "kr"},
	{Code: "BE", Name: "Belgium", Currency: "EUR", Symbol: "€"},
	{Code: "TR", Name: "Turkey", Currency: "TRY", Symbol: "₺"},
	// 亚太
	{Code: "JP", Name: "Japan", Currency: "JPY", Symbol: "¥"},
	{Code: "IN", Name: "India", Currency: "INR", Symbol: "₹"},
	{Code: "AU", Name: "Australia", Currency: "AUD", Symbol: "A$"},
	{Code: "SG", Name: "Singapore", Currency: "SGD", Symbol: "S$"},
	// 中东与非洲
	{Code: "AE", Name: "United Arab Emirates", Currency: "AED", Symbol: "د.إ"},
	{Code: "SA", Name: "Saudi Arabia", Currency: "SAR", Symbol: "SR"},
	{Code: "EG", Name: "Egypt", Currency: "EGP", Symbol: "E£"},
	// 南美
	{Code: "BR", Name: "Brazil", Currency: "BRL", Symbol: "R$"},
}

// Categories 是支持的类目列表，第一项是"全部"哨兵。
var Categories = []Category{
	{ID: CategoryAll, Name: "All Departments"},
	{ID: "electronics", Name: "Electronics"},
	{ID: "computers", Name: "Computers & Accessories"},
	{ID: "smart-home", Name: "Smart Home"},
	{ID: "arts-crafts", Name: "Arts, Crafts & Sewing"},
	{ID: "automotive", Name: "Automotive"},
	{ID: "baby-products", Name: "Baby"},
	{ID: "beauty", Name: "Beauty & Personal Care"},
	{ID: "luxury-beauty", Name: "Luxury Beauty"},
	{ID: "books", Name: "Books"},
	{ID: "mobile", Name: "Cell Phones & Accessories"},
	{ID: "fashion", Name: "Clothing, Shoes & Jewelry"},
	{ID: "collectibles", Name: "Collectibles & Fine Art"},
	{ID: "grocery", Name: "Grocery & Gourmet Food"},
	{ID: "hpc", Name: "Health, Household & Baby Care"},
	{ID: "home-garden", Name: "Home & Kitchen"},
	{ID: "industrial", Name: "Industrial & Scientific"},
	{ID: "luggage", Name: "Luggage & Travel Gear"},
	{ID: "movies-tv", Name: "Movies & TV"},
	{ID: "music", Name: "Music, CDs & Vinyl"},
	{ID: "musical-instruments", Name: "Musical Instruments"},
	{ID: "office-products", Name: "Office Products"},
	{ID: "garden", Name: "Patio, Lawn & Garden"},
	{ID: "pet-supplies", Name: "Pet Supplies"},
	{ID: "software", Name: "Software"},
	{ID: "sporting-goods", Name: "Sports & Outdoors"},
	{ID: "tools", Name: "Tools & Home Improvement"},
	{ID: "toys-and-games", Name: "Toys & Games"},
	{ID: "videogames", Name: "Video Games"},
	{ID: "appliances", Name: "Appliances"},
	{ID: "handmade", Name: "Handmade Products"},
}

// CategoryName 返回类目 id 对应的展示名；未知 id 返回空串。
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// ValidMarket 报告站点代码是否被支持（不区分大小写）。
func ValidMarket(code string) bool {
	code = strings.ToUpper(code)
	for _, m := range Marketplaces {
		if m.Code == code {
			return true
		}
	}
	return false
}

// CurrencySymbol 返回货币代码对应的符号，未知货币兜底为 "$"。
func CurrencySymbol(currencyCode string) string {
	for _, m := range Marketplaces {
		if m.Currency == currencyCode {
			return m.Symbol
		}
	}
	return "$"
}
