// Package results 管理一次搜索周期内的商品集合：
// 排序、需求过滤、批量选中，以及搜索状态机。
package results

import (
	"sort"
	"sync"

	"arbitragescout/internal/demand"
	"arbitragescout/internal/model"
	"arbitragescout/internal/profit"
)

// Phase 表示搜索周期的状态。
//
// 状态机: Idle → Searching → (Populated | Empty | Failed) → Idle（下次搜索）。
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhasePopulated Phase = "populated"
	PhaseEmpty     Phase = "empty"
	PhaseFailed    Phase = "failed"
)

// SortKey 是排序方式的封闭枚举。无效键在请求解析层被拒绝，
// 核心逻辑不需要运行时校验。
type SortKey string

const (
	SortRelevance SortKey = "relevance" // 保持上游顺序
	SortRank      SortKey = "rank"      // BSR 升序（越小越热门）
	SortPrice     SortKey = "price"     // 价格降序
	SortROI       SortKey = "roi"       // ROI 降序（按会话默认成本计算）
)

// ParseSortKey 解析请求参数里的排序键。
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortRelevance, "":
		return SortRelevance, true
	case SortRank:
		return SortRank, true
	case SortPrice:
		return SortPrice, true
	case SortROI:
		return SortROI, true
	default:
		return SortRelevance, false
	}
}

// Set 持有当前搜索结果与选中集合。
//
// 单个用户会话内是单一所有者，但 HTTP 处理器可能并发访问，
// 因此内部用读写锁保护。generation 用于丢弃过期的在途搜索响应：
// 新搜索开始后，旧响应到达时不再覆盖结果。
type Set struct {
	mu         sync.RWMutex
	phase      Phase
	generation uint64
	listings   []model.Listing
	selected   map[string]struct{}
	lastErr    error
}

// NewSet 创建一个空的结果集（Idle 状态）。
func NewSet() *Set {
	return &Set{
		phase:    PhaseIdle,
		selected: make(map[string]struct{}),
	}
}

// BeginSearch 进入 Searching 状态并返回本次搜索的代号。
//
// 返回的 generation 必须在 Complete/Fail 时传回；如果期间又有
// 新搜索开始，旧代号的结果会被静默丢弃。
func (s *Set) BeginSearch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.phase = PhaseSearching
	return s.generation
}

// Complete 用新的搜索结果替换当前集合。
//
// 替换总是清空选中集合（旧的 ASIN 对新结果不再有意义）。
// 过期 generation 的调用返回 false 且不产生任何效果。
func (s *Set) Complete(generation uint64, listings []model.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}

	s.listings = make([]model.Listing, len(listings))
	copy(s.listings, listings)
	s.selected = make(map[string]struct{})
	s.lastErr = nil
	if len(listings) == 0 {
		s.phase = PhaseEmpty
	} else {
		s.phase = PhasePopulated
	}
	return true
}

// Fail 记录搜索失败。过期 generation 返回 false。
func (s *Set) Fail(generation uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.phase = PhaseFailed
	s.lastErr = err
	return true
}

// Phase 返回当前状态。
func (s *Set) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Err 返回最近一次失败的错误（没有则为 nil）。
func (s *Set) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Listings 返回当前集合的副本（保持上游顺序）。
func (s *Set) Listings() []model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Listing, len(s.listings))
	copy(out, s.listings)
	return out
}

// View 返回按 key 排序、按 tier 过滤后的工作副本。
//
// 原集合永远不被原地修改。排序是稳定的：相同排序值的商品保持
// 原有相对顺序。ROI 排序使用会话的默认进货成本逐项计算。
func (s *Set) View(key SortKey, tier demand.Tier, acquisitionCost float64) []model.Listing {
	working := s.Listings()

	switch key {
	case SortRelevance:
		// 保持上游顺序
	case SortRank:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].BSR < working[j].BSR
		})
	case SortPrice:
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].Price > working[j].Price
		})
	case SortROI:
		sort.SliceStable(working, func(i, j int) bool {
			ri := profit.ComputeDefault(working[i].Price, acquisitionCost).ROIPercent
			rj := profit.ComputeDefault(working[j].Price, acquisitionCost).ROIPercent
			return ri > rj
		})
	}

	if tier == demand.TierAll {
		return working
	}
	filtered := working[:0]
	for _, l := range working {
		if demand.Matches(tier, l.SalesVolume, l.BSR) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// ToggleSelect 切换一个 ASIN 的选中状态。
//
// 不在集合中则加入，已在则移除（连续两次切换回到原状态）。
// 不可识别的条目（ASIN 为空或占位符）不会被选中，返回 false。
func (s *Set) ToggleSelect(asin string) bool {
	if asin == "" || asin == "N/A" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[asin]; ok {
		delete(s.selected, asin)
	} else {
		s.selected[asin] = struct{}{}
	}
	return true
}

// ClearSelection 清空选中集合（批量操作消费之后调用）。
func (s *Set) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// IsSelected 报告 ASIN 是否被选中。
func (s *Set) IsSelected(asin string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[asin]
	return ok
}

// SelectedCount 返回选中数量。
func (s *Set) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// SelectedListings 返回选中的商品（保持集合内顺序）；
// 没有任何选中时返回全部，方便"未勾选则导出全部"的批量语义。
func (s *Set) SelectedListings() []model.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.selected) == 0 {
		out := make([]model.Listing, len(s.listings))
		copy(out, s.listings)
		return out
	}
	out := make([]model.Listing, 0, len(s.selected))
	for _, l := range s.listings {
		if _, ok := s.selected[l.ASIN]; ok {
			out = append(out, l)
		}
	}
	return out
}
