package results

import (
	"errors"
	"reflect"
	"testing"

	"arbitragescout/internal/demand"
	"arbitragescout/internal/model"
)

func sampleListings() []model.Listing {
	return []model.Listing{
		{ASIN: "A1", Title: "Widget A", Price: 20, BSR: 5000, SalesVolume: "2K+"},
		{ASIN: "A2", Title: "Widget B", Price: 35, BSR: 90000, SalesVolume: "500"},
		{ASIN: "A3", Title: "Widget C", Price: 12, BSR: 400000, SalesVolume: "50"},
		{ASIN: "A4", Title: "Widget D", Price: 20, BSR: 1200, SalesVolume: "3K+"},
	}
}

func asins(ls []model.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ASIN
	}
	return out
}

func TestSet_StateMachine(t *testing.T) {
	s := NewSet()
	if s.Phase() != PhaseIdle {
		t.Fatalf("expected idle, got %v", s.Phase())
	}

	gen := s.BeginSearch()
	if s.Phase() != PhaseSearching {
		t.Fatalf("expected searching, got %v", s.Phase())
	}

	if !s.Complete(gen, sampleListings()) {
		t.Fatalf("expected complete to apply")
	}
	if s.Phase() != PhasePopulated {
		t.Fatalf("expected populated, got %v", s.Phase())
	}

	gen = s.BeginSearch()
	if !s.Complete(gen, nil) {
		t.Fatalf("expected complete to apply")
	}
	if s.Phase() != PhaseEmpty {
		t.Fatalf("expected empty, got %v", s.Phase())
	}

	gen = s.BeginSearch()
	if !s.Fail(gen, errors.New("boom")) {
		t.Fatalf("expected fail to apply")
	}
	if s.Phase() != PhaseFailed || s.Err() == nil {
		t.Fatalf("expected failed with error")
	}
}

func TestSet_StaleGenerationDiscarded(t *testing.T) {
	s := NewSet()
	old := s.BeginSearch()
	fresh := s.BeginSearch()

	if s.Complete(old, sampleListings()) {
		t.Fatalf("stale completion must be discarded")
	}
	if !s.Complete(fresh, sampleListings()[:1]) {
		t.Fatalf("fresh completion must apply")
	}
	if len(s.Listings()) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(s.Listings()))
	}
}

func TestSet_ReplaceClearsSelection(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	s.ToggleSelect("A1")
	s.ToggleSelect("A2")
	if s.SelectedCount() != 2 {
		t.Fatalf("expected 2 selected")
	}

	gen = s.BeginSearch()
	s.Complete(gen, sampleListings())
	if s.SelectedCount() != 0 {
		t.Fatalf("replace must clear selection, got %d", s.SelectedCount())
	}
}

func TestSet_ToggleSelect(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	if !s.ToggleSelect("A1") || !s.IsSelected("A1") {
		t.Fatalf("expected A1 selected")
	}
	if !s.ToggleSelect("A1") || s.IsSelected("A1") {
		t.Fatalf("double toggle must deselect")
	}
	if s.ToggleSelect("") || s.ToggleSelect("N/A") {
		t.Fatalf("unidentifiable listings must not be selectable")
	}
}

func TestSet_ViewSortRankAscending(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	got := asins(s.View(SortRank, demand.TierAll, 10))
	want := []string{"A4", "A1", "A2", "A3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rank sort = %v, want %v", got, want)
	}
}

func TestSet_ViewSortStability(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	// A1 和 A4 价格相同（ROI 也相同），必须保持原有相对顺序
	// ROI 降序: A2(35) > A1(20) == A4(20) > A3(12)
	got := asins(s.View(SortROI, demand.TierAll, 10))
	want := []string{"A2", "A1", "A4", "A3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("roi sort = %v, want %v", got, want)
	}

	// 对已排序序列再次排序应得到完全相同的序列（幂等）
	again := asins(s.View(SortROI, demand.TierAll, 10))
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("sort not idempotent: %v vs %v", got, again)
	}
}

func TestSet_ViewDoesNotMutate(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	before := asins(s.Listings())
	_ = s.View(SortPrice, demand.TierAll, 10)
	after := asins(s.Listings())
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("View must not mutate the underlying listings: %v vs %v", before, after)
	}
}

func TestSet_FilterByDemand(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	all := s.View(SortRelevance, demand.TierAll, 0)
	if !reflect.DeepEqual(asins(all), []string{"A1", "A2", "A3", "A4"}) {
		t.Fatalf("TierAll must be the identity filter, got %v", asins(all))
	}

	high := asins(s.View(SortRelevance, demand.TierHigh, 0))
	if !reflect.DeepEqual(high, []string{"A1", "A4"}) {
		t.Fatalf("high filter = %v", high)
	}
	low := asins(s.View(SortRelevance, demand.TierLow, 0))
	if !reflect.DeepEqual(low, []string{"A3"}) {
		t.Fatalf("low filter = %v", low)
	}
}

func TestSet_SelectedListings(t *testing.T) {
	s := NewSet()
	gen := s.BeginSearch()
	s.Complete(gen, sampleListings())

	// 无选中时返回全部
	if len(s.SelectedListings()) != 4 {
		t.Fatalf("expected all listings when nothing selected")
	}

	s.ToggleSelect("A2")
	s.ToggleSelect("A4")
	got := asins(s.SelectedListings())
	if !reflect.DeepEqual(got, []string{"A2", "A4"}) {
		t.Fatalf("selected = %v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	if k, ok := ParseSortKey(""); !ok || k != SortRelevance {
		t.Fatalf("empty key should default to relevance")
	}
	if _, ok := ParseSortKey("roi"); !ok {
		t.Fatalf("roi is valid")
	}
	if _, ok := ParseSortKey("bogus"); ok {
		t.Fatalf("bogus key must be rejected")
	}
}
