package catalog

import "testing"

func TestCategoryManagerFallsBackToDefaults(t *testing.T) {
	m := NewCategoryManager("/nonexistent/path/categories.yaml")

	if !m.ShouldDeferLoading(CategoryKnowledge) {
		t.Fatal("expected knowledge category to defer loading by default")
	}
	if m.ShouldDeferLoading(CategoryWeb) {
		t.Fatal("expected web category to load immediately by default")
	}
	if m.Priority(CategoryWeb) != PriorityHigh {
		t.Fatalf("expected web priority HIGH, got %v", m.Priority(CategoryWeb))
	}
	if m.DisplayName(CategoryMeta) == "" {
		t.Fatal("expected a non-empty display name for meta")
	}
	if got := m.InitialToolLimit(); got != 10 {
		t.Fatalf("expected default initial tool limit 10, got %d", got)
	}
	if !m.IsToolSearchEnabled() {
		t.Fatal("expected tool search enabled by default")
	}

	preload := m.PreloadCategories()
	found := false
	for _, c := range preload {
		if c == CategoryMeta {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected meta in default preload list, got %v", preload)
	}
}

func TestCategoryManagerStatisticsReflectsDefaults(t *testing.T) {
	m := NewCategoryManager("/nonexistent/path/categories.yaml")
	stats := m.Statistics()
	if stats.TotalCategories != 7 {
		t.Fatalf("expected 7 categories, got %d", stats.TotalCategories)
	}
	if stats.HighPriorityCount == 0 {
		t.Fatal("expected at least one HIGH priority category")
	}
}
