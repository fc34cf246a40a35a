package store

import (
	"path/filepath"
	"testing"
	"time"

	"mainyu/pkg/headline"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "headlines.db"), false)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	if err := st.InitSchema(); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	return st
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T, st *Store, rows []headline.Headline) {
	t.Helper()
	n, err := st.InsertHeadlines(rows)
	if err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	if n != len(rows) {
		t.Fatalf("seeded %d rows, want %d", n, len(rows))
	}
}

func TestInsertDeduplicatesByURL(t *testing.T) {
	st := newTestStore(t)

	rows := []headline.Headline{
		{Title: "AI breakthrough", URL: "https://example.com/a", Date: day("2025-08-01")},
		{Title: "AI breakthrough again", URL: "https://example.com/a", Date: day("2025-08-02")},
	}
	n, err := st.InsertHeadlines(rows)
	if err != nil {
		t.Fatalf("InsertHeadlines: %v", err)
	}
	if n != 1 {
		t.Fatalf("inserted %d rows, want 1 (duplicate URL skipped)", n)
	}
}

func TestInsertCategorizesUntaggedRows(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "日銀が金利を発表", URL: "https://example.com/econ", Date: day("2025-08-01")},
	})

	rows, err := st.ListByCategory(headline.CategoryEconomy)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d economy rows, want 1", len(rows))
	}
}

func TestRecentDates(t *testing.T) {
	st := newTestStore(t)

	dates, err := st.RecentDates(5)
	if err != nil {
		t.Fatalf("RecentDates on empty store: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("expected no dates, got %v", dates)
	}

	seed(t, st, []headline.Headline{
		{Title: "a", URL: "u1", Date: day("2025-07-28")},
		{Title: "b", URL: "u2", Date: day("2025-07-30")},
		{Title: "c", URL: "u3", Date: day("2025-07-30")},
		{Title: "d", URL: "u4", Date: day("2025-08-01")},
		{Title: "e", URL: "u5", Date: day("2025-07-25")},
	})

	dates, err = st.RecentDates(2)
	if err != nil {
		t.Fatalf("RecentDates: %v", err)
	}
	want := []string{"2025-08-01", "2025-07-30"}
	if len(dates) != len(want) {
		t.Fatalf("got %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestSearchTitlesCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "AI breakthrough", URL: "u1", Date: day("2025-08-01")},
		{Title: "Weather alert", URL: "u2", Date: day("2025-07-30")},
	})

	for _, keyword := range []string{"ai", "AI", "Ai"} {
		rows, err := st.SearchTitles(keyword, nil, 0)
		if err != nil {
			t.Fatalf("SearchTitles(%q): %v", keyword, err)
		}
		if len(rows) != 1 || rows[0].Title != "AI breakthrough" {
			t.Fatalf("SearchTitles(%q) = %v", keyword, rows)
		}
	}
}

func TestSearchTitlesCaseSensitiveStore(t *testing.T) {
	st, err := New(filepath.Join(t.TempDir(), "cs.db"), true)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer func() { _ = st.Close() }()
	if err := st.InitSchema(); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	seed(t, st, []headline.Headline{
		{Title: "AI breakthrough", URL: "u1", Date: day("2025-08-01")},
	})

	rows, err := st.SearchTitles("ai", nil, 0)
	if err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("case-sensitive store matched %v for lowercase keyword", rows)
	}

	rows, err = st.SearchTitles("AI", nil, 0)
	if err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("case-sensitive store missed exact-case keyword")
	}
}

func TestSearchTitlesDateRestriction(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "AI old", URL: "u1", Date: day("2025-07-01")},
		{Title: "AI new", URL: "u2", Date: day("2025-08-01")},
	})

	rows, err := st.SearchTitles("AI", []string{"2025-08-01"}, 0)
	if err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "AI new" {
		t.Fatalf("date restriction not applied: %v", rows)
	}
}

func TestSearchTitlesOrderingAndLimit(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "AI funding", URL: "u1", Date: day("2025-07-30")},
		{Title: "AI breakthrough", URL: "u2", Date: day("2025-08-01")},
		{Title: "AI policy", URL: "u3", Date: day("2025-08-01")},
	})

	rows, err := st.SearchTitles("AI", nil, 0)
	if err != nil {
		t.Fatalf("SearchTitles: %v", err)
	}
	want := []string{"AI breakthrough", "AI policy", "AI funding"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i].Title != want[i] {
			t.Errorf("rows[%d] = %s, want %s", i, rows[i].Title, want[i])
		}
	}

	limited, err := st.SearchTitles("AI", nil, 2)
	if err != nil {
		t.Fatalf("SearchTitles with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("limit ignored, got %d rows", len(limited))
	}
}

func TestListByCategory(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "x", URL: "u1", Date: day("2025-07-30"), Category: headline.CategorySports},
		{Title: "y", URL: "u2", Date: day("2025-08-01"), Category: headline.CategorySports},
		{Title: "z", URL: "u3", Date: day("2025-08-01"), Category: headline.CategoryEconomy},
	})

	rows, err := st.ListByCategory(headline.CategorySports)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d sports rows, want 2", len(rows))
	}
	if rows[0].Title != "y" || rows[1].Title != "x" {
		t.Errorf("category rows not date-descending: %v", rows)
	}

	empty, err := st.ListByCategory(headline.CategoryPolitics)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty listing, got %v", empty)
	}
}

func TestUpdateCategoryAndAllTitles(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "plain title", URL: "u1", Date: day("2025-08-01")},
	})

	titles, err := st.AllTitles()
	if err != nil {
		t.Fatalf("AllTitles: %v", err)
	}
	if len(titles) != 1 {
		t.Fatalf("got %d titles, want 1", len(titles))
	}

	for id := range titles {
		if err := st.UpdateCategory(id, headline.CategoryScience); err != nil {
			t.Fatalf("UpdateCategory: %v", err)
		}
	}

	rows, err := st.ListByCategory(headline.CategoryScience)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("updated category not visible: %v", rows)
	}
}

func TestStats(t *testing.T) {
	st := newTestStore(t)
	seed(t, st, []headline.Headline{
		{Title: "a", URL: "u1", Date: day("2025-07-30"), Category: headline.CategorySports},
		{Title: "b", URL: "u2", Date: day("2025-08-01"), Category: headline.CategorySports},
	})

	stats, err := st.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["total_headlines"] != 2 {
		t.Errorf("total_headlines = %v, want 2", stats["total_headlines"])
	}
	if stats["distinct_dates"] != 2 {
		t.Errorf("distinct_dates = %v, want 2", stats["distinct_dates"])
	}
	categories := stats["categories"].(map[string]int)
	if categories["sports"] != 2 {
		t.Errorf("sports count = %d, want 2", categories["sports"])
	}
}
