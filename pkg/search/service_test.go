package search

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"mainyu/pkg/headline"
	"mainyu/pkg/store"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(t *testing.T, recentDays, limit int, rows []headline.Headline) *Service {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "headlines.db"), false)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.InitSchema(); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	if _, err := st.InsertHeadlines(rows); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return NewService(st, recentDays, limit)
}

func TestSearchHeadlinesGrouping(t *testing.T) {
	service := newTestService(t, 5, 300, []headline.Headline{
		{Title: "AI breakthrough", URL: "u1", Date: day("2025-08-01")},
		{Title: "AI funding", URL: "u2", Date: day("2025-08-01")},
		{Title: "Weather alert", URL: "u3", Date: day("2025-07-30")},
	})

	groups, err := service.SearchHeadlines(Params{Query: "ai", Scope: ScopeAll})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Filename != "news_2025-08-01.html" {
		t.Errorf("group filename = %s", g.Filename)
	}
	if g.DisplayName != "2025年8月1日のニュース" {
		t.Errorf("group display name = %s", g.DisplayName)
	}
	if len(g.Items) != 2 || g.Items[0].Title != "AI breakthrough" || g.Items[1].Title != "AI funding" {
		t.Errorf("group items out of order: %v", g.Items)
	}

	groups, err = service.SearchHeadlines(Params{Query: "alert", Scope: ScopeAll})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	if len(groups) != 1 || groups[0].Filename != "news_2025-07-30.html" {
		t.Fatalf("alert groups = %v", groups)
	}
}

func TestSearchHeadlinesGroupOrderIsDateDescending(t *testing.T) {
	service := newTestService(t, 5, 300, []headline.Headline{
		{Title: "AI old", URL: "u1", Date: day("2025-07-28")},
		{Title: "AI new", URL: "u2", Date: day("2025-08-01")},
	})

	groups, err := service.SearchHeadlines(Params{Query: "AI", Scope: ScopeAll})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Filename != "news_2025-08-01.html" || groups[1].Filename != "news_2025-07-28.html" {
		t.Errorf("groups not newest-first: %s, %s", groups[0].Filename, groups[1].Filename)
	}
}

func TestSearchHeadlinesEmptyQuery(t *testing.T) {
	service := newTestService(t, 5, 300, nil)

	for _, q := range []string{"", "   "} {
		groups, err := service.SearchHeadlines(Params{Query: q, Scope: ScopeAll})
		if err != nil {
			t.Fatalf("SearchHeadlines(%q): %v", q, err)
		}
		if groups != nil {
			t.Fatalf("SearchHeadlines(%q) = %v, want nil", q, groups)
		}
	}
}

func TestSearchHeadlinesRecentScope(t *testing.T) {
	// Six distinct dates; the oldest must never appear with recentDays=5 even
	// though its title matches.
	rows := []headline.Headline{
		{Title: "AI day0", URL: "u0", Date: day("2025-07-25")},
		{Title: "AI day1", URL: "u1", Date: day("2025-07-27")},
		{Title: "AI day2", URL: "u2", Date: day("2025-07-28")},
		{Title: "AI day3", URL: "u3", Date: day("2025-07-29")},
		{Title: "AI day4", URL: "u4", Date: day("2025-07-30")},
		{Title: "AI day5", URL: "u5", Date: day("2025-08-01")},
	}
	service := newTestService(t, 5, 300, rows)

	groups, err := service.SearchHeadlines(Params{Query: "AI", Scope: ScopeRecent})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	if len(groups) != 5 {
		t.Fatalf("got %d groups, want 5", len(groups))
	}
	for _, g := range groups {
		if g.Filename == "news_2025-07-25.html" {
			t.Fatal("row outside the 5 most recent dates leaked into results")
		}
	}
}

func TestSearchHeadlinesRecentScopeEmptyStore(t *testing.T) {
	service := newTestService(t, 5, 300, nil)

	groups, err := service.SearchHeadlines(Params{Query: "anything", Scope: ScopeRecent})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	if groups != nil {
		t.Fatalf("expected no groups for empty store, got %v", groups)
	}
}

func TestSearchHeadlinesLimit(t *testing.T) {
	rows := []headline.Headline{
		{Title: "AI 1", URL: "u1", Date: day("2025-08-01")},
		{Title: "AI 2", URL: "u2", Date: day("2025-08-01")},
		{Title: "AI 3", URL: "u3", Date: day("2025-07-30")},
	}
	service := newTestService(t, 5, 2, rows)

	groups, err := service.SearchHeadlines(Params{Query: "AI", Scope: ScopeAll})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}
	if total != 2 {
		t.Fatalf("limit not applied, got %d items", total)
	}
}

func TestSearchHeadlinesIdempotent(t *testing.T) {
	rows := []headline.Headline{
		{Title: "AI breakthrough", URL: "u1", Date: day("2025-08-01")},
		{Title: "AI funding", URL: "u2", Date: day("2025-08-01")},
		{Title: "AI weather", URL: "u3", Date: day("2025-07-30")},
	}
	service := newTestService(t, 5, 300, rows)

	first, err := service.SearchHeadlines(Params{Query: "AI", Scope: ScopeAll})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	second, err := service.SearchHeadlines(Params{Query: "AI", Scope: ScopeAll})
	if err != nil {
		t.Fatalf("SearchHeadlines: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical searches differ:\n%v\n%v", first, second)
	}
}

func TestParseParams(t *testing.T) {
	params := ParseParams(map[string][]string{
		"q":     {"economy"},
		"scope": {"recent"},
	})
	if params.Query != "economy" || params.Scope != ScopeRecent {
		t.Fatalf("unexpected params: %+v", params)
	}

	params = ParseParams(map[string][]string{})
	if params.Query != "" || params.Scope != ScopeAll {
		t.Fatalf("defaults wrong: %+v", params)
	}

	if ParseScope("bogus") != ScopeAll {
		t.Error("unknown scope should fall back to all")
	}
}
