// Package search groups headline query results into the per-report buckets
// the site renders. It sits between the store and both the web and API
// layers: parameter parsing, scope handling and grouping live here so the two
// front ends behave identically.
package search

import (
	"strings"

	"mainyu/pkg/headline"
	"mainyu/pkg/report"
	"mainyu/pkg/store"
)

// Scope restricts a headline search to a time window.
type Scope string

const (
	// ScopeAll searches the whole archive, capped at the configured row
	// limit.
	ScopeAll Scope = "all"
	// ScopeRecent searches only the most recent distinct report dates.
	ScopeRecent Scope = "recent"
)

// ParseScope maps a request parameter onto a scope, defaulting to ScopeAll.
func ParseScope(s string) Scope {
	if s == string(ScopeRecent) {
		return ScopeRecent
	}
	return ScopeAll
}

// Params are the inputs of one headline search.
type Params struct {
	Query string
	Scope Scope
}

// ParseParams extracts search parameters from HTTP query parameters
// (q and scope).
func ParseParams(queryParams map[string][]string) Params {
	params := Params{Scope: ScopeAll}
	if q := queryParams["q"]; len(q) > 0 {
		params.Query = q[0]
	}
	if scope := queryParams["scope"]; len(scope) > 0 {
		params.Scope = ParseScope(scope[0])
	}
	return params
}

// Item is one headline inside a group, trimmed to what result pages render.
type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Group collects the matching headlines of one report date under the report
// file that date corresponds to.
type Group struct {
	Filename    string `json:"filename"`
	DisplayName string `json:"display_name"`
	Items       []Item `json:"items"`
}

// Service runs headline searches against the store.
type Service struct {
	store      *store.Store
	recentDays int
	limit      int
}

// NewService creates a search service. recentDays bounds the recent scope,
// limit caps unscoped searches; both come from configuration.
func NewService(st *store.Store, recentDays, limit int) *Service {
	return &Service{
		store:      st,
		recentDays: recentDays,
		limit:      limit,
	}
}

// SearchHeadlines finds headlines whose title contains the query and groups
// them by report date, newest date first. The query is trimmed; an empty
// query returns no groups without touching the store. With ScopeRecent the
// search is restricted to the most recent distinct dates in the store, and an
// empty store short-circuits to no groups. Rows arrive date-descending in
// insertion order, so group order and in-group item order are stable across
// identical runs.
func (s *Service) SearchHeadlines(params Params) ([]Group, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, nil
	}

	var rows []headline.Headline
	if params.Scope == ScopeRecent {
		dates, err := s.store.RecentDates(s.recentDays)
		if err != nil {
			return nil, err
		}
		if len(dates) == 0 {
			return nil, nil
		}
		rows, err = s.store.SearchTitles(query, dates, 0)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		rows, err = s.store.SearchTitles(query, nil, s.limit)
		if err != nil {
			return nil, err
		}
	}

	return groupByReport(rows), nil
}

// ListByCategory passes a category listing through from the store.
func (s *Service) ListByCategory(category headline.Category) ([]headline.Headline, error) {
	return s.store.ListByCategory(category)
}

// groupByReport partitions rows by the report file synthesized from each
// row's date, preserving first-seen group order and row order within groups.
func groupByReport(rows []headline.Headline) []Group {
	var (
		groups  []Group
		indexOf = make(map[string]int)
	)
	for _, row := range rows {
		filename := report.FilenameForDate(row.Date)
		idx, ok := indexOf[filename]
		if !ok {
			idx = len(groups)
			indexOf[filename] = idx
			groups = append(groups, Group{
				Filename:    filename,
				DisplayName: report.DisplayName(filename),
			})
		}
		groups[idx].Items = append(groups[idx].Items, Item{
			ID:    row.ID,
			Title: row.Title,
			URL:   row.URL,
		})
	}
	return groups
}
