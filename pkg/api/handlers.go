package api

import (
	"fmt"
	"net/http"
	"time"

	"mainyu/pkg/headline"
	"mainyu/pkg/report"
	"mainyu/pkg/search"
	"mainyu/pkg/version"
)

func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := report.ListReports(s.cfg.ReportsDir)
	if err != nil {
		logger.Errorf("listing reports: %v", err)
		s.writeError(w, http.StatusServiceUnavailable, "Catalog unavailable", "The report directory could not be read")
		return
	}

	response := ListReportsResponse{
		Reports: toReportResponses(reports),
		Count:   len(reports),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleLatestReport(w http.ResponseWriter, r *http.Request) {
	latest, err := report.Latest(s.cfg.ReportsDir)
	if err != nil {
		logger.Errorf("resolving latest report: %v", err)
		s.writeError(w, http.StatusServiceUnavailable, "Catalog unavailable", "The report directory could not be read")
		return
	}
	if latest == nil {
		s.writeError(w, http.StatusNotFound, "No reports", "No report has been generated yet")
		return
	}

	s.writeJSON(w, http.StatusOK, toReportResponse(*latest))
}

func (s *Server) HandleReportSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	matches, err := s.searcher.Search(query)
	if err != nil {
		logger.Errorf("report search failed: %v", err)
		s.writeError(w, http.StatusServiceUnavailable, "Catalog unavailable", "The report directory could not be read")
		return
	}
	if matches == nil {
		matches = []report.Match{}
	}

	response := ReportSearchResponse{
		Query:   query,
		Matches: matches,
		Count:   len(matches),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleHeadlineSearch(w http.ResponseWriter, r *http.Request) {
	params := search.ParseParams(r.URL.Query())

	groups, err := s.service.SearchHeadlines(params)
	if err != nil {
		logger.Errorf("headline search failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Store unavailable", "The headline store could not be queried")
		return
	}
	if groups == nil {
		groups = []search.Group{}
	}

	count := 0
	for _, g := range groups {
		count += len(g.Items)
	}

	response := HeadlineSearchResponse{
		Query:  params.Query,
		Scope:  string(params.Scope),
		Groups: groups,
		Count:  count,
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := headline.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}

	response := ListCategoriesResponse{
		Categories: names,
		Count:      len(names),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	category, ok := headline.ParseCategory(name)
	if !ok {
		// Unknown categories are an empty listing, not an error.
		s.writeJSON(w, http.StatusOK, CategoryResponse{
			Category:  name,
			Headlines: []headline.Headline{},
		})
		return
	}

	headlines, err := s.service.ListByCategory(category)
	if err != nil {
		logger.Errorf("category listing failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Store unavailable", "The headline store could not be queried")
		return
	}
	if headlines == nil {
		headlines = []headline.Headline{}
	}

	response := CategoryResponse{
		Category:  string(category),
		Headlines: headlines,
		Count:     len(headlines),
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Store unavailable", fmt.Sprintf("Failed to get stats: %v", err))
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

func toReportResponse(r report.Report) ReportResponse {
	resp := ReportResponse{
		Filename:    r.Filename,
		DisplayName: r.DisplayName(),
	}
	if r.HasDate {
		date := r.Date
		resp.Date = &date
	}
	return resp
}

func toReportResponses(reports []report.Report) []ReportResponse {
	responses := make([]ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = toReportResponse(r)
	}
	return responses
}
