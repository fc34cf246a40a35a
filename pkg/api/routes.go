package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/reports", s.HandleListReports)
	mux.HandleFunc("GET /api/reports/latest", s.HandleLatestReport)
	mux.HandleFunc("GET /api/search/reports", s.HandleReportSearch)
	mux.HandleFunc("GET /api/search/headlines", s.HandleHeadlineSearch)
	mux.HandleFunc("GET /api/categories", s.HandleListCategories)
	mux.HandleFunc("GET /api/categories/{name}", s.HandleCategory)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
