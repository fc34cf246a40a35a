package api

import (
	"time"

	"mainyu/pkg/headline"
	"mainyu/pkg/report"
	"mainyu/pkg/search"
)

type ReportResponse struct {
	Filename    string     `json:"filename"`
	DisplayName string     `json:"display_name"`
	Date        *time.Time `json:"date,omitempty"`
}

type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Count   int              `json:"count"`
}

type ReportSearchResponse struct {
	Query   string         `json:"query"`
	Matches []report.Match `json:"matches"`
	Count   int            `json:"count"`
}

type HeadlineSearchResponse struct {
	Query  string         `json:"query"`
	Scope  string         `json:"scope"`
	Groups []search.Group `json:"groups"`
	Count  int            `json:"count"`
}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
}

type CategoryResponse struct {
	Category  string              `json:"category"`
	Headlines []headline.Headline `json:"headlines"`
	Count     int                 `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
