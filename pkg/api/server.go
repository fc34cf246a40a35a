package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"mainyu/pkg/config"
	"mainyu/pkg/log"
	"mainyu/pkg/report"
	"mainyu/pkg/search"
	"mainyu/pkg/store"
)

var logger = log.ForService("api")

// Server exposes the JSON API over the report catalog and the headline store.
type Server struct {
	cfg      *config.Config
	searcher report.Searcher
	service  *search.Service
	store    *store.Store
}

func NewServer(cfg *config.Config, searcher report.Searcher, service *search.Service, st *store.Store) *Server {
	return &Server{
		cfg:      cfg,
		searcher: searcher,
		service:  service,
		store:    st,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware tags every request with an ID so log lines from one
// request can be correlated.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		logger.Debugf("request %s: %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
