package cmd

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"mainyu/pkg/api"
	"mainyu/pkg/config"
	"mainyu/pkg/headline"
	"mainyu/pkg/log"
	"mainyu/pkg/render"
	"mainyu/pkg/report"
	"mainyu/pkg/search"
	"mainyu/pkg/store"
	"mainyu/pkg/version"
)

//go:embed web/static/* web/templates/*
var webFS embed.FS

var weblog = log.ForService("web")

// recentHistoryCount is how many history entries the home page shows.
const recentHistoryCount = 5

// WebCommand creates the web command serving both the HTML site and the API
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the web server with the site UI and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.String("host"), c.String("port"))
		},
	}
}

// WebServer holds the request-serving dependencies. Everything behind the
// mutex is swapped wholesale on configuration reload.
type WebServer struct {
	configPath string
	templates  *template.Template

	mu      sync.RWMutex
	cfg     *config.Config
	st      *store.Store
	scanner report.Searcher
	service *search.Service
	apiMux  *http.ServeMux
}

func newWebServer(configPath string) (*WebServer, error) {
	templates, err := template.New("site").Funcs(render.Funcs()).ParseFS(webFS, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &WebServer{
		configPath: configPath,
		templates:  templates,
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// reload loads the configuration and rebuilds the store, the search engines
// and the API routes. The previous store is closed after the swap.
func (s *WebServer) reload() error {
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.New(cfg.DBPath, cfg.CaseSensitive)
	if err != nil {
		return fmt.Errorf("opening headline store: %w", err)
	}
	if err := st.InitSchema(); err != nil {
		if cerr := st.Close(); cerr != nil {
			weblog.Warnf("closing store after failed init: %v", cerr)
		}
		return err
	}

	scanner := report.NewDirScanner(cfg.ReportsDir)
	service := search.NewService(st, cfg.RecentDays, cfg.HeadlineLimit)

	apiMux := http.NewServeMux()
	api.NewServer(cfg, scanner, service, st).RegisterRoutes(apiMux)

	s.mu.Lock()
	old := s.st
	s.cfg = cfg
	s.st = st
	s.scanner = scanner
	s.service = service
	s.apiMux = apiMux
	s.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			weblog.Warnf("closing previous store: %v", err)
		}
	}
	return nil
}

func (s *WebServer) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st != nil {
		if err := s.st.Close(); err != nil {
			weblog.Warnf("closing store: %v", err)
		}
		s.st = nil
	}
}

// snapshot returns the current dependencies for one request.
func (s *WebServer) snapshot() (*config.Config, report.Searcher, *search.Service, *http.ServeMux) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg, s.scanner, s.service, s.apiMux
}

// startWebServer starts the web server with both UI and API
func startWebServer(ctx context.Context, configPath, host, port string) error {
	webServer, err := newWebServer(configPath)
	if err != nil {
		return err
	}
	defer webServer.close()

	cfg, _, _, _ := webServer.snapshot()
	if host == "" {
		host = cfg.Host
	}
	if port == "" {
		port = cfg.Port
	}

	mux := http.NewServeMux()

	// Site pages
	mux.HandleFunc("GET /{$}", webServer.handleHome)
	mux.HandleFunc("GET /history", webServer.handleHistory)
	mux.HandleFunc("GET /search", webServer.handleSearch)
	mux.HandleFunc("GET /category/{name}", webServer.handleCategory)
	mux.HandleFunc("GET /reports/{file}", webServer.handleReportFile)
	mux.HandleFunc("GET /static/", webServer.handleStatic)

	// API routes live on a swappable inner mux so reloads pick up new config
	mux.HandleFunc("/api/", webServer.serveAPI)
	mux.HandleFunc("/health", webServer.serveAPI)

	handler := api.CorsMiddleware(api.RequestIDMiddleware(mux))

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, port),
		Handler: handler,
	}

	go func() {
		weblog.Infof("serving %s on http://%s:%s", cfg.SiteName, host, port)
		weblog.Infof("reports directory: %s", cfg.ReportsDir)
		weblog.Infof("headline database: %s", cfg.DBPath)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			weblog.Errorf("server failed: %v", err)
			os.Exit(1)
		}
	}()

	watchAndServe(webServer, configPath)

	weblog.Infof("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// watchAndServe blocks until an interrupt arrives, reloading configuration on
// SIGHUP or when the config file changes on disk.
func watchAndServe(webServer *WebServer, configPath string) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		weblog.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				weblog.Warnf("failed to close config file watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			weblog.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			weblog.Infof("watching config file for changes: %s", configPath)
		}
	}

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				weblog.Infof("received SIGHUP, reloading configuration")
				if err := webServer.reload(); err != nil {
					weblog.Errorf("failed to reload configuration: %v", err)
				} else {
					weblog.Infof("configuration reloaded")
				}
			case syscall.SIGINT, syscall.SIGTERM:
				return
			}
		case event, ok := <-watcher.Events:
			if !ok {
				continue
			}
			// Editors often replace files atomically, so react to rename and
			// remove as well as plain writes.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)
					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						weblog.Infof("config file removed without replacement, skipping reload")
						continue
					}
					if err := watcher.Add(configPath); err != nil {
						weblog.Warnf("failed to re-add config file to watcher: %v", err)
					}
				} else {
					time.Sleep(100 * time.Millisecond)
				}

				weblog.Infof("config file changed (%s), reloading configuration", event.Op)
				if err := webServer.reload(); err != nil {
					weblog.Errorf("failed to reload configuration: %v", err)
				} else {
					weblog.Infof("configuration reloaded")
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				continue
			}
			weblog.Warnf("config file watcher error: %v", err)
		}
	}
}

func (s *WebServer) serveAPI(w http.ResponseWriter, r *http.Request) {
	_, _, _, apiMux := s.snapshot()
	apiMux.ServeHTTP(w, r)
}

// pageData is passed to every site template.
type pageData struct {
	SiteName   string
	Title      string
	Query      string
	Scope      string
	Error      string
	Latest     *report.Report
	Recent     []report.Report
	Reports    []report.Report
	Matches    []report.Match
	Groups     []search.Group
	Category   headline.Category
	Headlines  []headline.Headline
	Categories []headline.Category
	Version    string
}

func (s *WebServer) newPageData(cfg *config.Config, title string) pageData {
	return pageData{
		SiteName:   cfg.SiteName,
		Title:      title,
		Categories: headline.Categories(),
		Version:    version.APIVersion(),
	}
}

func (s *WebServer) renderPage(w http.ResponseWriter, name string, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		weblog.Errorf("rendering %s: %v", name, err)
	}
}

// handleHome shows the latest report and the most recent history entries.
func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	cfg, _, _, _ := s.snapshot()

	// Search box on the home page submits here.
	if query := r.URL.Query().Get("q"); query != "" {
		http.Redirect(w, r, "/search?q="+query, http.StatusFound)
		return
	}

	data := s.newPageData(cfg, cfg.SiteName)

	reports, err := report.ListReports(cfg.ReportsDir)
	if err != nil {
		weblog.Errorf("listing reports: %v", err)
		data.Error = "ニュース一覧を読み込めませんでした。しばらくしてからもう一度お試しください。"
		s.renderPage(w, "home.html", http.StatusServiceUnavailable, data)
		return
	}

	if len(reports) > 0 {
		data.Latest = &reports[0]
		if len(reports) > recentHistoryCount {
			data.Recent = reports[:recentHistoryCount]
		} else {
			data.Recent = reports
		}
	}

	s.renderPage(w, "home.html", http.StatusOK, data)
}

// handleHistory lists every archived report.
func (s *WebServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	cfg, _, _, _ := s.snapshot()
	data := s.newPageData(cfg, "過去のニュース一覧")

	reports, err := report.ListReports(cfg.ReportsDir)
	if err != nil {
		weblog.Errorf("listing reports: %v", err)
		data.Error = "ニュース一覧を読み込めませんでした。しばらくしてからもう一度お試しください。"
		s.renderPage(w, "history.html", http.StatusServiceUnavailable, data)
		return
	}

	data.Reports = reports
	s.renderPage(w, "history.html", http.StatusOK, data)
}

// handleSearch runs the keyword across both the report files and the
// headline store and renders the combined results.
func (s *WebServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	cfg, scanner, service, _ := s.snapshot()
	params := search.ParseParams(r.URL.Query())

	data := s.newPageData(cfg, "検索")
	data.Query = params.Query
	data.Scope = string(params.Scope)

	if strings.TrimSpace(params.Query) == "" {
		s.renderPage(w, "search.html", http.StatusOK, data)
		return
	}

	matches, err := scanner.Search(params.Query)
	if err != nil {
		weblog.Errorf("report search: %v", err)
		data.Error = "レポート検索が利用できません。しばらくしてからもう一度お試しください。"
		s.renderPage(w, "search.html", http.StatusServiceUnavailable, data)
		return
	}
	data.Matches = matches

	groups, err := service.SearchHeadlines(params)
	if err != nil {
		weblog.Errorf("headline search: %v", err)
		data.Error = "見出し検索が利用できません。しばらくしてからもう一度お試しください。"
		s.renderPage(w, "search.html", http.StatusInternalServerError, data)
		return
	}
	data.Groups = groups

	s.renderPage(w, "search.html", http.StatusOK, data)
}

// handleCategory lists the headlines of one category. Unknown categories
// render an empty listing rather than an error.
func (s *WebServer) handleCategory(w http.ResponseWriter, r *http.Request) {
	cfg, _, service, _ := s.snapshot()
	name := r.PathValue("name")

	category, ok := headline.ParseCategory(name)
	if !ok {
		data := s.newPageData(cfg, name)
		data.Category = headline.Category(name)
		s.renderPage(w, "category.html", http.StatusOK, data)
		return
	}

	data := s.newPageData(cfg, render.CategoryLabel(category))
	data.Category = category

	headlines, err := service.ListByCategory(category)
	if err != nil {
		weblog.Errorf("category listing: %v", err)
		data.Error = "見出し一覧が利用できません。しばらくしてからもう一度お試しください。"
		s.renderPage(w, "category.html", http.StatusInternalServerError, data)
		return
	}
	data.Headlines = headlines

	s.renderPage(w, "category.html", http.StatusOK, data)
}

// handleReportFile serves one report document from the reports directory.
func (s *WebServer) handleReportFile(w http.ResponseWriter, r *http.Request) {
	cfg, _, _, _ := s.snapshot()
	file := r.PathValue("file")

	// Only bare filenames inside the reports directory are served.
	if file == "" || file != filepath.Base(file) || strings.Contains(file, "..") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(cfg.ReportsDir, file)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}

// handleStatic serves static assets from the embedded filesystem.
func (s *WebServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	filePath := "web/static/" + strings.TrimPrefix(path, "/static/")

	content, err := webFS.ReadFile(filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if strings.HasSuffix(path, ".css") {
		w.Header().Set("Content-Type", "text/css")
	} else if strings.HasSuffix(path, ".js") {
		w.Header().Set("Content-Type", "application/javascript")
	} else if strings.HasSuffix(path, ".ico") {
		w.Header().Set("Content-Type", "image/x-icon")
	} else if strings.HasSuffix(path, ".png") {
		w.Header().Set("Content-Type", "image/png")
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := w.Write(content); err != nil {
		weblog.Errorf("writing static content: %v", err)
	}
}
