// Package api provides the HTTP JSON API for the stock sentiment
// dashboard: health probes, stock search, sentiment analysis, and the
// embedded dashboard pages.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pranavdhawann/stock-sentiment-analysis/internal/catalog"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/config"
	"github.com/pranavdhawann/stock-sentiment-analysis/internal/engine"
	"github.com/pranavdhawann/stock-sentiment-analysis/web"
)

const searchLimit = 20

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	catalog *catalog.Catalog
	engine  *engine.Engine
	log     *zap.Logger
	serveUI bool
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, cat *catalog.Catalog, eng *engine.Engine, log *zap.Logger) *Server {
	srv := &Server{
		cfg:     cfg,
		catalog: cat,
		engine:  eng,
		log:     log,
		serveUI: true,
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetServeUI controls whether the embedded dashboard pages are served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ping", s.handlePing)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search_stocks", s.handleSearchStocks)
		r.Post("/analyze_sentiment", s.handleAnalyzeSentiment)
		r.Get("/get_default_markets", s.handleDefaultMarkets)
	})

	if s.serveUI {
		s.mountStatic(r)
	}
	return r
}

// mountStatic serves the embedded dashboard pages.
func (s *Server) mountStatic(r chi.Router) {
	staticFS := web.StaticFS()
	fileServer := http.FileServerFS(staticFS)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		req.URL.Path = "/index.html"
		fileServer.ServeHTTP(w, req)
	})
	r.Get("/about", func(w http.ResponseWriter, req *http.Request) {
		req.URL.Path = "/about.html"
		fileServer.ServeHTTP(w, req)
	})
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		req.URL.Path = strings.TrimPrefix(req.URL.Path, "/static")
		fileServer.ServeHTTP(w, req)
	})
}

// AnalyzeRequest is the body for POST /api/analyze_sentiment.
type AnalyzeRequest struct {
	Symbol string `json:"symbol"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"message":   "Stock sentiment analysis API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"port":      s.cfg.API.Port,
	})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"pong":      true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSearchStocks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	results := s.catalog.Search(query, searchLimit)
	if results == nil {
		results = []catalog.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleAnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	result, err := s.engine.Analyze(ctx, req.Symbol)
	if err != nil {
		s.log.Error("analysis failed", zap.String("symbol", req.Symbol), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDefaultMarkets(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	market := s.catalog.DefaultMarket(location)
	writeJSON(w, http.StatusOK, market)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
