// Package web serves the sales admin JSON API.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/salesadmin/internal/config"
	"github.com/JonMunkholm/salesadmin/internal/core"
	"github.com/JonMunkholm/salesadmin/internal/export"
	"github.com/JonMunkholm/salesadmin/internal/logging"
	"github.com/JonMunkholm/salesadmin/internal/metrics"
	mw "github.com/JonMunkholm/salesadmin/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server for the admin API.
type Server struct {
	service  *core.Service
	exporter *export.Exporter
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server

	done chan struct{}
}

// NewServer creates a Server. The exporter bounds concurrent report renders.
func NewServer(service *core.Service, exporter *export.Exporter, cfg *config.Config) *Server {
	s := &Server{
		service:  service,
		exporter: exporter,
		cfg:      cfg,
		router:   chi.NewRouter(),
		done:     make(chan struct{}),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(metrics.Middleware)
	s.router.Use(s.requestTimeout)
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	general, exports := mw.NewRateLimiters(s.cfg.Rate)
	if general != nil {
		go general.RunCleanup(time.Minute, s.done)
		if exports != nil {
			go exports.RunCleanup(time.Minute, s.done)
		}
		s.router.Use(mw.RateLimit(general, exports))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Get("/components_data/{option}", s.handleOptions)

		r.Route("/{entity}", func(r chi.Router) {
			// List
			r.Get("/", s.handleList)
			r.Get("/index", s.handleList)
			r.Get("/index/{fieldname}/{fieldvalue}", s.handleList)

			// Single record
			r.Get("/view/{recid}", s.handleView)
			r.Get("/edit/{recid}", s.handleEditRecord)

			// Mutations
			r.Post("/add", s.handleAdd)
			r.Post("/edit/{recid}", s.handleEdit)
			r.Get("/delete/{recid}", s.handleDelete)
			r.Delete("/delete/{recid}", s.handleDelete)
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondErrorJSON(w, pageNotFound, http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondErrorJSON(w, core.UserMessage{
			Message: "Method not allowed",
			Code:    "REQ405",
		}, http.StatusMethodNotAllowed)
	})
}

var pageNotFound = core.UserMessage{
	Message: "Page not found",
	Action:  "Check the URL and try again",
	Code:    "NF404",
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	sc := s.cfg.Server
	s.server = &http.Server{
		Addr:         sc.Addr(),
		Handler:      s.router,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}

	slog.Info("starting server", "addr", sc.Addr())
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// handleHealth pings the store.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("health check failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, map[string]any{
		"status":  "ok",
		"exports": s.exporter.Status(),
	})
}

// requestTimeout bounds each request's context. Exports get the longer
// export timeout.
func (s *Server) requestTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := s.cfg.Server.RequestTimeout
		if r.URL.Query().Get("export") != "" && s.cfg.Export.Timeout > 0 {
			d = s.cfg.Export.Timeout
		}
		if d <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Print reports carry an inline stylesheet and onload handler.
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; script-src 'unsafe-inline'; frame-ancestors 'none'")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
