// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - JSON routes live under /api; everything else is a server-rendered page.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/perfumery/internal/admin"
	"github.com/taibuivan/perfumery/internal/auth"
	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/config"
	"github.com/taibuivan/perfumery/internal/platform/constants"
	"github.com/taibuivan/perfumery/internal/platform/middleware"
	"github.com/taibuivan/perfumery/internal/platform/respond"
	"github.com/taibuivan/perfumery/internal/web"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 only when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Auth     *auth.Handler
	Members  *member.Handler
	Brands   *brand.Handler
	Perfumes *perfume.Handler
	Admin    *admin.Handler

	// Web serves the HTML pages at the site root.
	Web *web.Handler
}

// # Router

/*
NewRouter builds the full middleware chain and mounts every route group.

Order matters: the presentation is resolved before anything can fail, so
panics and auth rejections already know whether to answer with JSON or HTML.
*/
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, authenticator middleware.Authenticator, h Handlers) chi.Router {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.ResolvePresentation())
	r.Use(middleware.PanicRecovery())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(authenticator))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # JSON API
	r.Route("/api", func(api chi.Router) {
		api.NotFound(func(writer http.ResponseWriter, request *http.Request) {
			respond.Error(writer, request, apperr.NotFound("Route"))
		})

		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/brands", h.Brands.Routes())
		api.Mount("/perfumes", h.Perfumes.Routes())

		members := h.Members.Routes()
		members.With(middleware.RequireSelf("id")).Get("/{id}/comments", h.Perfumes.MemberComments)
		api.Mount("/members", members)

		api.Mount("/collectors", h.Members.CollectorRoutes())
		api.Mount("/admin", h.Admin.Routes())
	})

	// # Pages
	r.Mount("/", h.Web.Routes())

	return r
}

// NewServer wraps [NewRouter] in an [http.Server] listening on the configured port.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, authenticator middleware.Authenticator, h Handlers) *Server {
	router := NewRouter(context, cfg, log, authenticator, h)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
