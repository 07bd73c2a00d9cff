// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"

	"github.com/taibuivan/perfumery/internal/admin"
	"github.com/taibuivan/perfumery/internal/auth"
	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/middleware"
	"github.com/taibuivan/perfumery/internal/platform/sec"
	"github.com/taibuivan/perfumery/internal/web"
)

// Stores holds the persistence implementations the services run on.
// Production passes the Postgres and Redis stores; tests pass memory ones.
type Stores struct {
	Members     member.Repository
	Brands      brand.Repository
	Perfumes    perfume.Repository
	Revocations auth.RevocationStore
}

// Application is the fully wired domain: services, handlers and the
// authenticator the global middleware needs.
type Application struct {
	Members  *member.Service
	Brands   *brand.Service
	Perfumes *perfume.Service
	Auth     *auth.Service
	Admin    *admin.Service

	Handlers      Handlers
	Authenticator middleware.Authenticator
}

// NewApplication builds every service and handler on top of stores.
// Health handlers are left for the caller since they ping real connections.
func NewApplication(stores Stores, tokens *sec.TokenService, cookie auth.Cookie, logger *slog.Logger) (*Application, error) {
	members := member.NewService(stores.Members, logger)
	brands := brand.NewService(stores.Brands, logger)
	perfumes := perfume.NewService(stores.Perfumes, brands, members, logger)
	sessions := auth.NewService(members, tokens, stores.Revocations, logger)
	dashboard := admin.NewService(perfumes, brands, members, logger)

	pages, err := web.NewHandler(web.Services{
		Auth:     sessions,
		Members:  members,
		Brands:   brands,
		Perfumes: perfumes,
		Admin:    dashboard,
	}, cookie)
	if err != nil {
		return nil, err
	}

	return &Application{
		Members:  members,
		Brands:   brands,
		Perfumes: perfumes,
		Auth:     sessions,
		Admin:    dashboard,
		Handlers: Handlers{
			Auth:     auth.NewHandler(sessions, cookie),
			Members:  member.NewHandler(members),
			Brands:   brand.NewHandler(brands),
			Perfumes: perfume.NewHandler(perfumes),
			Admin:    admin.NewHandler(dashboard),
			Web:      pages,
		},
		Authenticator: middleware.Authenticator{
			Verifier:    tokens,
			Resolver:    members,
			Revocations: stores.Revocations,
			CookieName:  cookie.Name,
		},
	}, nil
}
