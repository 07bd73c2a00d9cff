// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/admin"
	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/ctxutil"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

func newDashboard(t *testing.T) *admin.Service {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var perfumeRepo *perfume.MemoryRepository
	brandRepo := brand.NewMemoryRepository(func(id string) bool { return perfumeRepo.UsesBrand(id) })
	perfumeRepo = perfume.NewMemoryRepository(brandRepo)
	memberRepo := member.NewMemoryRepository()

	brands := brand.NewService(brandRepo, logger)
	members := member.NewService(memberRepo, logger)
	perfumes := perfume.NewService(perfumeRepo, brands, members, logger)

	dior, err := brands.Create(ctx, brand.Input{Name: "Dior"})
	require.NoError(t, err)
	_, err = brands.Create(ctx, brand.Input{Name: "Chanel"})
	require.NoError(t, err)

	// Distinct creation times keep the recent ordering deterministic.
	for i := 0; i < 7; i++ {
		_, err := perfumes.Create(ctx, perfume.Input{
			Name: fmt.Sprintf("Perfume %d", i), URI: "/static/p.jpg", Price: 10,
			Concentration: perfume.ConcentrationEDT, Description: "d", Ingredients: "i",
			Volume: 50, TargetAudience: perfume.AudienceUnisex, BrandID: dior.ID,
		})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		registered, err := members.Register(ctx, member.Registration{
			Email: fmt.Sprintf("m%d@test.com", i), Password: "member123", Name: fmt.Sprintf("M%d", i), YOB: 1995,
		})
		require.NoError(t, err)
		if i == 0 {
			memberRepo.SetAdmin(registered.ID, true)
		}
	}

	return admin.NewService(perfumes, brands, members, logger)
}

func TestService_Stats(t *testing.T) {
	service := newDashboard(t)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.Perfumes)
	assert.Equal(t, 2, stats.Brands)
	assert.Equal(t, 3, stats.Members)
	assert.Equal(t, 1, stats.Admins)

	require.Len(t, stats.RecentPerfumes, admin.RecentLimit)
	assert.Equal(t, "Perfume 6", stats.RecentPerfumes[0].Name)
	assert.Equal(t, "Dior", stats.RecentPerfumes[0].BrandName)
	assert.Len(t, stats.RecentMembers, 3)
	for _, recent := range stats.RecentMembers {
		assert.Empty(t, recent.PasswordHash)
	}
}

func TestHandler_StatsIsAdminOnly(t *testing.T) {
	service := newDashboard(t)

	serve := func(identity *sec.Identity) *httptest.ResponseRecorder {
		router := chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				if identity != nil {
					request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
				}
				next.ServeHTTP(writer, request)
			})
		})
		router.Mount("/admin", admin.NewHandler(service).Routes())

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
		return recorder
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil).Code)
	assert.Equal(t, http.StatusForbidden, serve(&sec.Identity{MemberID: "m"}).Code)

	recorder := serve(&sec.Identity{MemberID: "a", IsAdmin: true})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data admin.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 7, body.Data.Perfumes)
	assert.Equal(t, 1, body.Data.Admins)
}
