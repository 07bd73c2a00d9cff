// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/ctxutil"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

func newService(inUse func(string) bool) *brand.Service {
	return brand.NewService(brand.NewMemoryRepository(inUse), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	service := newService(nil)

	dior, err := service.Create(ctx, brand.Input{Name: "  Dior "})
	require.NoError(t, err)
	assert.Equal(t, "Dior", dior.Name)

	_, err = service.Create(ctx, brand.Input{Name: "Chanel"})
	require.NoError(t, err)

	t.Run("name_taken_ignoring_case", func(t *testing.T) {
		_, err := service.Create(ctx, brand.Input{Name: "DIOR"})
		assert.ErrorIs(t, err, apperr.ErrBrandNameTaken)
	})

	t.Run("blank_name", func(t *testing.T) {
		_, err := service.Create(ctx, brand.Input{Name: "   "})
		assert.ErrorIs(t, err, apperr.ValidationError(""))
	})

	t.Run("list_sorted_by_name", func(t *testing.T) {
		brands, err := service.List(ctx, brand.Filter{})
		require.NoError(t, err)
		require.Len(t, brands, 2)
		assert.Equal(t, "Chanel", brands[0].Name)
	})

	t.Run("search", func(t *testing.T) {
		brands, err := service.List(ctx, brand.Filter{Search: "dio"})
		require.NoError(t, err)
		require.Len(t, brands, 1)
		assert.Equal(t, dior.ID, brands[0].ID)
	})

	t.Run("bad_sort", func(t *testing.T) {
		_, err := service.List(ctx, brand.Filter{Sort: "price"})
		assert.ErrorIs(t, err, apperr.ValidationError(""))
	})

	t.Run("rename", func(t *testing.T) {
		updated, err := service.Update(ctx, dior.ID, brand.Input{Name: "Christian Dior"})
		require.NoError(t, err)
		assert.Equal(t, dior.CreatedAt, updated.CreatedAt)

		_, err = service.Update(ctx, dior.ID, brand.Input{Name: "chanel"})
		assert.ErrorIs(t, err, apperr.ErrBrandNameTaken)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, dior.ID))
		_, err := service.Get(ctx, dior.ID)
		assert.ErrorIs(t, err, apperr.NotFound(""))
		assert.ErrorIs(t, service.Delete(ctx, dior.ID), apperr.NotFound(""))
	})
}

func TestService_DeleteReferencedBrand(t *testing.T) {
	ctx := context.Background()
	service := newService(func(string) bool { return true })

	created, err := service.Create(ctx, brand.Input{Name: "Guerlain"})
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), apperr.ErrBrandInUse)
}

func TestHandler_MutationRequiresAdmin(t *testing.T) {
	handler := brand.NewHandler(newService(nil))

	serve := func(identity *sec.Identity, method, path, body string) int {
		router := chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				if identity != nil {
					request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
				}
				next.ServeHTTP(writer, request)
			})
		})
		router.Mount("/api/brands", handler.Routes())

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
		return recorder.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(nil, http.MethodPost, "/api/brands", `{"name":"Tom Ford"}`))
	assert.Equal(t, http.StatusForbidden, serve(&sec.Identity{MemberID: "m"}, http.MethodPost, "/api/brands", `{"name":"Tom Ford"}`))
	assert.Equal(t, http.StatusCreated, serve(&sec.Identity{MemberID: "a", IsAdmin: true}, http.MethodPost, "/api/brands", `{"name":"Tom Ford"}`))
	assert.Equal(t, http.StatusOK, serve(nil, http.MethodGet, "/api/brands", ""))
	assert.Equal(t, http.StatusNotFound, serve(nil, http.MethodGet, "/api/brands/missing", ""))
}
