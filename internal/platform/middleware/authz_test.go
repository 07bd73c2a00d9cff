// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/ctxutil"
	"github.com/taibuivan/perfumery/internal/platform/middleware"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

// # Fakes

type stubResolver struct {
	members map[string]*sec.Identity
}

func (stub *stubResolver) ResolveIdentity(_ context.Context, memberID string) (*sec.Identity, error) {
	identity, ok := stub.members[memberID]
	if !ok {
		return nil, apperr.NotFound("Member")
	}
	copied := *identity
	return &copied, nil
}

type stubRevocations struct {
	revoked map[string]bool
}

func (stub *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return stub.revoked[tokenID], nil
}

type fixture struct {
	tokens      *sec.TokenService
	revocations *stubRevocations
	router      chi.Router
}

const (
	memberID = "0192f1c2-0000-7000-8000-000000000001"
	otherID  = "0192f1c2-0000-7000-8000-000000000002"
	adminID  = "0192f1c2-0000-7000-8000-00000000000a"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService([]byte("middleware-secret"), "perfumery.test", time.Hour)
	require.NoError(t, err)

	resolver := &stubResolver{members: map[string]*sec.Identity{
		memberID: {MemberID: memberID, Email: "a@test.com", Name: "A"},
		otherID:  {MemberID: otherID, Email: "b@test.com", Name: "B"},
		adminID:  {MemberID: adminID, Email: "admin@test.com", Name: "Admin", IsAdmin: true},
	}}
	revocations := &stubRevocations{revoked: map[string]bool{}}

	ok := func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())
		_, _ = writer.Write([]byte(identity.MemberID))
	}

	router := chi.NewRouter()
	router.Use(middleware.ResolvePresentation())
	router.Use(middleware.Authenticate(middleware.Authenticator{
		Verifier:    tokens,
		Resolver:    resolver,
		Revocations: revocations,
		CookieName:  "token",
	}))

	router.Get("/api/public", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})
	router.With(middleware.RequireAuth).Get("/api/me", ok)
	router.With(middleware.RequireAdmin).Get("/api/admin", ok)
	router.With(middleware.RequireSelf("id")).Put("/api/members/{id}", ok)
	router.With(middleware.RequireSelfOrAdmin("id")).Get("/api/collectors/{id}", ok)
	router.With(middleware.RequireAuth).Get("/profile", ok)

	return &fixture{tokens: tokens, revocations: revocations, router: router}
}

func (f *fixture) token(t *testing.T, id string) *sec.IssuedToken {
	t.Helper()
	issued, err := f.tokens.Issue(id)
	require.NoError(t, err)
	return issued
}

func (f *fixture) do(request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func bearer(method, path, token string) *http.Request {
	request := httptest.NewRequest(method, path, nil)
	request.Header.Set("Authorization", "Bearer "+token)
	return request
}

func messageOf(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	message, _ := body["message"].(string)
	return message
}

// # Tests

func TestRequireAuth_API(t *testing.T) {
	f := newFixture(t)

	t.Run("no_token", func(t *testing.T) {
		recorder := f.do(httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, apperr.ErrUnauthenticated.Message, messageOf(t, recorder))
	})

	t.Run("bearer", func(t *testing.T) {
		recorder := f.do(bearer(http.MethodGet, "/api/me", f.token(t, memberID).Token))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, memberID, recorder.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		request.AddCookie(&http.Cookie{Name: "token", Value: f.token(t, memberID).Token})
		recorder := f.do(request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("header_wins_over_cookie", func(t *testing.T) {
		request := bearer(http.MethodGet, "/api/me", f.token(t, otherID).Token)
		request.AddCookie(&http.Cookie{Name: "token", Value: f.token(t, memberID).Token})
		recorder := f.do(request)
		assert.Equal(t, otherID, recorder.Body.String())
	})

	t.Run("tampered", func(t *testing.T) {
		recorder := f.do(bearer(http.MethodGet, "/api/me", f.token(t, memberID).Token+"x"))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, apperr.ErrInvalidToken.Message, messageOf(t, recorder))
	})

	t.Run("malformed_header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		request.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		recorder := f.do(request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("unknown_member", func(t *testing.T) {
		recorder := f.do(bearer(http.MethodGet, "/api/me", f.token(t, "ghost").Token))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("revoked", func(t *testing.T) {
		issued := f.token(t, memberID)
		f.revocations.revoked[issued.ID] = true
		recorder := f.do(bearer(http.MethodGet, "/api/me", issued.Token))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestAuthenticate_PublicRouteIgnoresBadToken(t *testing.T) {
	f := newFixture(t)

	request := httptest.NewRequest(http.MethodGet, "/api/public", nil)
	request.AddCookie(&http.Cookie{Name: "token", Value: "stale"})

	recorder := f.do(request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRequireAuth_BrowserRedirects(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(httptest.NewRequest(http.MethodGet, "/profile?tab=comments", nil))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login?next=%2Fprofile%3Ftab%3Dcomments", recorder.Header().Get("Location"))
	assert.NotContains(t, recorder.Header().Get("Content-Type"), "json")
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(bearer(http.MethodGet, "/api/admin", f.token(t, memberID).Token))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = f.do(bearer(http.MethodGet, "/api/admin", f.token(t, adminID).Token))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(httptest.NewRequest(http.MethodGet, "/api/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireSelf_DeniesAdmins(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		caller string
		target string
		status int
	}{
		{"owner", memberID, memberID, http.StatusOK},
		{"other_member", otherID, memberID, http.StatusForbidden},
		{"admin", adminID, memberID, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.do(bearer(http.MethodPut, "/api/members/"+tt.target, f.token(t, tt.caller).Token))
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestRequireSelfOrAdmin_AllowsAdmins(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(bearer(http.MethodGet, "/api/collectors/"+memberID, f.token(t, adminID).Token))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(bearer(http.MethodGet, "/api/collectors/"+memberID, f.token(t, otherID).Token))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestTokenFromRequest(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	token, err := middleware.TokenFromRequest(request, "token")
	require.NoError(t, err)
	assert.Empty(t, token)

	request.Header.Set("Authorization", "bearer  abc ")
	token, err = middleware.TokenFromRequest(request, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	request.Header.Set("Authorization", "Bearer")
	_, err = middleware.TokenFromRequest(request, "token")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)

	t.Run("other_scheme_falls_back_to_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		token, err := middleware.TokenFromRequest(request, "token")
		require.NoError(t, err)
		assert.Empty(t, token)

		request.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"})
		token, err = middleware.TokenFromRequest(request, "token")
		require.NoError(t, err)
		assert.Equal(t, "from-cookie", token)
	})
}

func TestAuthenticate_CookieBehindBasicAuthProxy(t *testing.T) {
	f := newFixture(t)

	request := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	request.AddCookie(&http.Cookie{Name: "token", Value: f.token(t, memberID).Token})

	recorder := f.do(request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, memberID, recorder.Body.String())
}

func TestReject_BrowserErrorPage(t *testing.T) {
	f := newFixture(t)

	page := func(writer http.ResponseWriter, _ *http.Request, err error) {
		writer.WriteHeader(http.StatusForbidden)
		_, _ = writer.Write([]byte("<h1>" + err.Error() + "</h1>"))
	}

	router := chi.NewRouter()
	router.Use(middleware.ResolvePresentation())
	router.Use(middleware.Authenticate(middleware.Authenticator{
		Verifier: f.tokens, Resolver: &stubResolver{members: map[string]*sec.Identity{
			memberID: {MemberID: memberID, Name: "A"},
		}}, Revocations: f.revocations, CookieName: "token",
	}))
	router.Use(middleware.UseErrorPage(page))
	router.With(middleware.RequireAdmin).Get("/admin", func(http.ResponseWriter, *http.Request) {})

	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	request.AddCookie(&http.Cookie{Name: "token", Value: f.token(t, memberID).Token})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "<h1>Not authorized as an admin</h1>", recorder.Body.String())

	// 401s still go to the login page.
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
}
