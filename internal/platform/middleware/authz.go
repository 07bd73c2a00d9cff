// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/constants"
	"github.com/taibuivan/perfumery/internal/platform/ctxkey"
	"github.com/taibuivan/perfumery/internal/platform/ctxutil"
	"github.com/taibuivan/perfumery/internal/platform/respond"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

// # Dependencies

// TokenVerifier checks a token's signature and expiry.
//
// Defining it here decouples the middleware from [sec.TokenService] so tests
// can inject stubs.
type TokenVerifier interface {
	Verify(token string) (*sec.TokenClaims, error)
}

// IdentityResolver loads the member behind a verified token.
// It returns an error matching [apperr.CodeNotFound] when the member is gone.
type IdentityResolver interface {
	ResolveIdentity(context context.Context, memberID string) (*sec.Identity, error)
}

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(context context.Context, tokenID string) (bool, error)
}

// Authenticator bundles what [Authenticate] needs.
type Authenticator struct {
	Verifier    TokenVerifier
	Resolver    IdentityResolver
	Revocations RevocationChecker
	CookieName  string
}

// # Presentation

// ResolvePresentation decides once per request whether failures are answered
// with the JSON envelope or with HTML pages and redirects.
func ResolvePresentation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			presentation := ctxutil.PresentationBrowser
			if strings.HasPrefix(request.URL.Path, constants.APIPrefix) {
				presentation = ctxutil.PresentationAPI
			}

			ctx := ctxutil.WithPresentation(request.Context(), presentation)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Authentication

// Authenticate resolves the caller's identity from the request token.
//
// # Flow
//  1. Look for 'Authorization: Bearer <token>', then the token cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. Verify the token, check the revocation list, load the member.
//  4. Inject [*sec.Identity] into the request context.
//
// A rejected token never answers the request here. The reason is stored with
// [ctxutil.WithAuthFailure] and reported by [RequireAuth] on guarded routes,
// so public pages keep working with a stale cookie.
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Token Extraction ───────────────────────────────────────────
			token, err := TokenFromRequest(request, auth.CookieName)
			if err != nil {
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthFailure(ctx, err)))
				return
			}

			// ── 2. Anonymous Access ───────────────────────────────────────────
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Verification & Identity ────────────────────────────────────
			identity, err := auth.identify(ctx, token)
			if err != nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "auth_token_rejected", slog.String("reason", err.Error()))
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthFailure(ctx, err)))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			recordMember(ctx, identity.MemberID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithIdentity(ctx, identity)))
		})
	}
}

func (auth Authenticator) identify(ctx context.Context, token string) (*sec.Identity, error) {
	claims, err := auth.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, sec.ErrExpiredToken) {
			return nil, apperr.ErrExpiredToken
		}
		return nil, apperr.ErrInvalidToken
	}

	if auth.Revocations != nil && claims.ID != "" {
		revoked, err := auth.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if revoked {
			return nil, apperr.ErrInvalidToken
		}
	}

	identity, err := auth.Resolver.ResolveIdentity(ctx, claims.MemberID())
	if err != nil {
		if errors.Is(err, apperr.NotFound("")) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, err
	}

	identity.TokenID = claims.ID
	return identity, nil
}

// TokenFromRequest returns the bearer token, falling back to the named cookie.
// An Authorization header with another scheme is ignored. It returns an empty
// string when neither is present, and [apperr.ErrInvalidToken] for a Bearer
// header without a token.
func TokenFromRequest(request *http.Request, cookieName string) (string, error) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	scheme, token, _ := strings.Cut(header, " ")
	if strings.EqualFold(scheme, "bearer") {
		if token = strings.TrimSpace(token); token == "" {
			return "", apperr.ErrInvalidToken
		}
		return token, nil
	}

	if cookieName == "" {
		cookieName = constants.TokenCookieName
	}
	if cookie, err := request.Cookie(cookieName); err == nil {
		return cookie.Value, nil
	}

	return "", nil
}

// # Guards

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
// API requests receive a 401 envelope, browser requests a redirect to the
// login page carrying the original location in 'next'.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) == nil {
			Reject(writer, request, authFailure(request.Context()))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin passes only members whose admin flag is set.
// It implies [RequireAuth] so routes don't need to mount both.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		identity := ctxutil.GetIdentity(request.Context())

		if identity == nil {
			Reject(writer, request, authFailure(request.Context()))
			return
		}

		if !identity.IsAdmin {
			Reject(writer, request, apperr.Forbidden("Not authorized as an admin"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// RequireSelf passes only when the caller is the member named by the path
// parameter. Admins get no exemption.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return ownerGuard(param, false)
}

// RequireSelfOrAdmin is [RequireSelf] with an admin override.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return ownerGuard(param, true)
}

func ownerGuard(param string, adminOverride bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			if identity == nil {
				Reject(writer, request, authFailure(request.Context()))
				return
			}

			if identity.Owns(chi.URLParam(request, param)) || (adminOverride && identity.IsAdmin) {
				next.ServeHTTP(writer, request)
				return
			}

			Reject(writer, request, apperr.Forbidden("You can only access your own profile"))
		})
	}
}

func authFailure(ctx context.Context) error {
	if err := ctxutil.GetAuthFailure(ctx); err != nil {
		return err
	}
	return apperr.ErrUnauthenticated
}

// ErrorPage renders a rejected browser request.
type ErrorPage func(writer http.ResponseWriter, request *http.Request, err error)

// UseErrorPage makes [Reject] answer browser requests below this point with
// page instead of plain text. 401s still redirect to the login page.
func UseErrorPage(page ErrorPage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := context.WithValue(request.Context(), ctxkey.KeyErrorPage, page)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Reject answers a failed guard in the request's presentation.
func Reject(writer http.ResponseWriter, request *http.Request, err error) {
	if ctxutil.GetPresentation(request.Context()) == ctxutil.PresentationAPI {
		respond.Error(writer, request, err)
		return
	}

	appError := respond.Classify(request, err)
	if appError.HTTPStatus == http.StatusUnauthorized {
		http.Redirect(writer, request, LoginRedirect(request), http.StatusSeeOther)
		return
	}

	if page, ok := request.Context().Value(ctxkey.KeyErrorPage).(ErrorPage); ok && page != nil {
		page(writer, request, appError)
		return
	}
	http.Error(writer, appError.Message, appError.HTTPStatus)
}

// LoginRedirect builds the login URL that returns to the current page.
func LoginRedirect(request *http.Request) string {
	return constants.LoginPath + "?next=" + url.QueryEscape(request.URL.RequestURI())
}
