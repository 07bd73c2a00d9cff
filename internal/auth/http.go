// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/constants"
	"github.com/taibuivan/perfumery/internal/platform/middleware"
	requestutil "github.com/taibuivan/perfumery/internal/platform/request"
	"github.com/taibuivan/perfumery/internal/platform/respond"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

// # Cookie Transport

// Cookie describes the identity cookie set on login.
type Cookie struct {
	Name   string
	Secure bool
}

// Set writes the token cookie: HTTP-only, SameSite=Strict, Max-Age matching the token.
func (cookie Cookie) Set(writer http.ResponseWriter, token *sec.IssuedToken, now time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cookie.Name,
		Value:    token.Token,
		Path:     constants.TokenCookiePath,
		MaxAge:   int(token.ExpiresAt.Sub(now).Seconds()),
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the token cookie.
func (cookie Cookie) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     cookie.Name,
		Value:    "",
		Path:     constants.TokenCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// # Handler

// Handler implements the /auth endpoints.
type Handler struct {
	service *Service
	cookie  Cookie
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, cookie Cookie) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a member, returns a token and sets the cookie.
//   - POST /login    : Same response for an existing member.
//   - GET  /me       : Current member (authenticated).
//   - POST /logout   : Clears the cookie and revokes the token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

// # Request & Response Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	*member.Member
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Handlers

/*
POST /api/auth/register

Response:
  - 201: Member plus token
  - 400: Validation failure or email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input member.Registration
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookie.Set(writer, session.Token, handler.service.now())
	respond.Created(writer, "Member registered", toSessionResponse(session))
}

/*
POST /api/auth/login

Response:
  - 200: Member plus token
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookie.Set(writer, session.Token, handler.service.now())
	respond.OK(writer, toSessionResponse(session))
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Me(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if token, err := middleware.TokenFromRequest(request, handler.cookie.Name); err == nil {
		if err := handler.service.Logout(request.Context(), token); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.cookie.Clear(writer)
	respond.Message(writer, "Logged out successfully")
}

func toSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		Member:    session.Member,
		Token:     session.Token.Token,
		ExpiresAt: session.Token.ExpiresAt,
	}
}
