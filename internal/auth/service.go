// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements registration, login, logout and the current-member
lookup on top of the credential store in package member.

# Session Model

A session is a signed identity token. It travels as a Bearer header for API
clients and as an HTTP-only cookie for browsers; both login and registration
issue the token and set the cookie. Logout clears the cookie and puts the
token id on a revocation list until the token expires.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

// TokenIssuer issues and verifies identity tokens.
type TokenIssuer interface {
	Issue(memberID string) (*sec.IssuedToken, error)
	Verify(token string) (*sec.TokenClaims, error)
}

// Members is the part of [member.Service] the auth flows rely on.
type Members interface {
	Register(context context.Context, input member.Registration) (*member.Member, error)
	Authenticate(context context.Context, email, password string) (*member.Member, error)
	Get(context context.Context, id string) (*member.Member, error)
}

// Session is a member together with a freshly issued token.
type Session struct {
	Member *member.Member
	Token  *sec.IssuedToken
}

// Service implements the authentication use cases.
type Service struct {
	members     Members
	tokens      TokenIssuer
	revocations RevocationStore
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(members Members, tokens TokenIssuer, revocations RevocationStore, logger *slog.Logger) *Service {
	return &Service{
		members:     members,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
		now:         time.Now,
	}
}

/*
Register creates a member and signs them in.

Returns:
  - *Session: The new member and token
  - error: Validation failures or apperr.ErrEmailTaken (no member is stored)
*/
func (service *Service) Register(context context.Context, input member.Registration) (*Session, error) {
	created, err := service.members.Register(context, input)
	if err != nil {
		return nil, err
	}
	return service.issue(created)
}

/*
Login verifies the email/password pair and issues a token.

Returns:
  - error: apperr.ErrInvalidLogin on unknown email or wrong password
*/
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	found, err := service.members.Authenticate(context, email, password)
	if err != nil {
		return nil, err
	}

	session, err := service.issue(found)
	if err != nil {
		return nil, err
	}

	service.logger.Info("member_logged_in", slog.String("member_id", found.ID))
	return session, nil
}

func (service *Service) issue(found *member.Member) (*Session, error) {
	token, err := service.tokens.Issue(found.ID)
	if err != nil {
		return nil, err
	}

	found.PasswordHash = ""
	return &Session{Member: found, Token: token}, nil
}

// Me returns the profile of the authenticated member.
func (service *Service) Me(context context.Context, identity *sec.Identity) (*member.Member, error) {
	return service.members.Get(context, identity.MemberID)
}

/*
Logout revokes the presented token for the rest of its lifetime.

A missing or already invalid token is not an error: logout always succeeds
from the client's point of view.
*/
func (service *Service) Logout(context context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := service.tokens.Verify(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}

	remaining := claims.ExpiresAt.Sub(service.now())
	if err := service.revocations.Revoke(context, claims.ID, remaining); err != nil {
		return err
	}

	service.logger.Info("member_logged_out", slog.String("member_id", claims.MemberID()))
	return nil
}
