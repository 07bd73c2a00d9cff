// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. It is injected into the application layer through small
// interfaces such as [middleware.TokenVerifier] and [auth.TokenIssuer].
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/perfumery/pkg/uuid"
)

var (
	// ErrInvalidToken covers malformed input, signature mismatch and unexpected algorithms.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrExpiredToken is returned when a well-formed token is past its expiry.
	ErrExpiredToken = errors.New("sec: token expired")
)

// TokenClaims represents the payload embedded inside an identity token.
//
// The member id travels in the standard 'sub' claim; 'jti' identifies the
// token itself so that logout can revoke it.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// MemberID returns the identity the token was issued for.
func (c *TokenClaims) MemberID() string {
	return c.Subject
}

// IssuedToken is the result of a successful [TokenService.Issue].
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// TokenService handles generation and verification of HS256 identity tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	return &TokenService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL reports how long issued tokens stay valid.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// WithClock returns a copy of the service that reads time from now.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

// Issue creates a signed token for memberID.
func (service *TokenService) Issue(memberID string) (*IssuedToken, error) {
	if memberID == "" {
		return nil, errors.New("sec: cannot issue token for empty member id")
	}

	currentTime := service.now()
	expiresAt := currentTime.Add(service.ttl)
	tokenID := uuid.New()

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   memberID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return &IssuedToken{
		Token:     signedToken,
		ID:        tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature and expiry of a token string.
//
// It performs no storage access; callers resolve the member afterwards.
func (service *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
