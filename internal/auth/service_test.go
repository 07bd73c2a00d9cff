// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/auth"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/sec"
)

type harness struct {
	service     *auth.Service
	members     *member.Service
	repo        *member.MemoryRepository
	tokens      *sec.TokenService
	revocations *auth.MemoryRevocationStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := member.NewMemoryRepository()
	members := member.NewService(repo, logger)

	tokens, err := sec.NewTokenService([]byte("auth-test-secret"), "perfumery.test", 7*24*time.Hour)
	require.NoError(t, err)

	revocations := auth.NewMemoryRevocationStore()
	return &harness{
		service:     auth.NewService(members, tokens, revocations, logger),
		members:     members,
		repo:        repo,
		tokens:      tokens,
		revocations: revocations,
	}
}

func registration(email string) member.Registration {
	return member.Registration{Email: email, Password: "member123", Name: "Member", YOB: 1990}
}

func TestService_RegisterIssuesToken(t *testing.T) {
	h := newHarness(t)

	session, err := h.service.Register(context.Background(), registration("new@test.com"))
	require.NoError(t, err)

	claims, err := h.tokens.Verify(session.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Member.ID, claims.MemberID())
	assert.Empty(t, session.Member.PasswordHash)
}

func TestService_RegisterDuplicateStoresNothing(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.service.Register(ctx, registration("dup@test.com"))
	require.NoError(t, err)

	_, err = h.service.Register(ctx, registration("DUP@test.com"))
	require.ErrorIs(t, err, apperr.ErrEmailTaken)

	_, total, err := h.members.List(ctx, member.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestService_LoginTokenResolvesToSameMember(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	registered, err := h.service.Register(ctx, registration("login@test.com"))
	require.NoError(t, err)

	session, err := h.service.Login(ctx, "login@test.com", "member123")
	require.NoError(t, err)

	claims, err := h.tokens.Verify(session.Token.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.Member.ID, claims.MemberID())

	t.Run("expires", func(t *testing.T) {
		later := h.tokens.WithClock(func() time.Time { return session.Token.ExpiresAt.Add(time.Second) })
		_, err := later.Verify(session.Token.Token)
		assert.ErrorIs(t, err, sec.ErrExpiredToken)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := h.service.Login(ctx, "login@test.com", "nope")
		assert.ErrorIs(t, err, apperr.ErrInvalidLogin)
	})
}

func TestService_LogoutRevokes(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	session, err := h.service.Register(ctx, registration("bye@test.com"))
	require.NoError(t, err)

	require.NoError(t, h.service.Logout(ctx, session.Token.Token))

	revoked, err := h.revocations.IsRevoked(ctx, session.Token.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, h.service.Logout(ctx, ""))
	assert.NoError(t, h.service.Logout(ctx, "garbage"))
}

func TestMemoryRevocationStore_AgesOut(t *testing.T) {
	ctx := context.Background()
	store := auth.NewMemoryRevocationStore()

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Millisecond))
	require.NoError(t, store.Revoke(ctx, "jti-2", time.Hour))
	require.NoError(t, store.Revoke(ctx, "jti-3", -time.Second))

	time.Sleep(5 * time.Millisecond)

	revoked, _ := store.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "jti-2")
	assert.True(t, revoked)
	revoked, _ = store.IsRevoked(ctx, "jti-3")
	assert.False(t, revoked)
}
