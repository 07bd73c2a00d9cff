// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/platform/sec"
)

func newTokenService(t *testing.T, secret string) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService([]byte(secret), "perfumery.test", 7*24*time.Hour)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies an issued token resolves to the same member id.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "super-secret")

	issued, err := service.Issue("member-123")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := service.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "member-123", claims.MemberID())
	assert.Equal(t, issued.ID, claims.ID)
}

/*
TestTokenService_Expired verifies tokens fail after the expiry window.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t, "super-secret")

	issued, err := service.Issue("member-123")
	require.NoError(t, err)

	later := service.WithClock(func() time.Time { return time.Now().Add(7*24*time.Hour + time.Minute) })
	_, err = later.Verify(issued.Token)
	assert.ErrorIs(t, err, sec.ErrExpiredToken)

	// Just inside the window it still verifies.
	almost := service.WithClock(func() time.Time { return time.Now().Add(7*24*time.Hour - time.Minute) })
	_, err = almost.Verify(issued.Token)
	assert.NoError(t, err)
}

/*
TestTokenService_Invalid covers signature mismatch and malformed input.
*/
func TestTokenService_Invalid(t *testing.T) {
	issuer := newTokenService(t, "right-secret")
	other := newTokenService(t, "wrong-secret")

	issued, err := issuer.Issue("member-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong_secret", issued.Token},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
		{"tampered", issued.Token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := other.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
			assert.NotErrorIs(t, err, sec.ErrExpiredToken)
		})
	}
}

/*
TestNewTokenService_RejectsBadConfig guards against empty secrets and non-positive TTLs.
*/
func TestNewTokenService_RejectsBadConfig(t *testing.T) {
	_, err := sec.NewTokenService(nil, "iss", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService([]byte("s"), "iss", 0)
	assert.Error(t, err)

	service := newTokenService(t, "s")
	_, err = service.Issue("")
	assert.Error(t, err)
}
