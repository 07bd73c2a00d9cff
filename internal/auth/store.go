// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// RevocationStore remembers token ids invalidated by logout until the token
// would have expired anyway.
//
// # Implementations
//
// Redis in production ([RedisRevocationStore]), memory in tests.
type RevocationStore interface {
	// Revoke marks tokenID as unusable for ttl.
	Revoke(context context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether tokenID was revoked and has not aged out.
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
