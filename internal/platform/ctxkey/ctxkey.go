// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// It is used to store and retrieve per-request values (member identity, request ID, logger).
// Using a private, unexported type for keys prevents collisions with third-party
// packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyIdentity is the context key for the authenticated member ([sec.Identity]).
	KeyIdentity key = "identity"

	// KeyAuthFailure is the context key for the reason a presented token was rejected.
	KeyAuthFailure key = "auth_failure"

	// KeyPresentation is the context key for the resolved response mode.
	KeyPresentation key = "presentation"

	// KeyErrorPage is the context key for the browser error renderer.
	KeyErrorPage key = "error_page"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
