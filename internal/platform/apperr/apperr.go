// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the perfumery API.

It provides a rich error type that bridges the gap between low-level domain/storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code and a client-safe message.
  - Mapping: Explicit mapping from AppError to standard HTTP status codes.

Every error that leaves the service layer should be an [AppError] so the
response envelope stays consistent.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Codes

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeExpiredToken     = "EXPIRED_TOKEN"
	CodeInvalidLogin     = "INVALID_CREDENTIALS"
	CodeForbidden        = "FORBIDDEN"
	CodeNotOwner         = "NOT_OWNER"
	CodeNotFound         = "NOT_FOUND"
	CodeEmailTaken       = "EMAIL_TAKEN"
	CodeBrandNameTaken   = "BRAND_NAME_TAKEN"
	CodeBrandInUse       = "BRAND_IN_USE"
	CodeDuplicateComment = "DUPLICATE_COMMENT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "NOT_OWNER").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches two AppErrors by Code, so sentinel values like
// [ErrDuplicateComment] work with [errors.Is].
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// # Client Errors (4xx)

// New creates an [AppError] with an arbitrary code and status.
func New(status int, code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// BadRequest creates a 400 [AppError] carrying a domain-specific code.
func BadRequest(code, msg string) *AppError {
	return New(http.StatusBadRequest, code, msg)
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Perfume") // Returns "Perfume not found"
func NotFound(resource string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// Unauthorized creates a 401 [AppError] with the generic UNAUTHENTICATED code.
func Unauthorized(msg string) *AppError {
	return New(http.StatusUnauthorized, CodeUnauthenticated, msg)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, msg)
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return New(http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded")
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Domain Sentinels

// These are matched by code via [AppError.Is]; handlers never compare pointers.
var (
	ErrUnauthenticated  = New(http.StatusUnauthorized, CodeUnauthenticated, "Not authorized, no token")
	ErrInvalidToken     = New(http.StatusUnauthorized, CodeInvalidToken, "Not authorized, token failed")
	ErrExpiredToken     = New(http.StatusUnauthorized, CodeExpiredToken, "Not authorized, token expired")
	ErrInvalidLogin     = New(http.StatusUnauthorized, CodeInvalidLogin, "Invalid credentials")
	ErrNotOwner         = New(http.StatusForbidden, CodeNotOwner, "You can only modify your own comments")
	ErrDuplicateComment = BadRequest(CodeDuplicateComment, "You have already commented on this perfume")
	ErrEmailTaken       = BadRequest(CodeEmailTaken, "Member already exists with this email")
	ErrBrandNameTaken   = BadRequest(CodeBrandNameTaken, "Brand name already exists")
	ErrBrandInUse       = BadRequest(CodeBrandInUse, "Brand is still referenced by perfumes")
)

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
