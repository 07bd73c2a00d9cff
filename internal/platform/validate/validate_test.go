// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Chanel", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "tai").
		MinLen("username", "tai", 3).
		MaxLen("username", "tai", 10).
		Email("email", "tai@perfumery.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_URLAndNumbers covers image references and non-negative amounts.
*/
func TestValidator_URLAndNumbers(t *testing.T) {
	tests := []struct {
		name    string
		build   func(v *validate.Validator)
		isValid bool
	}{
		{"absolute_url", func(v *validate.Validator) { v.URL("uri", "https://cdn.example.com/sauvage.jpg") }, true},
		{"relative_path", func(v *validate.Validator) { v.URL("uri", "/images/sauvage.jpg") }, true},
		{"protocol_relative", func(v *validate.Validator) { v.URL("uri", "//evil.example.com/x.jpg") }, false},
		{"ftp_scheme", func(v *validate.Validator) { v.URL("uri", "ftp://example.com/x.jpg") }, false},
		{"zero_price", func(v *validate.Validator) { v.NonNegative("price", 0) }, true},
		{"negative_volume", func(v *validate.Validator) { v.NonNegative("volume", -1) }, false},
		{"rating_in_range", func(v *validate.Validator) { v.Range("rating", 5, 1, 5) }, true},
		{"rating_out_of_range", func(v *validate.Validator) { v.Range("rating", 6, 1, 5) }, false},
		{"enum_member", func(v *validate.Validator) { v.OneOf("concentration", "EDP", "EDP", "EDT") }, true},
		{"enum_stranger", func(v *validate.Validator) { v.OneOf("concentration", "Cologne", "EDP", "EDT") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.build(v)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}
