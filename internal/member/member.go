// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package member implements the credential store and profile self-service.

A Member is a registered shopper, optionally flagged as administrator.
Profile fields are mutated only by the member themselves; the admin flag
never changes through the API.

# Invariants

  - Email is unique and stored case-folded.
  - The password hash is recomputed only when a new plaintext is supplied.
  - The hash never leaves this package in a serialized form.
*/
package member

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/taibuivan/perfumery/internal/platform/sec"
	"github.com/taibuivan/perfumery/internal/platform/validate"
)

// # Domain Entities

// Member represents a registered customer of the shop.
type Member struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	YOB          int       `json:"yob"`
	Gender       bool      `json:"gender"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity projects the member into the request-scoped identity.
func (member *Member) Identity() *sec.Identity {
	return &sec.Identity{
		MemberID: member.ID,
		Email:    member.Email,
		Name:     member.Name,
		IsAdmin:  member.IsAdmin,
	}
}

// Registration is the input for creating a new member.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	YOB      int    `json:"yob"`
	Gender   bool   `json:"gender"`
}

// ProfileUpdate carries the profile fields a member may change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	YOB    *int    `json:"yob"`
	Gender *bool   `json:"gender"`
}

// PasswordChange is the input for PUT /members/{id}/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Filter holds the parameters for a member search.
type Filter struct {
	// Search matches name or email, case-insensitive substring.
	Search string

	// AdminsOnly restricts the listing to administrators.
	AdminsOnly bool
}

// # Field Identifiers

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldYOB             = "yob"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

const (
	// MinPasswordLength is the shortest accepted plaintext password.
	MinPasswordLength = 6

	// MinYOB is the earliest accepted year of birth.
	MinYOB = 1900

	maxNameLength  = 100
	maxEmailLength = 254
)

// # Normalization & Validation

var emailFolder = cases.Fold()

// NormalizeEmail trims and case-folds an email address so lookups and the
// unique index agree on one spelling.
func NormalizeEmail(email string) string {
	return emailFolder.String(strings.TrimSpace(email))
}

func validateEmail(validator *validate.Validator, email string) {
	validator.Required(FieldEmail, email).
		MaxLen(FieldEmail, email, maxEmailLength).
		Email(FieldEmail, email)
}

func validateName(validator *validate.Validator, name string) {
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
}

func validateYOB(validator *validate.Validator, yob int, now time.Time) {
	validator.Range(FieldYOB, yob, MinYOB, now.Year())
}

func validatePassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password).MinLen(field, password, MinPasswordLength)
}
