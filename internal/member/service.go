// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/sec"
	"github.com/taibuivan/perfumery/internal/platform/validate"
	"github.com/taibuivan/perfumery/pkg/pointer"
	"github.com/taibuivan/perfumery/pkg/uuid"
)

// ErrWrongPassword is returned when the current password does not match.
var ErrWrongPassword = apperr.New(http.StatusUnauthorized, apperr.CodeInvalidLogin, "Current password is incorrect")

// Service implements registration, credential checks and profile self-service.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new member service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

/*
Register validates input, hashes the password and creates a non-admin member.

Returns:
  - *Member: The stored member
  - error: Validation errors or apperr.ErrEmailTaken
*/
func (service *Service) Register(context context.Context, input Registration) (*Member, error) {
	input.Email = NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validateEmail(validator, input.Email)
	validatePassword(validator, FieldPassword, input.Password)
	validateName(validator, input.Name)
	validateYOB(validator, input.YOB, service.now())
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// The unique index is authoritative; this lookup only gives a clean error
	// for the common case without a wasted bcrypt round.
	if _, err := service.repo.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.ErrEmailTaken
	} else if !errors.Is(err, apperr.NotFound("")) {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("member_register_hash_failed: %w", err))
	}

	now := service.now().UTC()
	member := &Member{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		YOB:          input.YOB,
		Gender:       input.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repo.Create(context, member); err != nil {
		return nil, err
	}

	service.logger.Info("member_registered", slog.String("member_id", member.ID))
	return member, nil
}

/*
Authenticate checks an email/password pair.

Returns:
  - *Member: The matching member
  - error: apperr.ErrInvalidLogin for unknown email or wrong password
*/
func (service *Service) Authenticate(context context.Context, email, password string) (*Member, error) {
	member, err := service.repo.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperr.NotFound("")) {
			return nil, apperr.ErrInvalidLogin
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, member.PasswordHash) {
		return nil, apperr.ErrInvalidLogin
	}

	return member, nil
}

// Get returns a member by id.
func (service *Service) Get(context context.Context, id string) (*Member, error) {
	return service.repo.FindByID(context, id)
}

// ResolveIdentity loads the member behind a verified token.
func (service *Service) ResolveIdentity(context context.Context, memberID string) (*sec.Identity, error) {
	member, err := service.repo.FindByID(context, memberID)
	if err != nil {
		return nil, err
	}
	return member.Identity(), nil
}

/*
UpdateProfile applies the supplied profile fields.

Only non-nil fields change. The password and admin flag are never touched.
*/
func (service *Service) UpdateProfile(context context.Context, id string, update ProfileUpdate) (*Member, error) {
	member, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if pointer.Assign(&member.Email, pointer.Map(update.Email, NormalizeEmail)) {
		validateEmail(validator, member.Email)
	}
	if pointer.Assign(&member.Name, pointer.Map(update.Name, strings.TrimSpace)) {
		validateName(validator, member.Name)
	}
	if pointer.Assign(&member.YOB, update.YOB) {
		validateYOB(validator, member.YOB, service.now())
	}
	pointer.Assign(&member.Gender, update.Gender)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	member.UpdatedAt = service.now().UTC()
	if err := service.repo.UpdateProfile(context, member); err != nil {
		return nil, err
	}

	service.logger.Info("member_profile_updated", slog.String("member_id", member.ID))
	return member, nil
}

/*
ChangePassword verifies the current password and stores a hash of the new one.
*/
func (service *Service) ChangePassword(context context.Context, id string, change PasswordChange) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, change.CurrentPassword)
	validatePassword(validator, FieldNewPassword, change.NewPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	// FindByID never carries the hash; reload through the credential path.
	withHash, err := service.repo.FindByEmail(context, current.Email)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(change.CurrentPassword, withHash.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := sec.HashPassword(change.NewPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("member_change_password_hash_failed: %w", err))
	}

	if err := service.repo.UpdatePassword(context, id, hash); err != nil {
		return err
	}

	service.logger.Info("member_password_changed", slog.String("member_id", id))
	return nil
}

// List returns a page of members matching filter.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Author is the public projection of a member shown next to a comment.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Authors resolves comment authors by id. Unknown ids are absent from the map.
func (service *Service) Authors(context context.Context, ids []string) (map[string]Author, error) {
	members, err := service.repo.FindByIDs(context, ids)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]Author, len(members))
	for _, member := range members {
		authors[member.ID] = Author{ID: member.ID, Name: member.Name, Email: member.Email}
	}
	return authors, nil
}
