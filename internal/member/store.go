// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import "context"

// Repository is the credential store.
//
// Implementations return an error matching [apperr.ErrEmailTaken] when a
// write collides with another member's email, and a NotFound error when the
// member does not exist.
type Repository interface {
	Create(context context.Context, member *Member) error
	FindByID(context context.Context, id string) (*Member, error)
	// FindByEmail also loads the password hash.
	FindByEmail(context context.Context, email string) (*Member, error)
	// FindByIDs returns the members that exist among ids, in no particular order.
	FindByIDs(context context.Context, ids []string) ([]*Member, error)
	UpdateProfile(context context.Context, member *Member) error
	UpdatePassword(context context.Context, id, passwordHash string) error
	List(context context.Context, filter Filter, limit, offset int) ([]*Member, int, error)
}
