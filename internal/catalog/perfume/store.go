// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume

import "context"

// Repository persists perfumes together with their comments.
//
// Reads populate BrandName. Create and Update never touch the comment list;
// comment changes go through MutateComments only.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Perfume, int, error)
	Get(context context.Context, id string) (*Perfume, error)
	Create(context context.Context, perfume *Perfume) error
	Update(context context.Context, perfume *Perfume) error
	Delete(context context.Context, id string) error

	// MutateComments loads the perfume under an exclusive lock, runs mutate
	// and stores the resulting comment list. Nothing is written when mutate
	// fails.
	MutateComments(context context.Context, id string, mutate func(*Perfume) error) (*Perfume, error)

	// ListCommentedBy returns every perfume carrying a comment by memberID,
	// most recently created first.
	ListCommentedBy(context context.Context, memberID string) ([]*Perfume, error)
}
