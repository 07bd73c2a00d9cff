// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import "context"

// Repository persists brands.
//
// Create and Update return [apperr.ErrBrandNameTaken] on a name collision;
// Delete returns [apperr.ErrBrandInUse] while perfumes reference the brand.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Brand, error)
	Get(context context.Context, id string) (*Brand, error)
	Create(context context.Context, brand *Brand) error
	Update(context context.Context, brand *Brand) error
	Delete(context context.Context, id string) error
}
