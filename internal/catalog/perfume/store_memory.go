// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] for tests and tooling.
// A single mutex plays the role of the row lock taken by MutateComments.
// Brand lookups happen outside the mutex so the brand store may call
// UsesBrand while holding its own lock.
type MemoryRepository struct {
	mu       sync.Mutex
	perfumes map[string]Perfume
	brands   BrandLookup
}

// NewMemoryRepository returns an empty perfume store. brands stands in for
// the foreign key and the brand name join.
func NewMemoryRepository(brands BrandLookup) *MemoryRepository {
	return &MemoryRepository{perfumes: make(map[string]Perfume), brands: brands}
}

// UsesBrand reports whether any perfume references brandID.
func (repository *MemoryRepository) UsesBrand(brandID string) bool {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, perfume := range repository.perfumes {
		if perfume.BrandID == brandID {
			return true
		}
	}
	return false
}

func clone(perfume Perfume) *Perfume {
	perfume.Comments = append(Comments{}, perfume.Comments...)
	return &perfume
}

func (repository *MemoryRepository) hydrate(context context.Context, perfume *Perfume) *Perfume {
	if brand, err := repository.brands.Get(context, perfume.BrandID); err == nil {
		perfume.BrandName = brand.Name
	}
	return perfume
}

func (repository *MemoryRepository) brandExists(context context.Context, id string) bool {
	_, err := repository.brands.Get(context, id)
	return err == nil
}

func matches(perfume Perfume, filter Filter) bool {
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" &&
		!strings.Contains(strings.ToLower(perfume.Name), search) {
		return false
	}
	if filter.BrandID != "" && perfume.BrandID != filter.BrandID {
		return false
	}
	if filter.TargetAudience != "" && perfume.TargetAudience != filter.TargetAudience {
		return false
	}
	if filter.Concentration != "" && perfume.Concentration != filter.Concentration {
		return false
	}
	return true
}

func compare(sort Sort) func(a, b *Perfume) int {
	recent := func(a, b *Perfume) int { return b.CreatedAt.Compare(a.CreatedAt) }

	switch sort {
	case SortName:
		return func(a, b *Perfume) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortPriceAsc:
		return func(a, b *Perfume) int {
			if a.Price != b.Price {
				if a.Price < b.Price {
					return -1
				}
				return 1
			}
			return recent(a, b)
		}
	case SortPriceDesc:
		return func(a, b *Perfume) int {
			if a.Price != b.Price {
				if a.Price > b.Price {
					return -1
				}
				return 1
			}
			return recent(a, b)
		}
	default:
		return recent
	}
}

func (repository *MemoryRepository) snapshot(keep func(Perfume) bool) []*Perfume {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	perfumes := make([]*Perfume, 0)
	for _, perfume := range repository.perfumes {
		if keep(perfume) {
			perfumes = append(perfumes, clone(perfume))
		}
	}
	return perfumes
}

func (repository *MemoryRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Perfume, int, error) {
	matched := repository.snapshot(func(perfume Perfume) bool { return matches(perfume, filter) })
	slices.SortFunc(matched, compare(filter.Sort))

	total := len(matched)
	if offset >= total {
		return []*Perfume{}, total, nil
	}

	page := matched[offset:min(offset+limit, total)]
	for _, perfume := range page {
		repository.hydrate(context, perfume)
	}
	return page, total, nil
}

func (repository *MemoryRepository) Get(context context.Context, id string) (*Perfume, error) {
	repository.mu.Lock()
	perfume, ok := repository.perfumes[id]
	repository.mu.Unlock()

	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return repository.hydrate(context, clone(perfume)), nil
}

func (repository *MemoryRepository) Create(context context.Context, perfume *Perfume) error {
	if !repository.brandExists(context, perfume.BrandID) {
		return ErrUnknownBrand
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored := clone(*perfume)
	stored.Comments = Comments{}
	stored.BrandName = ""
	repository.perfumes[perfume.ID] = *stored
	return nil
}

func (repository *MemoryRepository) Update(context context.Context, perfume *Perfume) error {
	brandExists := repository.brandExists(context, perfume.BrandID)

	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.perfumes[perfume.ID]
	if !ok {
		return apperr.NotFound(resourceName)
	}
	if !brandExists {
		return ErrUnknownBrand
	}

	updated := clone(*perfume)
	updated.Comments = stored.Comments
	updated.CreatedAt = stored.CreatedAt
	updated.BrandName = ""
	repository.perfumes[perfume.ID] = *updated
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.perfumes[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	delete(repository.perfumes, id)
	return nil
}

func (repository *MemoryRepository) mutate(id string, mutate func(*Perfume) error) (*Perfume, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.perfumes[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}

	working := clone(stored)
	if err := mutate(working); err != nil {
		return nil, err
	}

	stored.Comments = append(Comments{}, working.Comments...)
	repository.perfumes[id] = stored
	return working, nil
}

func (repository *MemoryRepository) MutateComments(context context.Context, id string, mutate func(*Perfume) error) (*Perfume, error) {
	perfume, err := repository.mutate(id, mutate)
	if err != nil {
		return nil, err
	}
	return repository.hydrate(context, perfume), nil
}

func (repository *MemoryRepository) ListCommentedBy(context context.Context, memberID string) ([]*Perfume, error) {
	perfumes := repository.snapshot(func(perfume Perfume) bool {
		return perfume.Comments.ByAuthor(memberID) != nil
	})
	slices.SortFunc(perfumes, compare(SortRecent))

	for _, perfume := range perfumes {
		repository.hydrate(context, perfume)
	}
	return perfumes, nil
}
