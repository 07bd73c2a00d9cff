// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package brand

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] for tests and tooling.
type MemoryRepository struct {
	mu     sync.RWMutex
	brands map[string]Brand
	inUse  func(id string) bool
}

// NewMemoryRepository returns an empty brand store. inUse plays the role of
// the perfume foreign key; nil means no brand is ever referenced.
func NewMemoryRepository(inUse func(id string) bool) *MemoryRepository {
	return &MemoryRepository{brands: make(map[string]Brand), inUse: inUse}
}

func (repository *MemoryRepository) nameTaken(name, exceptID string) bool {
	for id, brand := range repository.brands {
		if id != exceptID && strings.EqualFold(brand.Name, name) {
			return true
		}
	}
	return false
}

func (repository *MemoryRepository) List(_ context.Context, filter Filter) ([]*Brand, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	brands := make([]*Brand, 0, len(repository.brands))
	for _, brand := range repository.brands {
		brand := brand
		if search == "" || strings.Contains(strings.ToLower(brand.Name), search) {
			brands = append(brands, &brand)
		}
	}

	slices.SortFunc(brands, func(a, b *Brand) int {
		if filter.Sort == SortRecent {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return brands, nil
}

func (repository *MemoryRepository) Get(_ context.Context, id string) (*Brand, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	brand, ok := repository.brands[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &brand, nil
}

func (repository *MemoryRepository) Create(_ context.Context, brand *Brand) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.nameTaken(brand.Name, "") {
		return apperr.ErrBrandNameTaken
	}
	repository.brands[brand.ID] = *brand
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, brand *Brand) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.brands[brand.ID]
	if !ok {
		return apperr.NotFound(resourceName)
	}
	if repository.nameTaken(brand.Name, brand.ID) {
		return apperr.ErrBrandNameTaken
	}

	stored.Name, stored.UpdatedAt = brand.Name, brand.UpdatedAt
	repository.brands[brand.ID] = stored
	brand.CreatedAt = stored.CreatedAt
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.brands[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	if repository.inUse != nil && repository.inUse(id) {
		return apperr.ErrBrandInUse
	}
	delete(repository.brands, id)
	return nil
}
