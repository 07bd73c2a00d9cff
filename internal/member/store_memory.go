// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] used by tests and tooling
// that run without Postgres. It enforces the same email uniqueness.
type MemoryRepository struct {
	mu      sync.RWMutex
	members map[string]Member
}

// NewMemoryRepository returns an empty in-memory credential store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{members: make(map[string]Member)}
}

func (repository *MemoryRepository) emailTaken(email, exceptID string) bool {
	for id, member := range repository.members {
		if id != exceptID && member.Email == email {
			return true
		}
	}
	return false
}

func (repository *MemoryRepository) Create(_ context.Context, member *Member) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.emailTaken(member.Email, "") {
		return apperr.ErrEmailTaken
	}
	repository.members[member.ID] = *member
	return nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Member, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	member, ok := repository.members[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	member.PasswordHash = ""
	return &member, nil
}

func (repository *MemoryRepository) FindByEmail(_ context.Context, email string) (*Member, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, member := range repository.members {
		if member.Email == email {
			return &member, nil
		}
	}
	return nil, apperr.NotFound(resourceName)
}

func (repository *MemoryRepository) FindByIDs(_ context.Context, ids []string) ([]*Member, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	members := make([]*Member, 0, len(ids))
	for _, id := range ids {
		if member, ok := repository.members[id]; ok {
			member.PasswordHash = ""
			members = append(members, &member)
		}
	}
	return members, nil
}

func (repository *MemoryRepository) UpdateProfile(_ context.Context, member *Member) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.members[member.ID]
	if !ok {
		return apperr.NotFound(resourceName)
	}
	if repository.emailTaken(member.Email, member.ID) {
		return apperr.ErrEmailTaken
	}

	stored.Email, stored.Name, stored.YOB, stored.Gender = member.Email, member.Name, member.YOB, member.Gender
	stored.UpdatedAt = member.UpdatedAt
	repository.members[member.ID] = stored
	return nil
}

func (repository *MemoryRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.members[id]
	if !ok {
		return apperr.NotFound(resourceName)
	}
	stored.PasswordHash = passwordHash
	repository.members[id] = stored
	return nil
}

func (repository *MemoryRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*Member, 0)
	for _, member := range repository.members {
		member := member
		if search != "" &&
			!strings.Contains(strings.ToLower(member.Name), search) &&
			!strings.Contains(strings.ToLower(member.Email), search) {
			continue
		}
		if filter.AdminsOnly && !member.IsAdmin {
			continue
		}
		member.PasswordHash = ""
		matched = append(matched, &member)
	}

	slices.SortFunc(matched, func(a, b *Member) int { return b.CreatedAt.Compare(a.CreatedAt) })

	total := len(matched)
	if offset >= total {
		return []*Member{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

// SetAdmin flips the admin flag. The API never does this; seeding and tests do.
func (repository *MemoryRepository) SetAdmin(id string, isAdmin bool) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if stored, ok := repository.members[id]; ok {
		stored.IsAdmin = isAdmin
		repository.members[id] = stored
	}
}
