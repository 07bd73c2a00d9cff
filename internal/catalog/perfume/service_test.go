// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/catalog/perfume"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/sec"
	"github.com/taibuivan/perfumery/pkg/pagination"
	"github.com/taibuivan/perfumery/pkg/pointer"
)

// catalogFixture wires the perfume service to in-memory brand and member stores.
type catalogFixture struct {
	brands   *brand.Service
	members  *member.Service
	perfumes *perfume.Service

	dior   *brand.Brand
	chanel *brand.Brand
	alice  *sec.Identity
	bob    *sec.Identity
	admin  *sec.Identity
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var perfumeRepo *perfume.MemoryRepository
	brandRepo := brand.NewMemoryRepository(func(id string) bool { return perfumeRepo.UsesBrand(id) })
	perfumeRepo = perfume.NewMemoryRepository(brandRepo)

	memberRepo := member.NewMemoryRepository()
	fixture := &catalogFixture{
		brands:  brand.NewService(brandRepo, logger),
		members: member.NewService(memberRepo, logger),
	}
	fixture.perfumes = perfume.NewService(perfumeRepo, fixture.brands, fixture.members, logger)

	var err error
	fixture.dior, err = fixture.brands.Create(ctx, brand.Input{Name: "Dior"})
	require.NoError(t, err)
	fixture.chanel, err = fixture.brands.Create(ctx, brand.Input{Name: "Chanel"})
	require.NoError(t, err)

	register := func(email, name string) *sec.Identity {
		registered, err := fixture.members.Register(ctx, member.Registration{
			Email: email, Password: "member123", Name: name, YOB: 1990,
		})
		require.NoError(t, err)
		return registered.Identity()
	}
	fixture.alice = register("alice@test.com", "Alice")
	fixture.bob = register("bob@test.com", "Bob")
	fixture.admin = register("admin@test.com", "Admin")
	memberRepo.SetAdmin(fixture.admin.MemberID, true)
	fixture.admin.IsAdmin = true

	return fixture
}

func (fixture *catalogFixture) input(name string, brandID string) perfume.Input {
	return perfume.Input{
		Name:           name,
		URI:            "https://img.example.com/" + name + ".jpg",
		Price:          150,
		Concentration:  perfume.ConcentrationEDP,
		Description:    "A signature scent",
		Ingredients:    "Bergamot, Amber",
		Volume:         100,
		TargetAudience: perfume.AudienceUnisex,
		BrandID:        brandID,
	}
}

func (fixture *catalogFixture) create(t *testing.T, input perfume.Input) *perfume.Perfume {
	t.Helper()
	created, err := fixture.perfumes.Create(context.Background(), input)
	require.NoError(t, err)
	return created
}

func TestService_Create(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()

	created := fixture.create(t, fixture.input("Sauvage", fixture.dior.ID))
	assert.Equal(t, "Dior", created.BrandName)
	assert.Empty(t, created.Comments)

	t.Run("unknown_brand", func(t *testing.T) {
		_, err := fixture.perfumes.Create(ctx, fixture.input("Ghost", "00000000-0000-0000-0000-000000000000"))
		assert.ErrorIs(t, err, perfume.ErrUnknownBrand)
	})

	t.Run("invalid", func(t *testing.T) {
		input := fixture.input("Cheap", fixture.dior.ID)
		input.Price = -5
		_, err := fixture.perfumes.Create(ctx, input)
		assert.ErrorIs(t, err, apperr.ValidationError(""))
	})

	t.Run("brand_in_use", func(t *testing.T) {
		assert.ErrorIs(t, fixture.brands.Delete(ctx, fixture.dior.ID), apperr.ErrBrandInUse)
		assert.NoError(t, fixture.brands.Delete(ctx, fixture.chanel.ID))
	})
}

func TestService_List(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()

	sauvage := fixture.input("Sauvage", fixture.dior.ID)
	sauvage.TargetAudience, sauvage.Price = perfume.AudienceMale, 90
	fixture.create(t, sauvage)

	missDior := fixture.input("Miss Dior", fixture.dior.ID)
	missDior.TargetAudience, missDior.Concentration, missDior.Price = perfume.AudienceFemale, perfume.ConcentrationEDT, 110
	fixture.create(t, missDior)

	no5 := fixture.input("No 5", fixture.chanel.ID)
	no5.Concentration, no5.Price = perfume.ConcentrationExtrait, 300
	fixture.create(t, no5)

	firstPage := pagination.Params{Page: 1, Limit: 10}

	tests := []struct {
		name   string
		filter perfume.Filter
		want   []string
	}{
		{"by_brand_sorted_by_name", perfume.Filter{BrandID: fixture.dior.ID, Sort: perfume.SortName}, []string{"Miss Dior", "Sauvage"}},
		{"search_ignores_case", perfume.Filter{Search: "DIOR"}, []string{"Miss Dior"}},
		{"audience", perfume.Filter{TargetAudience: perfume.AudienceMale}, []string{"Sauvage"}},
		{"concentration", perfume.Filter{Concentration: perfume.ConcentrationExtrait}, []string{"No 5"}},
		{"price_desc", perfume.Filter{Sort: perfume.SortPriceDesc}, []string{"No 5", "Miss Dior", "Sauvage"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perfumes, total, err := fixture.perfumes.List(ctx, tt.filter, firstPage)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), total)

			names := make([]string, 0, len(perfumes))
			for _, p := range perfumes {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	t.Run("pagination", func(t *testing.T) {
		perfumes, total, err := fixture.perfumes.List(ctx, perfume.Filter{Sort: perfume.SortPriceAsc}, pagination.Params{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, perfumes, 1)
		assert.Equal(t, "No 5", perfumes[0].Name)
		assert.Equal(t, "Chanel", perfumes[0].BrandName)
	})

	t.Run("bad_filter", func(t *testing.T) {
		_, _, err := fixture.perfumes.List(ctx, perfume.Filter{TargetAudience: "kids"}, firstPage)
		assert.ErrorIs(t, err, apperr.ValidationError(""))
	})
}

func TestService_UpdateKeepsComments(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()

	created := fixture.create(t, fixture.input("Sauvage", fixture.dior.ID))
	_, err := fixture.perfumes.AddComment(ctx, created.ID, fixture.alice, perfume.CommentInput{Rating: 5, Content: "Great"})
	require.NoError(t, err)

	updated, err := fixture.perfumes.Update(ctx, created.ID, perfume.Patch{
		Price:   pointer.To(99.5),
		BrandID: pointer.To(fixture.chanel.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, 99.5, updated.Price)
	assert.Equal(t, "Chanel", updated.BrandName)
	assert.Equal(t, "Sauvage", updated.Name)

	detail, err := fixture.perfumes.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 1)

	_, err = fixture.perfumes.Update(ctx, created.ID, perfume.Patch{BrandID: pointer.To("missing")})
	assert.ErrorIs(t, err, perfume.ErrUnknownBrand)

	_, err = fixture.perfumes.Update(ctx, "missing", perfume.Patch{})
	assert.ErrorIs(t, err, apperr.NotFound(""))
}

// TestService_OneCommentPerMember walks the Sauvage review scenario: one
// review per member, authors resolved on the detail page.
func TestService_OneCommentPerMember(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()
	sauvage := fixture.create(t, fixture.input("Sauvage", fixture.dior.ID))

	_, err := fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.alice, perfume.CommentInput{Rating: 5, Content: "Iconic"})
	require.NoError(t, err)

	_, err = fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.alice, perfume.CommentInput{Rating: 1, Content: "Changed my mind"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateComment)

	detail, err := fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.bob, perfume.CommentInput{Rating: 4, Content: "Strong"})
	require.NoError(t, err)

	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "Alice", detail.Comments[0].Author.Name)
	assert.Equal(t, "bob@test.com", detail.Comments[1].Author.Email)
	assert.Equal(t, perfume.Rating{Average: 4.5, Count: 2}, detail.Summary)
}

func TestService_CommentOwnership(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()
	sauvage := fixture.create(t, fixture.input("Sauvage", fixture.dior.ID))

	detail, err := fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.alice, perfume.CommentInput{Rating: 3, Content: "Fine"})
	require.NoError(t, err)
	commentID := detail.Comments[0].ID

	t.Run("admin_cannot_edit", func(t *testing.T) {
		_, err := fixture.perfumes.UpdateComment(ctx, sauvage.ID, commentID, fixture.admin, perfume.CommentPatch{Rating: pointer.To(1)})
		assert.ErrorIs(t, err, apperr.ErrNotOwner)
	})

	t.Run("other_member_cannot_delete", func(t *testing.T) {
		_, err := fixture.perfumes.DeleteComment(ctx, sauvage.ID, commentID, fixture.bob)
		assert.ErrorIs(t, err, apperr.ErrNotOwner)
	})

	t.Run("unknown_perfume", func(t *testing.T) {
		_, err := fixture.perfumes.DeleteComment(ctx, "missing", commentID, fixture.alice)
		assert.ErrorIs(t, err, apperr.NotFound(""))
	})

	t.Run("author_edits_then_deletes", func(t *testing.T) {
		updated, err := fixture.perfumes.UpdateComment(ctx, sauvage.ID, commentID, fixture.alice, perfume.CommentPatch{Content: pointer.To("Grew on me")})
		require.NoError(t, err)
		assert.Equal(t, "Grew on me", updated.Comments[0].Content)
		assert.Equal(t, 3, updated.Comments[0].Rating)

		remaining, err := fixture.perfumes.DeleteComment(ctx, sauvage.ID, commentID, fixture.alice)
		require.NoError(t, err)
		assert.Empty(t, remaining.Comments)

		// A deleted review frees the slot.
		_, err = fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.alice, perfume.CommentInput{Rating: 4, Content: "Back again"})
		assert.NoError(t, err)
	})
}

func TestService_ConcurrentCommentsFromOneMember(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()
	sauvage := fixture.create(t, fixture.input("Sauvage", fixture.dior.ID))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.alice, perfume.CommentInput{Rating: 5, Content: "Race"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrDuplicateComment)
	}
	assert.Equal(t, 1, succeeded)

	detail, err := fixture.perfumes.Get(ctx, sauvage.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 1)
}

func TestService_MemberComments(t *testing.T) {
	fixture := newCatalogFixture(t)
	ctx := context.Background()
	sauvage := fixture.create(t, fixture.input("Sauvage", fixture.dior.ID))
	no5 := fixture.create(t, fixture.input("No 5", fixture.chanel.ID))

	_, err := fixture.perfumes.AddComment(ctx, sauvage.ID, fixture.alice, perfume.CommentInput{Rating: 5, Content: "A"})
	require.NoError(t, err)
	_, err = fixture.perfumes.AddComment(ctx, no5.ID, fixture.alice, perfume.CommentInput{Rating: 2, Content: "B"})
	require.NoError(t, err)
	_, err = fixture.perfumes.AddComment(ctx, no5.ID, fixture.bob, perfume.CommentInput{Rating: 3, Content: "C"})
	require.NoError(t, err)

	comments, err := fixture.perfumes.MemberComments(ctx, fixture.alice.MemberID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	byPerfume := map[string]perfume.MemberComment{}
	for _, comment := range comments {
		assert.Equal(t, fixture.alice.MemberID, comment.AuthorID)
		byPerfume[comment.PerfumeName] = comment
	}
	assert.Equal(t, "Chanel", byPerfume["No 5"].BrandName)
	assert.Equal(t, 5, byPerfume["Sauvage"].Rating)

	require.NoError(t, fixture.perfumes.Delete(ctx, no5.ID))
	comments, err = fixture.perfumes.MemberComments(ctx, fixture.alice.MemberID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
