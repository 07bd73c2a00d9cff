// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/perfumery/internal/catalog/brand"
	"github.com/taibuivan/perfumery/internal/member"
	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/sec"
	"github.com/taibuivan/perfumery/pkg/pagination"
	"github.com/taibuivan/perfumery/pkg/slice"
	"github.com/taibuivan/perfumery/pkg/uuid"
)

// BrandLookup resolves the brand a perfume points at.
type BrandLookup interface {
	Get(context context.Context, id string) (*brand.Brand, error)
}

// AuthorDirectory resolves comment authors for display.
type AuthorDirectory interface {
	Authors(context context.Context, ids []string) (map[string]member.Author, error)
}

// # Read Models

// CommentView is a comment with its author's public profile attached.
// Author is nil when the member can no longer be resolved.
type CommentView struct {
	Comment
	Author *member.Author `json:"author"`
}

// Detail is the full perfume view served on the product page.
type Detail struct {
	*Perfume
	Comments []CommentView `json:"comments"`
	Summary  Rating        `json:"rating"`
}

// MemberComment is one of a member's comments with the perfume it belongs to.
type MemberComment struct {
	Comment
	PerfumeID   string `json:"perfume_id"`
	PerfumeName string `json:"perfume_name"`
	BrandName   string `json:"brand_name"`
}

// # Service

type Service struct {
	repo    Repository
	brands  BrandLookup
	authors AuthorDirectory
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, brands BrandLookup, authors AuthorDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, brands: brands, authors: authors, logger: logger, now: time.Now}
}

func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Perfume, int, error) {
	if err := validateFilter(filter); err != nil {
		return nil, 0, err
	}
	return service.repo.List(context, filter, page.Limit, page.Offset())
}

// Get returns the perfume detail with comment authors resolved.
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	perfume, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}
	return service.detail(context, perfume)
}

func (service *Service) detail(context context.Context, perfume *Perfume) (*Detail, error) {
	authors, err := service.authors.Authors(context, perfume.Comments.AuthorIDs())
	if err != nil {
		return nil, err
	}

	views := slice.Map(perfume.Comments, func(comment Comment) CommentView {
		view := CommentView{Comment: comment}
		if author, ok := authors[comment.AuthorID]; ok {
			view.Author = &author
		}
		return view
	})
	if views == nil {
		views = []CommentView{}
	}

	return &Detail{Perfume: perfume, Comments: views, Summary: perfume.Rating()}, nil
}

// resolveBrand checks the referenced brand exists and returns its name.
func (service *Service) resolveBrand(context context.Context, id string) (string, error) {
	found, err := service.brands.Get(context, id)
	if errors.Is(err, apperr.NotFound("Brand")) {
		return "", ErrUnknownBrand
	}
	if err != nil {
		return "", err
	}
	return found.Name, nil
}

// # Catalog Management

func (service *Service) Create(context context.Context, input Input) (*Perfume, error) {
	now := service.now().UTC()
	perfume := &Perfume{
		ID:             uuid.New(),
		Name:           input.Name,
		URI:            input.URI,
		Price:          input.Price,
		Concentration:  input.Concentration,
		Description:    input.Description,
		Ingredients:    input.Ingredients,
		Volume:         input.Volume,
		TargetAudience: input.TargetAudience,
		BrandID:        input.BrandID,
		Comments:       Comments{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validatePerfume(perfume); err != nil {
		return nil, err
	}

	brandName, err := service.resolveBrand(context, perfume.BrandID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, perfume); err != nil {
		return nil, err
	}
	perfume.BrandName = brandName

	service.logger.Info("perfume_created",
		slog.String("perfume_id", perfume.ID),
		slog.String("brand_id", perfume.BrandID),
	)
	return perfume, nil
}

// Update applies a partial change to the catalog fields. Comments are untouched.
func (service *Service) Update(context context.Context, id string, patch Patch) (*Perfume, error) {
	perfume, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	previousBrand := perfume.BrandID
	patch.Apply(perfume)
	if err := validatePerfume(perfume); err != nil {
		return nil, err
	}

	if perfume.BrandID != previousBrand {
		if perfume.BrandName, err = service.resolveBrand(context, perfume.BrandID); err != nil {
			return nil, err
		}
	}

	perfume.UpdatedAt = service.now().UTC()
	if err := service.repo.Update(context, perfume); err != nil {
		return nil, err
	}

	service.logger.Info("perfume_updated", slog.String("perfume_id", perfume.ID))
	return perfume, nil
}

// Delete removes the perfume and every comment on it.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("perfume_deleted", slog.String("perfume_id", id))
	return nil
}

// # Comments

/*
AddComment posts the caller's review of a perfume.

Returns:
  - *Detail: The perfume after the change
  - error: apperr.ErrDuplicateComment when the caller already reviewed this perfume
*/
func (service *Service) AddComment(context context.Context, perfumeID string, identity *sec.Identity, input CommentInput) (*Detail, error) {
	var added *Comment
	perfume, err := service.repo.MutateComments(context, perfumeID, func(perfume *Perfume) error {
		comment, err := perfume.Comments.Add(identity.MemberID, input, service.now().UTC())
		added = comment
		return err
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("comment_added",
		slog.String("perfume_id", perfumeID),
		slog.String("comment_id", added.ID),
		slog.String("member_id", identity.MemberID),
	)
	return service.detail(context, perfume)
}

// UpdateComment edits the caller's own comment.
func (service *Service) UpdateComment(context context.Context, perfumeID, commentID string, identity *sec.Identity, patch CommentPatch) (*Detail, error) {
	perfume, err := service.repo.MutateComments(context, perfumeID, func(perfume *Perfume) error {
		_, err := perfume.Comments.Update(commentID, identity.MemberID, patch, service.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated",
		slog.String("perfume_id", perfumeID),
		slog.String("comment_id", commentID),
	)
	return service.detail(context, perfume)
}

// DeleteComment removes the caller's own comment.
func (service *Service) DeleteComment(context context.Context, perfumeID, commentID string, identity *sec.Identity) (*Detail, error) {
	perfume, err := service.repo.MutateComments(context, perfumeID, func(perfume *Perfume) error {
		return perfume.Comments.Remove(commentID, identity.MemberID)
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("comment_deleted",
		slog.String("perfume_id", perfumeID),
		slog.String("comment_id", commentID),
	)
	return service.detail(context, perfume)
}

// MemberComments lists every comment written by memberID, newest perfume first.
func (service *Service) MemberComments(context context.Context, memberID string) ([]MemberComment, error) {
	perfumes, err := service.repo.ListCommentedBy(context, memberID)
	if err != nil {
		return nil, err
	}

	comments := make([]MemberComment, 0, len(perfumes))
	for _, perfume := range perfumes {
		if comment := perfume.Comments.ByAuthor(memberID); comment != nil {
			comments = append(comments, MemberComment{
				Comment:     *comment,
				PerfumeID:   perfume.ID,
				PerfumeName: perfume.Name,
				BrandName:   perfume.BrandName,
			})
		}
	}
	return comments, nil
}
