// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package perfume

import (
	"strings"
	"time"

	"github.com/taibuivan/perfumery/internal/platform/apperr"
	"github.com/taibuivan/perfumery/internal/platform/validate"
	"github.com/taibuivan/perfumery/pkg/pointer"
	"github.com/taibuivan/perfumery/pkg/uuid"
)

const commentResource = "Comment"

// Comment is a member's rating and review of a single perfume.
type Comment struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentInput is the body of a new comment.
type CommentInput struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// CommentPatch is a partial comment update. Nil fields are left untouched.
type CommentPatch struct {
	Rating  *int    `json:"rating"`
	Content *string `json:"content"`
}

// Comments is the ordered comment list owned by a perfume.
type Comments []Comment

// ByAuthor returns the comment written by authorID, or nil.
func (comments Comments) ByAuthor(authorID string) *Comment {
	for i := range comments {
		if comments[i].AuthorID == authorID {
			return &comments[i]
		}
	}
	return nil
}

func (comments Comments) orEmpty() Comments {
	if comments == nil {
		return Comments{}
	}
	return comments
}

// AuthorIDs returns the distinct author ids in list order.
func (comments Comments) AuthorIDs() []string {
	seen := make(map[string]struct{}, len(comments))
	ids := make([]string, 0, len(comments))
	for _, comment := range comments {
		if _, ok := seen[comment.AuthorID]; ok {
			continue
		}
		seen[comment.AuthorID] = struct{}{}
		ids = append(ids, comment.AuthorID)
	}
	return ids
}

func (comments Comments) indexOf(id string) int {
	for i := range comments {
		if comments[i].ID == id {
			return i
		}
	}
	return -1
}

/*
Add appends a new comment by authorID.

Returns:
  - *Comment: A copy of the stored comment
  - error: apperr.ErrDuplicateComment if the author already commented, or a validation error
*/
func (comments *Comments) Add(authorID string, input CommentInput, now time.Time) (*Comment, error) {
	if comments.ByAuthor(authorID) != nil {
		return nil, apperr.ErrDuplicateComment
	}

	input.Content = strings.TrimSpace(input.Content)
	validator := &validate.Validator{}
	validator.
		Range(FieldRating, input.Rating, MinRating, MaxRating).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, maxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := Comment{
		ID:        uuid.New(),
		Rating:    input.Rating,
		Content:   input.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	*comments = append(*comments, comment)
	return &comment, nil
}

/*
Update applies patch to the comment identified by commentID.

Only the supplied fields change; UpdatedAt is always bumped.

Returns:
  - error: NotFound if no such comment, apperr.ErrNotOwner if actorID is not the author
*/
func (comments Comments) Update(commentID, actorID string, patch CommentPatch, now time.Time) (*Comment, error) {
	index := comments.indexOf(commentID)
	if index < 0 {
		return nil, apperr.NotFound(commentResource)
	}
	if comments[index].AuthorID != actorID {
		return nil, apperr.ErrNotOwner
	}

	validator := &validate.Validator{}
	if patch.Rating != nil {
		validator.Range(FieldRating, *patch.Rating, MinRating, MaxRating)
	}
	patch.Content = pointer.Map(patch.Content, strings.TrimSpace)
	if patch.Content != nil {
		validator.Required(FieldContent, *patch.Content).MaxLen(FieldContent, *patch.Content, maxContentLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &comments[index]
	pointer.Assign(&comment.Rating, patch.Rating)
	pointer.Assign(&comment.Content, patch.Content)
	comment.UpdatedAt = now

	updated := *comment
	return &updated, nil
}

/*
Remove deletes the comment identified by commentID.

Returns:
  - error: NotFound if no such comment, apperr.ErrNotOwner if actorID is not the author
*/
func (comments *Comments) Remove(commentID, actorID string) error {
	index := comments.indexOf(commentID)
	if index < 0 {
		return apperr.NotFound(commentResource)
	}
	if (*comments)[index].AuthorID != actorID {
		return apperr.ErrNotOwner
	}

	*comments = append((*comments)[:index], (*comments)[index+1:]...)
	return nil
}
