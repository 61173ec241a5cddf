package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/dkurbatov/goblog/internal/server/authz"
	"github.com/dkurbatov/goblog/internal/server/models"
	"github.com/dkurbatov/goblog/internal/server/repositories/posts"
)

// PostService implements the post CRUD operations. Mutations are gated by
// the ownership policy; reads are public.
type PostService struct {
	repo            posts.Repository
	defaultPageSize uint32
	maxPageSize     uint32
}

func NewPostService(repo posts.Repository, defaultPageSize, maxPageSize uint32) *PostService {
	return &PostService{repo: repo, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

func (s *PostService) Create(ctx context.Context, authorID int64, title, content string) (*models.Post, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{Title: title, Content: content, AuthorID: authorID}
	post, err = s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return post, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading post: %w", err)
	}
	return post, nil
}

// Update loads the post, checks ownership against the freshly loaded row
// and persists the new field values. Order matters: a missing post is
// NotFound, an existing post owned by someone else is Forbidden.
func (s *PostService) Update(ctx context.Context, requesterID, id int64, title, content string) (*models.Post, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	content, err = normalizeContent(content)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading post: %w", err)
	}

	if !authz.CanMutate(requesterID, post.AuthorID) {
		return nil, common.ErrForbidden
	}

	post, err = s.repo.Update(ctx, id, title, content)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	return post, nil
}

// Delete applies the same ownership gate as Update. Deleting an already
// deleted post yields NotFound; the operation is not idempotent.
func (s *PostService) Delete(ctx context.Context, requesterID, id int64) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading post: %w", err)
	}

	if !authz.CanMutate(requesterID, post.AuthorID) {
		return common.ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if !deleted {
		// lost the race with another delete
		return common.ErrNotFound
	}

	return nil
}

// List returns a page of posts, most recent first, plus the total count.
// limit 0 selects the server default; a limit above the maximum is
// rejected rather than clamped so the caller learns about the bound.
// The returned limit is the effective page size, so responses echo the
// default rather than the raw request value.
func (s *PostService) List(ctx context.Context, limit, offset uint32) ([]*models.Post, uint32, int64, error) {
	if limit == 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		return nil, 0, 0, validationError("limit", fmt.Sprintf("must be 1..%d", s.maxPageSize))
	}

	result, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error listing posts: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error counting posts: %w", err)
	}

	return result, limit, total, nil
}
