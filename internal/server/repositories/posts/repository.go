package posts

import (
	"context"

	"github.com/dkurbatov/goblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, id int64, title, content string) (*models.Post, error)
	// Delete removes the post and reports whether a row existed.
	Delete(ctx context.Context, id int64) (bool, error)
	// List returns posts ordered by creation time, most recent first.
	List(ctx context.Context, limit, offset uint32) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
}
