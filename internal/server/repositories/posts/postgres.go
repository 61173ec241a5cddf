package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/dkurbatov/goblog/internal/dbx"
	"github.com/dkurbatov/goblog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.AuthorID).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query :=
		`SELECT id, title, content, author_id, created_at, updated_at FROM posts
		 WHERE id = $1
		 `

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	query :=
		`UPDATE posts SET title = $2, content = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING id, title, content, author_id, created_at, updated_at
		 `

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id, title, content).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM posts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset uint32) ([]*models.Post, error) {
	query :=
		`SELECT id, title, content, author_id, created_at, updated_at FROM posts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, int64(limit), int64(offset))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0, limit)
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM posts`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}
