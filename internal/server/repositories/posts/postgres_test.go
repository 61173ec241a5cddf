package posts

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkurbatov/goblog/internal/common"
	"github.com/dkurbatov/goblog/internal/server/models"
)

func newSQLMockDB(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func postColumns() []string {
	return []string{"id", "title", "content", "author_id", "created_at", "updated_at"}
}

func TestCreateOk(t *testing.T) {
	repo, mock := newSQLMockDB(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs("Title", "Content", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))

	post, err := repo.Create(context.Background(),
		&models.Post{Title: "Title", Content: "Content", AuthorID: 7})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.ID != 3 {
		t.Errorf("got id %d, want 3", post.ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newSQLMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content, author_id, created_at, updated_at FROM posts")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(postColumns()))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo, mock := newSQLMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE posts SET")).
		WithArgs(int64(99), "Title", "Content").
		WillReturnRows(sqlmock.NewRows(postColumns()))

	_, err := repo.Update(context.Background(), 99, "Title", "Content")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteReportsAffectedRows(t *testing.T) {
	repo, mock := newSQLMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !deleted {
		t.Error("first delete reported no row")
	}

	deleted, err = repo.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted {
		t.Error("second delete reported a row")
	}
}

func TestListPassesPaging(t *testing.T) {
	repo, mock := newSQLMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(postColumns()).
		AddRow(int64(2), "Second", "b", int64(7), now, now).
		AddRow(int64(1), "First", "a", int64(7), now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(10), int64(5)).
		WillReturnRows(rows)

	result, err := repo.List(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("got %d posts, want 2", len(result))
	}
	if result[0].ID != 2 {
		t.Errorf("got first id %d, want 2", result[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCount(t *testing.T) {
	repo, mock := newSQLMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM posts")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	total, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if total != 5 {
		t.Errorf("got total %d, want 5", total)
	}
}
