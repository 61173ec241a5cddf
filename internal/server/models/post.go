package models

import "time"

// Post is a blog entry. AuthorID references the owning User; only the
// owner may update or delete the post.
type Post struct {
	ID        int64
	Title     string
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
