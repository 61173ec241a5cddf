package client

import "time"

// User mirrors the backend user as seen over either transport.
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Post mirrors a backend blog post.
type Post struct {
	ID        int64
	Title     string
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostList is one page of posts plus the paging echo and total count.
type PostList struct {
	Posts  []*Post
	Limit  uint32
	Offset uint32
	Total  int64
}
