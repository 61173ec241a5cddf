package httpapi

import (
	"time"

	"github.com/dkurbatov/goblog/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type userDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	AccessToken string  `json:"access_token"`
	User        userDTO `json:"user"`
}

type postDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listPostsResponse struct {
	Posts  []postDTO `json:"posts"`
	Limit  uint32    `json:"limit"`
	Offset uint32    `json:"offset"`
	Total  int64     `json:"total"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func toUserDTO(user *models.User) userDTO {
	return userDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func toPostDTO(post *models.Post) postDTO {
	return postDTO{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
