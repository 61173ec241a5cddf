// Package services contains the server-side business logic. This file
// implements UserService: registration and credential verification with
// access token issuance.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/dkurbatov/goblog/internal/server/auth"
	"github.com/dkurbatov/goblog/internal/server/models"
	"github.com/dkurbatov/goblog/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
//   - Register: validate input, hash the password, create the user
//   - Login: verify credentials and mint an access token
//
// Each call is stateless; all durable state lives in the repository.
type UserService struct {
	repo   users.Repository
	tokens *auth.TokenEngine
}

func NewUserService(repo users.Repository, tokens *auth.TokenEngine) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a new user. The raw password never reaches the
// repository. Duplicate username or email surfaces as common.ErrConflict.
// Registration does not log the user in; the caller follows with Login.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns an access token together with
// the authenticated user. An unknown username and a wrong password produce
// the same common.ErrInvalidCredentials, and the unknown-username path
// still burns a hash comparison so response timing does not differ.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen || password == "" {
		return "", nil, common.ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.CheckDummyPassword(password)
			return "", nil, common.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing token: %w", err)
	}

	return token, user, nil
}
