package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/dkurbatov/goblog/internal/server/auth"
	"github.com/dkurbatov/goblog/internal/server/models"
)

// --- helpers ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	lastCreated *models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.lastCreated = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = 1
	return &out, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func newUserService(repo *fakeUsersRepo) *UserService {
	tokens := auth.NewTokenEngine([]byte("k"), time.Hour)
	return NewUserService(repo, tokens)
}

// --- Register ---

func TestRegisterOk(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(repo)

	user, err := s.Register(context.Background(), " alice ", "Alice@Example.com", "password1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("got id %d, want 1", user.ID)
	}
	if repo.lastCreated.Username != "alice" {
		t.Errorf("username not trimmed: %q", repo.lastCreated.Username)
	}
	if repo.lastCreated.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", repo.lastCreated.Email)
	}
	if repo.lastCreated.PasswordHash == "password1" || repo.lastCreated.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
}

func TestRegisterInvalidInput(t *testing.T) {
	s := newUserService(&fakeUsersRepo{})

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@b.com", "password1"},
		{"two multibyte runes still too short", "日本", "a@b.com", "password1"},
		{"bad email", "alice", "not-an-email", "password1"},
		{"short password", "alice", "a@b.com", "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.username, tt.email, tt.password)
			if !errors.Is(err, common.ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	repo := &fakeUsersRepo{createErr: common.ErrConflict}
	s := newUserService(repo)

	_, err := s.Register(context.Background(), "alice", "a@b.com", "password1")
	if !errors.Is(err, common.ErrConflict) {
		t.Errorf("got %v, want ErrConflict", err)
	}
}

// --- Login ---

func TestLoginOk(t *testing.T) {
	hash, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	repo := &fakeUsersRepo{getOut: &models.User{ID: 5, Username: "alice", PasswordHash: hash}}
	s := newUserService(repo)

	token, user, err := s.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if user.ID != 5 {
		t.Errorf("got user id %d, want 5", user.ID)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrNotFound}
	s := newUserService(repo)

	_, _, err := s.Login(context.Background(), "ghost", "password1")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	repo := &fakeUsersRepo{getOut: &models.User{ID: 5, Username: "alice", PasswordHash: hash}}
	s := newUserService(repo)

	_, _, err = s.Login(context.Background(), "alice", "wrong-password")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginEmptyInput(t *testing.T) {
	s := newUserService(&fakeUsersRepo{})

	for _, tt := range []struct{ username, password string }{
		{"", "password1"},
		{"alice", ""},
	} {
		_, _, err := s.Login(context.Background(), tt.username, tt.password)
		if !errors.Is(err, common.ErrInvalidCredentials) {
			t.Errorf("username=%q password=%q: got %v, want ErrInvalidCredentials", tt.username, tt.password, err)
		}
	}
}

func TestLoginRepoFailure(t *testing.T) {
	cause := errors.New("connection reset")
	repo := &fakeUsersRepo{getErr: cause}
	s := newUserService(repo)

	_, _, err := s.Login(context.Background(), "alice", "password1")
	if errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("repo failure reported as bad credentials: %v", err)
	}
	// The root cause stays in the chain for the adapter log.
	if !errors.Is(err, cause) {
		t.Errorf("got %v, want wrapped %v", err, cause)
	}
}
