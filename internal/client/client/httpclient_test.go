package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
)

func newTestHTTPClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second)
}

func TestHTTPLoginStoresToken(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(httpLoginResponse{
			AccessToken: "tok",
			User:        httpUser{ID: 5, Username: "alice"},
		})
	})

	user, err := c.Login(context.Background(), "alice", "password1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != 5 {
		t.Errorf("got user id %d, want 5", user.ID)
	}
	if c.Token() != "tok" {
		t.Errorf("token not stored: %q", c.Token())
	}
}

func TestHTTPRegisterDoesNotStoreToken(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(httpUser{ID: 1, Username: "alice"})
	})

	if _, err := c.Register(context.Background(), "alice", "a@b.com", "password1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if c.Token() != "" {
		t.Errorf("register must not establish a session, got token %q", c.Token())
	}
}

func TestHTTPBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(httpPost{ID: 1})
	})
	c.SetToken("tok")

	if _, err := c.CreatePost(context.Background(), "t", "c"); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("got authorization header %q, want %q", gotAuth, "Bearer tok")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"bad request", http.StatusBadRequest, `{"error":"invalid input: title"}`, common.ErrInvalidInput},
		{"conflict", http.StatusConflict, `{"error":"username: already exists"}`, common.ErrConflict},
		{"not found", http.StatusNotFound, `{"error":"not found"}`, common.ErrNotFound},
		{"forbidden", http.StatusForbidden, `{"error":"forbidden"}`, common.ErrForbidden},
		{"unauthenticated", http.StatusUnauthorized, `{"error":"invalid token"}`, common.ErrUnauthenticated},
		{"invalid credentials", http.StatusUnauthorized, `{"error":"invalid username or password"}`, common.ErrInvalidCredentials},
		{"internal", http.StatusInternalServerError, `{"error":"internal error"}`, common.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetPost(context.Background(), 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPUnauthenticatedClearsToken(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	})
	c.SetToken("stale")

	_, err := c.CreatePost(context.Background(), "t", "c")
	if !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("got %v, want ErrUnauthenticated", err)
	}
	if c.Token() != "" {
		t.Errorf("stale token kept: %q", c.Token())
	}
}

func TestHTTPDeleteNoContent(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("got method %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	c.SetToken("tok")

	if err := c.DeletePost(context.Background(), 3); err != nil {
		t.Fatalf("DeletePost error: %v", err)
	}
}

func TestHTTPListPostsQuery(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "2" {
			t.Errorf("got limit %q, want 2", got)
		}
		if got := r.URL.Query().Get("offset"); got != "4" {
			t.Errorf("got offset %q, want 4", got)
		}
		json.NewEncoder(w).Encode(httpPostList{
			Posts: []httpPost{{ID: 2}, {ID: 1}}, Limit: 2, Offset: 4, Total: 10,
		})
	})

	page, err := c.ListPosts(context.Background(), 2, 4)
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}
	if len(page.Posts) != 2 || page.Total != 10 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestHTTPServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	_, err := c.GetPost(context.Background(), 1)
	if !errors.Is(err, common.ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestHTTPTimeout(t *testing.T) {
	c := newTestHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	c.timeout = 20 * time.Millisecond

	_, err := c.GetPost(context.Background(), 1)
	if !errors.Is(err, common.ErrTimeout) {
		t.Errorf("got %v, want ErrTimeout", err)
	}
}
