package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
)

// HTTPClient talks to the REST surface of the backend. It is built on the
// standard net/http client; the gRPC implementation stays the primary
// transport and this one exists for environments where gRPC is not an
// option.
type HTTPClient struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

func (s *HTTPClient) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *HTTPClient) Token() string {
	return s.accessToken
}

func (s *HTTPClient) SetToken(token string) {
	s.accessToken = token
}

func (s *HTTPClient) Logout() {
	s.accessToken = ""
}

type httpUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type httpPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type httpLoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        httpUser `json:"user"`
}

type httpPostList struct {
	Posts  []httpPost `json:"posts"`
	Limit  uint32     `json:"limit"`
	Offset uint32     `json:"offset"`
	Total  int64      `json:"total"`
}

type httpError struct {
	Error string `json:"error"`
}

func (s *HTTPClient) Register(ctx context.Context, username, email, password string) (*User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var resp httpUser
	if err := s.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}

	return fromHTTPUser(&resp), nil
}

func (s *HTTPClient) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}

	var resp httpLoginResponse
	if err := s.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}

	s.accessToken = resp.AccessToken

	return fromHTTPUser(&resp.User), nil
}

func (s *HTTPClient) CreatePost(ctx context.Context, title, content string) (*Post, error) {
	body := map[string]string{"title": title, "content": content}

	var resp httpPost
	if err := s.do(ctx, http.MethodPost, "/api/posts", body, &resp); err != nil {
		return nil, err
	}

	return fromHTTPPost(&resp), nil
}

func (s *HTTPClient) GetPost(ctx context.Context, id int64) (*Post, error) {
	var resp httpPost
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &resp); err != nil {
		return nil, err
	}

	return fromHTTPPost(&resp), nil
}

func (s *HTTPClient) UpdatePost(ctx context.Context, id int64, title, content string) (*Post, error) {
	body := map[string]string{"title": title, "content": content}

	var resp httpPost
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), body, &resp); err != nil {
		return nil, err
	}

	return fromHTTPPost(&resp), nil
}

func (s *HTTPClient) DeletePost(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

func (s *HTTPClient) ListPosts(ctx context.Context, limit, offset uint32) (*PostList, error) {
	path := "/api/posts"
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", offset))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var resp httpPostList
	if err := s.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	result := &PostList{
		Posts:  make([]*Post, 0, len(resp.Posts)),
		Limit:  resp.Limit,
		Offset: resp.Offset,
		Total:  resp.Total,
	}
	for i := range resp.Posts {
		result.Posts = append(result.Posts, fromHTTPPost(&resp.Posts[i]))
	}

	return result, nil
}

// do performs one request and decodes the response into out (skipped when
// out is nil or the body is empty, as with 204 responses).
func (s *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.accessToken != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerScheme+" "+s.accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return s.mapStatusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *HTTPClient) mapTransportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return common.ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return common.ErrTimeout
	}
	return common.ErrUnavailable
}

// mapStatusError normalizes error responses into the shared taxonomy,
// mirroring the gRPC code mapping. Unauthorized also drops the stale
// session token.
func (s *HTTPClient) mapStatusError(resp *http.Response) error {
	var payload httpError
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return common.ErrInvalidInput
	case http.StatusConflict:
		return common.ErrConflict
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusUnauthorized:
		s.accessToken = ""
		if payload.Error == common.ErrInvalidCredentials.Error() {
			return common.ErrInvalidCredentials
		}
		return common.ErrUnauthenticated
	case http.StatusServiceUnavailable:
		return common.ErrUnavailable
	default:
		return common.ErrInternal
	}
}

func fromHTTPUser(u *httpUser) *User {
	return &User{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

func fromHTTPPost(p *httpPost) *Post {
	return &Post{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
