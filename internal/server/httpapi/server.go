// Package httpapi is the HTTP/REST transport adapter. It exposes the same
// operations and error taxonomy as the gRPC adapter; the two must never
// diverge in business outcome for equivalent inputs.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dkurbatov/goblog/internal/logging"
	"github.com/dkurbatov/goblog/internal/server/auth"
	"github.com/dkurbatov/goblog/internal/server/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type userService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

type postService interface {
	Create(ctx context.Context, authorID int64, title, content string) (*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, requesterID, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, requesterID, id int64) error
	List(ctx context.Context, limit, offset uint32) ([]*models.Post, uint32, int64, error)
}

type HTTPServer struct {
	address        string
	users          userService
	posts          postService
	tokens         *auth.TokenEngine
	requestTimeout time.Duration
	maxBodyBytes   int64
	logger         logging.Logger
}

func NewHTTPServer(addr string, l logging.Logger, us userService, ps postService,
	tokens *auth.TokenEngine, requestTimeout time.Duration, maxBodyBytes int64) *HTTPServer {
	return &HTTPServer{
		address:        addr,
		logger:         l.With("module", "http_server"),
		users:          us,
		posts:          ps,
		tokens:         tokens,
		requestTimeout: requestTimeout,
		maxBodyBytes:   maxBodyBytes,
	}
}

// Router builds the echo instance with all routes and middleware. Split out
// from Run so tests can drive it through httptest.
func (s *HTTPServer) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.BodyLimit(strconv.FormatInt(s.maxBodyBytes, 10)))
	e.Use(middleware.ContextTimeout(s.requestTimeout))

	api := e.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	api.GET("/posts", s.listPosts)
	api.GET("/posts/:id", s.getPost)
	api.POST("/posts", s.createPost, s.requireAuth)
	api.PUT("/posts/:id", s.updatePost, s.requireAuth)
	api.PATCH("/posts/:id", s.updatePost, s.requireAuth)
	api.DELETE("/posts/:id", s.deletePost, s.requireAuth)

	return e
}

func (s *HTTPServer) Run(ctx context.Context) error {

	e := s.Router()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
