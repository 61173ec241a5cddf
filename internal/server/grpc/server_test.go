package grpc

import (
	"context"
	"time"

	"github.com/dkurbatov/goblog/internal/logging"
	"github.com/dkurbatov/goblog/internal/server/auth"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func newTestServer(us userService, ps postService) *GRPCServer {
	return &GRPCServer{
		address:        "127.0.0.1:0",
		users:          us,
		posts:          ps,
		tokens:         auth.NewTokenEngine([]byte("test-secret"), time.Hour),
		requestTimeout: 5 * time.Second,
		logger:         nopLogger{},
	}
}
