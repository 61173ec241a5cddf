// Package grpc is the gRPC transport adapter: it translates RPCs into
// domain service calls and maps domain errors to status codes. Its
// behavior must match the HTTP adapter for equivalent inputs.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dkurbatov/goblog/internal/logging"
	pb "github.com/dkurbatov/goblog/internal/proto"
	"github.com/dkurbatov/goblog/internal/server/auth"
	"github.com/dkurbatov/goblog/internal/server/models"
	"google.golang.org/grpc"
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

type GRPCServer struct {
	pb.UnimplementedBlogServiceServer
	address        string
	users          userService
	posts          postService
	tokens         *auth.TokenEngine
	requestTimeout time.Duration
	logger         logging.Logger
}

func NewGRPCServer(addr string, l logging.Logger, us userService, ps postService,
	tokens *auth.TokenEngine, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        addr,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		posts:          ps,
		tokens:         tokens,
		requestTimeout: requestTimeout,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.timeoutInterceptor,
		s.accessTokenInterceptor,
	))

	pb.RegisterBlogServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
