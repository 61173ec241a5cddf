package grpc

import (
	"context"
	"errors"

	"github.com/dkurbatov/goblog/internal/common"
	pb "github.com/dkurbatov/goblog/internal/proto"
	"github.com/dkurbatov/goblog/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	user, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", user.Username)
	return &pb.RegisterResponse{User: toProtoUser(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	token, user, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &pb.LoginResponse{AccessToken: token, User: toProtoUser(user)}, nil
}

func (s *GRPCServer) CreatePost(ctx context.Context, req *pb.CreatePostRequest) (*pb.Post, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	post, err := s.posts.Create(ctx, userID, req.Title, req.Content)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return toProtoPost(post), nil
}

func (s *GRPCServer) GetPost(ctx context.Context, req *pb.GetPostRequest) (*pb.Post, error) {

	post, err := s.posts.Get(ctx, req.Id)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return toProtoPost(post), nil
}

func (s *GRPCServer) UpdatePost(ctx context.Context, req *pb.UpdatePostRequest) (*pb.Post, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	post, err := s.posts.Update(ctx, userID, req.Id, req.Title, req.Content)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return toProtoPost(post), nil
}

func (s *GRPCServer) DeletePost(ctx context.Context, req *pb.DeletePostRequest) (*emptypb.Empty, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrUnauthenticated.Error())
	}

	if err := s.posts.Delete(ctx, userID, req.Id); err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ListPosts(ctx context.Context, req *pb.ListPostsRequest) (*pb.ListPostsResponse, error) {

	result, limit, total, err := s.posts.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	resp := &pb.ListPostsResponse{
		Posts:  make([]*pb.Post, 0, len(result)),
		Limit:  limit,
		Offset: req.Offset,
		Total:  total,
	}
	for _, post := range result {
		resp.Posts = append(resp.Posts, toProtoPost(post))
	}

	return resp, nil
}

// mapError translates domain errors into gRPC status codes, 1:1 with the
// HTTP adapter's mapping. Unexpected errors are logged and reported as a
// bare Internal so nothing leaks to the wire.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	default:
		s.logger.Error(ctx, err.Error(), "request_id", requestIDFromContext(ctx))
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
}

func toProtoUser(user *models.User) *pb.User {
	return &pb.User{
		Id:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: timestamppb.New(user.CreatedAt),
	}
}

func toProtoPost(post *models.Post) *pb.Post {
	return &pb.Post{
		Id:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorId:  post.AuthorID,
		CreatedAt: timestamppb.New(post.CreatedAt),
		UpdatedAt: timestamppb.New(post.UpdatedAt),
	}
}
