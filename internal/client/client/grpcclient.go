package client

import (
	"context"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
	pb "github.com/dkurbatov/goblog/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.BlogServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthHeaderName)
	md.Set(common.AuthHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withAccessToken(ctx, s.accessToken)
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.initGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewBlogServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Token() string {
	return s.accessToken
}

func (s *GRPCClient) SetToken(token string) {
	s.accessToken = token
}

func (s *GRPCClient) Logout() {
	s.accessToken = ""
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) (*User, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &pb.RegisterRequest{Username: username, Email: email, Password: password}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromProtoUser(resp.User), nil
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) (*User, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &pb.LoginRequest{Username: username, Password: password}

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.accessToken = resp.AccessToken

	return fromProtoUser(resp.User), nil
}

func (s *GRPCClient) CreatePost(ctx context.Context, title, content string) (*Post, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &pb.CreatePostRequest{Title: title, Content: content}

	resp, err := s.client.CreatePost(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromProtoPost(resp), nil
}

func (s *GRPCClient) GetPost(ctx context.Context, id int64) (*Post, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.GetPost(ctx, &pb.GetPostRequest{Id: id})
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromProtoPost(resp), nil
}

func (s *GRPCClient) UpdatePost(ctx context.Context, id int64, title, content string) (*Post, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &pb.UpdatePostRequest{Id: id, Title: title, Content: content}

	resp, err := s.client.UpdatePost(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	return fromProtoPost(resp), nil
}

func (s *GRPCClient) DeletePost(ctx context.Context, id int64) error {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeletePost(ctx, &pb.DeletePostRequest{Id: id})
	if err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *GRPCClient) ListPosts(ctx context.Context, limit, offset uint32) (*PostList, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.ListPosts(ctx, &pb.ListPostsRequest{Limit: limit, Offset: offset})
	if err != nil {
		return nil, s.mapError(err)
	}

	result := &PostList{
		Posts:  make([]*Post, 0, len(resp.Posts)),
		Limit:  resp.Limit,
		Offset: resp.Offset,
		Total:  resp.Total,
	}
	for _, p := range resp.Posts {
		result.Posts = append(result.Posts, fromProtoPost(p))
	}

	return result, nil
}

// mapError normalizes gRPC statuses into the shared error taxonomy.
// Unauthenticated also drops the stale session token.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return common.ErrInternal
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return common.ErrInvalidInput
	case codes.AlreadyExists:
		return common.ErrConflict
	case codes.NotFound:
		return common.ErrNotFound
	case codes.PermissionDenied:
		return common.ErrForbidden
	case codes.Unauthenticated:
		s.accessToken = ""
		if st.Message() == common.ErrInvalidCredentials.Error() {
			return common.ErrInvalidCredentials
		}
		return common.ErrUnauthenticated
	case codes.DeadlineExceeded:
		return common.ErrTimeout
	case codes.Unavailable:
		return common.ErrUnavailable
	default:
		return common.ErrInternal
	}
}

func fromProtoUser(u *pb.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.AsTime(),
	}
}

func fromProtoPost(p *pb.Post) *Post {
	if p == nil {
		return nil
	}
	return &Post{
		ID:        p.Id,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorId,
		CreatedAt: p.CreatedAt.AsTime(),
		UpdatedAt: p.UpdatedAt.AsTime(),
	}
}
