package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	requestIDKey ctxKey = "requestID"
)

// protectedMethods are the RPCs that mutate posts and therefore require a
// valid bearer token. Register/Login/reads stay public.
var protectedMethods = map[string]struct{}{
	"/blog.service.BlogService/CreatePost": {},
	"/blog.service.BlogService/UpdatePost": {},
	"/blog.service.BlogService/DeletePost": {},
}

// accessTokenInterceptor authenticates protected methods. The token travels
// in the "authorization" metadata as "Bearer <token>"; the resolved user id
// is stored in the request context for the handlers.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	token, err := bearerFromMetadata(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	ctx = context.WithValue(ctx, userIDKey, userID)

	return handler(ctx, req)
}

// timeoutInterceptor bounds every call by the configured request timeout.
func (s *GRPCServer) timeoutInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	return handler(ctx, req)
}

// requestIDInterceptor assigns each call a request id, stores it in the
// context and logs it, so later log lines for the same call can be
// correlated with this one.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req any,
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "request_id", requestID)

	return handler(ctx, req)
}

func bearerFromMetadata(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("missing metadata")
	}

	values := md.Get(common.AuthHeaderName)
	if len(values) == 0 {
		return "", errors.New("missing token")
	}

	parts := strings.Fields(values[0])
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", errors.New("invalid authorization metadata")
	}

	return parts[1], nil
}

// userIDFromContext returns the authenticated user id placed by the
// interceptor. Handlers for protected methods rely on its presence.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// requestIDFromContext returns the id assigned by requestIDInterceptor, or
// an empty string outside the interceptor chain.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
