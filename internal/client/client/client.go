// Package client provides the unified blog API client: one interface backed
// by either the HTTP or the gRPC transport, chosen at construction. Both
// implementations hold the session token and normalize their native failure
// representations into the sentinels of internal/common, so callers never
// need to know which transport is active.
package client

import (
	"context"
	"fmt"
	"time"
)

// Transport selects the wire protocol at construction time. The choice is
// fixed for the client's lifetime; there is no per-call switching.
type Transport string

const (
	TransportHTTP Transport = "http"
	TransportGRPC Transport = "grpc"
)

// Client is the unified API surface over both transports.
//
// Session contract: at most one token. Login stores it, Logout clears it
// locally (invalidation is time-based on the server, so no remote call),
// and an Unauthenticated response from the backend clears it as well.
// Register does not store a token; follow it with Login. A Client instance
// is a single session and is not safe for unsynchronized concurrent
// mutation from multiple call sites.
type Client interface {
	Close() error

	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	Logout()

	CreatePost(ctx context.Context, title, content string) (*Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	UpdatePost(ctx context.Context, id int64, title, content string) (*Post, error)
	DeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, limit, offset uint32) (*PostList, error)

	// Token returns the current session token ("" when logged out).
	Token() string
	// SetToken seeds the session with a previously persisted token.
	SetToken(token string)
}

// New constructs a Client for the given transport and endpoint. Every call
// is bounded by timeout; exceeding it surfaces as common.ErrTimeout and is
// never retried by the client.
func New(transport Transport, endpoint string, timeout time.Duration) (Client, error) {
	switch transport {
	case TransportHTTP:
		return NewHTTPClient(endpoint, timeout), nil
	case TransportGRPC:
		return NewGRPCClient(endpoint, timeout)
	default:
		return nil, fmt.Errorf("unknown transport: %q", transport)
	}
}
