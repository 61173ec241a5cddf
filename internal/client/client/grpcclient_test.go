package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestGRPCMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name    string
		in      error
		wantErr error
	}{
		{"nil", nil, nil},
		{"invalid argument", status.Error(codes.InvalidArgument, "title must be 1..255 chars"), common.ErrInvalidInput},
		{"already exists", status.Error(codes.AlreadyExists, "username: already exists"), common.ErrConflict},
		{"not found", status.Error(codes.NotFound, "not found"), common.ErrNotFound},
		{"permission denied", status.Error(codes.PermissionDenied, "forbidden"), common.ErrForbidden},
		{"unauthenticated", status.Error(codes.Unauthenticated, "invalid token"), common.ErrUnauthenticated},
		{"invalid credentials", status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error()), common.ErrInvalidCredentials},
		{"deadline", status.Error(codes.DeadlineExceeded, "deadline exceeded"), common.ErrTimeout},
		{"unavailable", status.Error(codes.Unavailable, "connection refused"), common.ErrUnavailable},
		{"internal", status.Error(codes.Internal, "internal error"), common.ErrInternal},
		{"unknown code", status.Error(codes.DataLoss, "boom"), common.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.mapError(tt.in)
			if tt.wantErr == nil {
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("got %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestGRPCMapErrorClearsTokenOnUnauthenticated(t *testing.T) {
	c := &GRPCClient{accessToken: "stale"}

	c.mapError(status.Error(codes.Unauthenticated, "token expired"))
	if c.Token() != "" {
		t.Errorf("stale token kept: %q", c.Token())
	}

	c.SetToken("still-good")
	c.mapError(status.Error(codes.NotFound, "not found"))
	if c.Token() != "still-good" {
		t.Errorf("token dropped on unrelated error: %q", c.Token())
	}
}

func TestWithAccessToken(t *testing.T) {
	ctx := withAccessToken(context.Background(), "tok")

	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok {
		t.Fatal("no outgoing metadata")
	}
	values := md.Get(common.AuthHeaderName)
	if len(values) != 1 || values[0] != "Bearer tok" {
		t.Errorf("got %v, want [Bearer tok]", values)
	}
}

func TestWithAccessTokenEmpty(t *testing.T) {
	ctx := withAccessToken(context.Background(), "")

	if md, ok := metadata.FromOutgoingContext(ctx); ok && len(md.Get(common.AuthHeaderName)) > 0 {
		t.Errorf("metadata attached for empty token: %v", md)
	}
}

func TestNewUnknownTransport(t *testing.T) {
	if _, err := New("carrier-pigeon", "127.0.0.1:50051", time.Second); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestNewSelectsTransport(t *testing.T) {
	c, err := New(TransportGRPC, "127.0.0.1:50051", time.Second)
	if err != nil {
		t.Fatalf("New grpc error: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*GRPCClient); !ok {
		t.Errorf("got %T, want *GRPCClient", c)
	}

	h, err := New(TransportHTTP, "127.0.0.1:8080", time.Second)
	if err != nil {
		t.Fatalf("New http error: %v", err)
	}
	defer h.Close()
	if _, ok := h.(*HTTPClient); !ok {
		t.Errorf("got %T, want *HTTPClient", h)
	}
}
