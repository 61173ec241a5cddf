package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
)

func TestIssueAndValidateToken(t *testing.T) {
	e := NewTokenEngine([]byte("secret"), time.Hour)

	token, err := e.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	userID, err := e.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if userID != 42 {
		t.Errorf("got user id %d, want 42", userID)
	}
}

func TestValidateTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour

	clock := issued
	e := NewTokenEngine([]byte("secret"), ttl).WithClock(func() time.Time { return clock })

	token, err := e.IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// Just before expiry the token still validates.
	clock = issued.Add(ttl - time.Second)
	if _, err := e.ValidateToken(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// Just after expiry it fails with the dedicated error.
	clock = issued.Add(ttl + time.Second)
	_, err = e.ValidateToken(token)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewTokenEngine([]byte("secret-a"), time.Hour)
	verifier := NewTokenEngine([]byte("secret-b"), time.Hour)

	token, err := issuer.IssueToken(1)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	_, err = verifier.ValidateToken(token)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	e := NewTokenEngine([]byte("secret"), time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := e.ValidateToken(token); !errors.Is(err, common.ErrInvalidToken) {
			t.Errorf("token %q: got %v, want ErrInvalidToken", token, err)
		}
	}
}
