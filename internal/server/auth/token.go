package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the authenticated
// user id as the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenEngine issues and validates HS256-signed access tokens. The secret
// and TTL are fixed at construction and never mutated, so a single engine
// is safe for concurrent use.
type TokenEngine struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenEngine(secret []byte, ttl time.Duration) *TokenEngine {
	return &TokenEngine{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock replaces the engine clock. Used by tests to pin token expiry.
func (e *TokenEngine) WithClock(now func() time.Time) *TokenEngine {
	e.now = now
	return e
}

// IssueToken mints a token for userID expiring at now+ttl.
func (e *TokenEngine) IssueToken(userID int64) (string, error) {
	now := e.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.ttl)),
		},
	})

	return token.SignedString(e.secret)
}

// ValidateToken verifies the signature and expiry and returns the subject
// user id. Expired tokens fail with common.ErrTokenExpired even when the
// signature is valid; malformed tokens and bad signatures fail with
// common.ErrInvalidToken.
func (e *TokenEngine) ValidateToken(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return e.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(e.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	return userID, nil
}
