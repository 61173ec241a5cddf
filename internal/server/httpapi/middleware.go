package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "userID"

// requireAuth extracts and validates the bearer token and stores the
// authenticated user id in the echo context. Missing, malformed, expired
// and badly signed tokens all produce 401.
func (s *HTTPServer) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerFromHeader(c.Request().Header.Get(common.AuthHeaderName))
		if err != nil {
			return errorResponse(c, http.StatusUnauthorized, err.Error())
		}

		userID, err := s.tokens.ValidateToken(token)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return errorResponse(c, http.StatusUnauthorized, common.ErrTokenExpired.Error())
			}
			return errorResponse(c, http.StatusUnauthorized, common.ErrInvalidToken.Error())
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func bearerFromHeader(header string) (string, error) {
	if header == "" {
		return "", errors.New("missing token")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", errors.New("invalid authorization header")
	}

	return parts[1], nil
}

func userIDFromEchoContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDContextKey).(int64)
	return id, ok
}
