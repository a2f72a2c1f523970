package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

const (
	// UserIDKey is the echo.Context key holding the authenticated user id.
	UserIDKey = "user_id"

	// TokenHeader is the primary header carrying the identity token.
	TokenHeader = "x-auth-token"
)

// Auth verifies the identity token and stores the caller's id under
// UserIDKey. The token is read from x-auth-token, falling back to an
// "Authorization: Bearer" header.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied").
					SetInternal(domain.ErrUnauthenticated)
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid").SetInternal(err)
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

func extractToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(TokenHeader)); t != "" {
		return t
	}

	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
