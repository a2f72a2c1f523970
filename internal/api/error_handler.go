package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string              `json:"error"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Lists field failures for validation errors.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Errors: ve.Fields}
	}

	// Echo's own errors (router 404/405, auth middleware, rate limiter).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if code, msg, ok := domainStatus(err); ok {
		return code, errorResponse{Error: msg}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// responseStatus reports the status a request ends with, resolving handler
// errors the same way the error handler does.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	if code, _, ok := domainStatus(err); ok {
		return code
	}
	return http.StatusInternalServerError
}

// domainStatus maps domain sentinels to a status and client-facing message.
func domainStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenInvalidSignature),
		errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token is not valid", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "user not authorized", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found", true
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "there is no profile for this user", true
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "post not found", true
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, "comment does not exist", true
	case errors.Is(err, domain.ErrGithubProfileNotFound):
		return http.StatusNotFound, "no github profile found", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists", true
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusBadRequest, "post already liked", true
	case errors.Is(err, domain.ErrNotLiked):
		return http.StatusBadRequest, "post has not yet been liked", true
	case errors.Is(err, domain.ErrGuardFailed):
		return http.StatusConflict, "post was modified concurrently, retry", true
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "github is unavailable", true
	}
	return 0, "", false
}
