package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/devconnector/social-api/internal/api/middleware"
	"github.com/devconnector/social-api/internal/core/domain"
)

// callerID returns the user id injected by the Auth middleware. A missing id
// means the route was mounted without the middleware.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("body", "invalid JSON payload")
	}
	return c.Validate(req)
}
