package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/social-api/internal/api/metrics"
	"github.com/devconnector/social-api/internal/core/ports"
)

// UserHandler serves /users.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Ping handles GET /users.
//
// @Summary      Users route check
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Msg: "get api/users"})
}

// Register handles POST /users.
//
// @Summary      Register a new user
// @Description  Creates the account and returns a signed identity token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Token: token})
}
