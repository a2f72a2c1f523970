package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/social-api/internal/api/metrics"
	"github.com/devconnector/social-api/internal/core/ports"
)

// ProfileHandler serves /profile, including the GitHub repository proxy.
type ProfileHandler struct {
	profiles ports.ProfileService
	github   ports.GithubService
}

func NewProfileHandler(profiles ports.ProfileService, github ports.GithubService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, github: github}
}

// List handles GET /profile.
//
// @Summary      List profiles
// @Tags         profile
// @Produce      json
// @Success      200  {array}   domain.Profile
// @Router       /profile [get]
func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.profiles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// Me handles GET /profile/me.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profile/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ByUser handles GET /profile/user/:user_id.
//
// @Summary      Profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  domain.Profile
// @Failure      404      {object}  errorResponse
// @Router       /profile/user/{user_id} [get]
func (h *ProfileHandler) ByUser(c echo.Context) error {
	profile, err := h.profiles.ByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Upsert handles POST /profile.
//
// @Summary      Create or update the current user's profile
// @Description  Fields left empty keep their stored value.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /profile [post]
func (h *ProfileHandler) Upsert(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.Upsert(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Delete handles DELETE /profile.
//
// @Summary      Delete account
// @Description  Removes the user's posts, profile and account.
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.profiles.DeleteAccount(c.Request().Context(), userID); err != nil {
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Msg: "user deleted"})
}

// AddExperience handles PUT /profile/experience.
//
// @Summary      Add experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      experienceRequest  true  "Experience entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /profile/experience [put]
func (h *ProfileHandler) AddExperience(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req experienceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	profile, err := h.profiles.AddExperience(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveExperience handles DELETE /profile/experience/:exp_id.
//
// @Summary      Remove experience
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        exp_id  path      string  true  "Experience id"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  errorResponse
// @Router       /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RemoveExperience(c.Request().Context(), userID, c.Param("exp_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// AddEducation handles PUT /profile/education.
//
// @Summary      Add education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      educationRequest  true  "Education entry"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /profile/education [put]
func (h *ProfileHandler) AddEducation(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req educationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	profile, err := h.profiles.AddEducation(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// RemoveEducation handles DELETE /profile/education/:edu_id.
//
// @Summary      Remove education
// @Tags         profile
// @Produce      json
// @Security     TokenAuth
// @Param        edu_id  path      string  true  "Education id"
// @Success      200     {object}  domain.Profile
// @Failure      404     {object}  errorResponse
// @Router       /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.RemoveEducation(c.Request().Context(), userID, c.Param("edu_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GithubRepos handles GET /profile/github/:username.
//
// @Summary      Latest GitHub repositories
// @Tags         profile
// @Produce      json
// @Param        username  path      string  true  "GitHub username"
// @Success      200       {array}   domain.Repo
// @Failure      404       {object}  errorResponse
// @Failure      502       {object}  errorResponse
// @Router       /profile/github/{username} [get]
func (h *ProfileHandler) GithubRepos(c echo.Context) error {
	repos, err := h.github.Repos(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repos)
}
