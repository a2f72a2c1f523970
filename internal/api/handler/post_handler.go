package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/social-api/internal/api/metrics"
	"github.com/devconnector/social-api/internal/core/ports"
)

// PostHandler serves /posts. Every route requires authentication.
type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      textRequest  true  "Post text"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req textRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), userID, req.Text)
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, post)
}

// List handles GET /posts.
//
// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id.
//
// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	metrics.PostInteractionsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Msg: "post removed"})
}

// Like handles PUT /posts/like/:id and returns the updated likes.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   domain.Like
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/like/{id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	post, err := h.posts.Like(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.PostInteractionsTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, post.Likes)
}

// Unlike handles PUT /posts/unlike/:id and returns the updated likes.
//
// @Summary      Unlike a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   domain.Like
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	post, err := h.posts.Unlike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.PostInteractionsTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, post.Likes)
}

// AddComment handles PUT /posts/comment/:id and returns the updated comments.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string       true  "Post id"
// @Param        body  body      textRequest  true  "Comment text"
// @Success      200   {array}   domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/comment/{id} [put]
func (h *PostHandler) AddComment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req textRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.AddComment(c.Request().Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		return err
	}

	metrics.PostInteractionsTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusOK, post.Comments)
}

// DeleteComment handles DELETE /posts/comment/:id/:comment_id and returns the
// remaining comments.
//
// @Summary      Delete own comment
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id          path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {array}   domain.Comment
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	post, err := h.posts.DeleteComment(c.Request().Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}

	metrics.PostInteractionsTotal.WithLabelValues("uncomment").Inc()
	return c.JSON(http.StatusOK, post.Comments)
}
