package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"whiterabbit/internal/service"
)

// PostHandler handles blog post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a new post.
type CreatePostRequest struct {
	Title   string  `json:"title" validate:"required,max=255"`
	Text    string  `json:"text" validate:"required"`
	Picture *string `json:"picture"`
	Links   *string `json:"links" validate:"omitempty,max=255"`
}

// UpdatePostRequest represents a partial post update.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Text    *string `json:"text" validate:"omitempty,min=1"`
	Picture *string `json:"picture"`
	Links   *string `json:"links" validate:"omitempty,max=255"`
}

// List godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} PostView
// @Failure 500 {object} errors.ErrorResponse
// @Router /post [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPostViews(posts))
}

// Get godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostView
// @Failure 404 {object} errors.ErrorResponse
// @Router /post/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPostView(post))
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post"
// @Success 201 {object} PostView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /post [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), actorFrom(c), service.CreatePostInput{
		Title:   req.Title,
		Text:    req.Text,
		Picture: req.Picture,
		Links:   req.Links,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, newPostView(post))
}

// Update godoc
// @Summary Update a post
// @Description Only the author or an admin may edit a post.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /post/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	_, err = h.postService.Update(c.Request().Context(), actorFrom(c), id, service.UpdatePostInput{
		Title:   req.Title,
		Text:    req.Text,
		Picture: req.Picture,
		Links:   req.Links,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "L'article a bien été modifié"})
}

// Delete godoc
// @Summary Delete a post
// @Description Only the author or an admin may delete a post.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /post/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "L'article a bien été supprimé"})
}
