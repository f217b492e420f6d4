package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"whiterabbit/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a new comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
	PostID  uint   `json:"post_id" validate:"required"`
}

// UpdateCommentRequest represents a partial comment update.
type UpdateCommentRequest struct {
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// List godoc
// @Summary List comments
// @Tags comments
// @Produce json
// @Success 200 {array} CommentView
// @Router /comment [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.commentService.List(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newCommentViews(comments))
}

// Get godoc
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} CommentView
// @Failure 404 {object} errors.ErrorResponse
// @Router /comment/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	comment, err := h.commentService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newCommentView(comment))
}

// Create godoc
// @Summary Comment a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} CommentView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comment [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.commentService.Create(c.Request().Context(), actorFrom(c), service.CreateCommentInput{
		Content: req.Content,
		PostID:  req.PostID,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, newCommentView(comment))
}

// Update godoc
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body UpdateCommentRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comment/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.commentService.Update(c.Request().Context(), actorFrom(c), id, service.UpdateCommentInput{
		Content: req.Content,
	}); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Le commentaire a bien été modifié"})
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comment/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.commentService.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Le commentaire a bien été supprimé"})
}
