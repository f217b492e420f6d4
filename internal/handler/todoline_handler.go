package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"whiterabbit/internal/service"
)

// TodolineHandler handles personal task endpoints. All routes are secured.
type TodolineHandler struct {
	todolineService service.TodolineService
}

// NewTodolineHandler creates a new todoline handler.
func NewTodolineHandler(todolineService service.TodolineService) *TodolineHandler {
	return &TodolineHandler{todolineService: todolineService}
}

// CreateTodolineRequest represents a new todoline.
type CreateTodolineRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Completed   *bool  `json:"completed"`
}

// UpdateTodolineRequest represents a partial todoline update.
type UpdateTodolineRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Completed   *bool   `json:"completed"`
}

// List godoc
// @Summary List my todolines
// @Tags todolines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} TodolineView
// @Failure 401 {object} errors.ErrorResponse
// @Router /todoline [get]
func (h *TodolineHandler) List(c echo.Context) error {
	todos, err := h.todolineService.ListMine(c.Request().Context(), actorFrom(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newTodolineViews(todos))
}

// Get godoc
// @Summary Get a todoline
// @Tags todolines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todoline ID"
// @Success 200 {object} TodolineView
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todoline/{id} [get]
func (h *TodolineHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	todo, err := h.todolineService.Get(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newTodolineView(todo))
}

// Create godoc
// @Summary Create a todoline
// @Tags todolines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTodolineRequest true "Todoline"
// @Success 201 {object} TodolineView
// @Failure 400 {object} errors.ErrorResponse
// @Router /todoline [post]
func (h *TodolineHandler) Create(c echo.Context) error {
	var req CreateTodolineRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.todolineService.Create(c.Request().Context(), actorFrom(c), service.CreateTodolineInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, newTodolineView(todo))
}

// Update godoc
// @Summary Update a todoline
// @Tags todolines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todoline ID"
// @Param request body UpdateTodolineRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todoline/{id} [put]
func (h *TodolineHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateTodolineRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.todolineService.Update(c.Request().Context(), actorFrom(c), id, service.UpdateTodolineInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "La tâche a bien été modifiée"})
}

// Delete godoc
// @Summary Delete a todoline
// @Tags todolines
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todoline ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /todoline/{id} [delete]
func (h *TodolineHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.todolineService.Delete(c.Request().Context(), actorFrom(c), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "La tâche a bien été supprimée"})
}
