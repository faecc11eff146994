package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// TodoHandler handles HTTP requests for the current user's todos.
type TodoHandler struct {
	guard   Guard
	service ports.TodoService
}

func NewTodoHandler(guard Guard, service ports.TodoService) *TodoHandler {
	return &TodoHandler{guard: guard, service: service}
}

// List returns the current user's todos.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  api.ErrorBody
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// Get returns one of the current user's todos.
//
// @Summary      Get todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  todoResponse
// @Failure      401  {object}  api.ErrorBody
// @Failure      404  {object}  api.ErrorBody
// @Failure      422  {object}  api.ErrorBody
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(*todo))
}

// Create adds a todo owned by the current user.
//
// @Summary      Create todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      todoRequest  true  "Todo"
// @Success      201   {object}  todoResponse
// @Failure      401   {object}  api.ErrorBody
// @Failure      422   {object}  api.ErrorBody
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}

	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), actor, toTodoInput(req))
	if err != nil {
		return err
	}
	metrics.TodoOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toTodoResponse(*todo))
}

// Update replaces one of the current user's todos.
//
// @Summary      Update todo
// @Tags         todos
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int          true  "Todo ID"
// @Param        body  body  todoRequest  true  "Todo"
// @Success      204
// @Failure      401  {object}  api.ErrorBody
// @Failure      404  {object}  api.ErrorBody
// @Failure      422  {object}  api.ErrorBody
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req todoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), actor, id, toTodoInput(req)); err != nil {
		return err
	}
	metrics.TodoOperationsTotal.WithLabelValues("update").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete removes one of the current user's todos.
//
// @Summary      Delete todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  api.ErrorBody
// @Failure      404  {object}  api.ErrorBody
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	metrics.TodoOperationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
