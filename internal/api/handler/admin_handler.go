package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// AdminHandler exposes todo operations across all owners. Every route
// requires the admin role.
type AdminHandler struct {
	guard   Guard
	service ports.TodoService
}

func NewAdminHandler(guard Guard, service ports.TodoService) *AdminHandler {
	return &AdminHandler{guard: guard, service: service}
}

// ListTodos returns every todo.
//
// @Summary      List all todos
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  api.ErrorBody
// @Failure      403  {object}  api.ErrorBody
// @Router       /admin/todos [get]
func (h *AdminHandler) ListTodos(c echo.Context) error {
	if _, err := h.guard.Admin(c); err != nil {
		return err
	}

	todos, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// DeleteTodo removes any todo.
//
// @Summary      Delete any todo
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  api.ErrorBody
// @Failure      403  {object}  api.ErrorBody
// @Failure      404  {object}  api.ErrorBody
// @Router       /admin/todos/{id} [delete]
func (h *AdminHandler) DeleteTodo(c echo.Context) error {
	if _, err := h.guard.Admin(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteAny(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.TodoOperationsTotal.WithLabelValues("admin_delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
