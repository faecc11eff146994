package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/ports"
)

// UserHandler serves the authenticated user's own account.
type UserHandler struct {
	guard       Guard
	authService ports.AuthService
}

func NewUserHandler(guard Guard, authService ports.AuthService) *UserHandler {
	return &UserHandler{guard: guard, authService: authService}
}

// Me returns the current user.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  api.ErrorBody
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(actor))
}

// ChangePassword replaces the current user's password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      401  {object}  api.ErrorBody
// @Failure      422  {object}  api.ErrorBody
// @Router       /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	actor, err := h.guard.CurrentActor(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), actor, req.Password, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
