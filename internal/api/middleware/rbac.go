package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// RequireRole returns the acting user when their role equals role, and
// Forbidden otherwise. Authentication failures are reported first.
func (g *Guard) RequireRole(c echo.Context, role domain.Role) (*domain.User, error) {
	return g.resolver.RequireRole(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization), role)
}

// Admin is RequireRole for the admin role.
func (g *Guard) Admin(c echo.Context) (*domain.User, error) {
	return g.RequireRole(c, domain.RoleAdmin)
}
