package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// Guard resolves the acting user of a request. Handlers call it explicitly
// and pass the returned user on to services; nothing is stored on the echo
// context.
type Guard struct {
	resolver ports.ActorResolver
}

func NewGuard(resolver ports.ActorResolver) *Guard {
	return &Guard{resolver: resolver}
}

// CurrentActor returns the user named by the request's bearer token.
func (g *Guard) CurrentActor(c echo.Context) (*domain.User, error) {
	return g.resolver.Resolve(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
}
