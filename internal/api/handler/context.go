package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// Guard resolves the acting user of a request. Handlers call it before any
// service call and pass the user on explicitly.
type Guard interface {
	CurrentActor(c echo.Context) (*domain.User, error)
	Admin(c echo.Context) (*domain.User, error)
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrRecordInvalid.WithMessage("Invalid " + name)
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs the registered
// validator on it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
