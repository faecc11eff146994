package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type stubGuard struct {
	actor *domain.User
	err   error
}

func (g *stubGuard) CurrentActor(echo.Context) (*domain.User, error) {
	return g.actor, g.err
}

func (g *stubGuard) Admin(echo.Context) (*domain.User, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return g.actor, nil
}

type stubAuthService struct {
	registerFn       func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (string, *domain.User, error)
	changePasswordFn func(ctx context.Context, actor *domain.User, current, next string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, actor *domain.User, current, next string) error {
	return s.changePasswordFn(ctx, actor, current, next)
}

type stubTodoService struct {
	todos   []domain.Todo
	created *domain.Todo
	updated ports.TodoInput
	deleted int64
	err     error
}

func (s *stubTodoService) List(_ context.Context, actor *domain.User) ([]domain.Todo, error) {
	var out []domain.Todo
	for _, t := range s.todos {
		if t.OwnerID == actor.ID {
			out = append(out, t)
		}
	}
	return out, s.err
}

func (s *stubTodoService) Get(_ context.Context, actor *domain.User, id int64) (*domain.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.todos {
		if t.ID == id && t.OwnerID == actor.ID {
			return &t, nil
		}
	}
	return nil, domain.ErrRecordNotFound.WithMessage("Todo not found")
}

func (s *stubTodoService) Create(_ context.Context, actor *domain.User, in ports.TodoInput) (*domain.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &domain.Todo{ID: 10, Title: in.Title, Description: in.Description, Priority: in.Priority, OwnerID: actor.ID}
	return s.created, nil
}

func (s *stubTodoService) Update(_ context.Context, _ *domain.User, _ int64, in ports.TodoInput) error {
	s.updated = in
	return s.err
}

func (s *stubTodoService) Delete(_ context.Context, _ *domain.User, id int64) error {
	s.deleted = id
	return s.err
}

func (s *stubTodoService) ListAll(context.Context) ([]domain.Todo, error) {
	return s.todos, s.err
}

func (s *stubTodoService) DeleteAny(_ context.Context, id int64) error {
	s.deleted = id
	return s.err
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
