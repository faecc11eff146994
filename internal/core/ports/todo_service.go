package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// TodoInput carries the writable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoService scopes every non-admin operation to the acting user.
type TodoService interface {
	List(ctx context.Context, actor *domain.User) ([]domain.Todo, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error)
	Create(ctx context.Context, actor *domain.User, in TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, actor *domain.User, id int64, in TodoInput) error
	Delete(ctx context.Context, actor *domain.User, id int64) error

	ListAll(ctx context.Context) ([]domain.Todo, error)
	DeleteAny(ctx context.Context, id int64) error
}
