package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// TodoRepository defines persistence for todos. Single-record operations
// return domain.ErrTodoNotFound when the id does not exist.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	ListAll(ctx context.Context) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
}

// TodoCache stores each owner's todo list. A miss is reported with
// found == false and a nil error.
//
// Every Invalidate bumps the owner's version. SetList only stores a list
// when the version still equals the one read by Version before the list
// was loaded, so a load that raced with a write never repopulates the
// cache with the older list.
type TodoCache interface {
	GetList(ctx context.Context, ownerID int64) (todos []domain.Todo, found bool, err error)
	Version(ctx context.Context, ownerID int64) (int64, error)
	SetList(ctx context.Context, ownerID, version int64, todos []domain.Todo) error
	Invalidate(ctx context.Context, ownerID int64) error
}
