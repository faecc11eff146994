package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// UserRepository defines persistence for actors. Lookups return
// domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create assigns the next integer id. A taken username yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
