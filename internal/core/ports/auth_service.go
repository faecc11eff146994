package ports

import (
	"context"
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// TokenCodec issues and verifies signed access tokens.
type TokenCodec interface {
	Issue(subjectID int64, username string, role domain.Role, ttl time.Duration) (string, error)
	Verify(token string) (domain.Claims, error)
}

// RegisterInput is the DTO passed from the transport layer to AuthService.Register.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, actor *domain.User, current, next string) error
}

// ActorResolver turns an Authorization header into the acting user.
type ActorResolver interface {
	Resolve(ctx context.Context, authorizationHeader string) (*domain.User, error)
	RequireRole(ctx context.Context, authorizationHeader string, role domain.Role) (*domain.User, error)
}
