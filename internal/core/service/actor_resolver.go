package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// ActorResolver resolves the bearer token of a request to a stored user.
// A valid token alone is not enough; the user must still exist.
type ActorResolver struct {
	tokens ports.TokenCodec
	users  ports.UserRepository
}

func NewActorResolver(tokens ports.TokenCodec, users ports.UserRepository) *ActorResolver {
	return &ActorResolver{tokens: tokens, users: users}
}

// Resolve decodes the token in authorizationHeader exactly once and loads
// the user it names.
func (r *ActorResolver) Resolve(ctx context.Context, authorizationHeader string) (*domain.User, error) {
	token, ok := bearerToken(authorizationHeader)
	if !ok {
		return nil, domain.ErrMissingToken
	}

	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.FindByID(ctx, claims.SubjectID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrActorNotFound.WithCause(err)
	}
	if err != nil {
		return nil, fmt.Errorf("load actor %d: %w", claims.SubjectID, err)
	}
	return user, nil
}

// RequireRole resolves the actor and requires an exact role match.
func (r *ActorResolver) RequireRole(ctx context.Context, authorizationHeader string, role domain.Role) (*domain.User, error) {
	user, err := r.Resolve(ctx, authorizationHeader)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// bearerToken extracts the token from "Bearer <token>", ignoring the case of
// the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
