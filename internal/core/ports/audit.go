package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// AuthEventRepository persists the authentication audit trail.
type AuthEventRepository interface {
	InsertAuthEvent(ctx context.Context, event domain.AuthEvent) error
}

// AuthAuditor accepts audit events without blocking the caller on storage.
type AuthAuditor interface {
	Record(event domain.AuthEvent)
}

// AuditService persists one audit event. It runs on dispatcher workers, off
// the request path.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
