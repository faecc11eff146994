package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuthEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that writes to repo.
func NewAuditService(repo ports.AuthEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if event.Type == "" || event.Username == "" {
		return fmt.Errorf("process audit event: incomplete event %+v", event)
	}
	if err := s.repo.InsertAuthEvent(ctx, event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("type", string(event.Type)).
		Str("username", event.Username).
		Int64("user_id", event.UserID).
		Msg("audit event stored")
	return nil
}
