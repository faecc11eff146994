package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
)

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuthEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{Type: domain.AuthEventLoginSucceeded, Username: "alice", UserID: 1, Timestamp: t0}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0] != event {
		t.Fatalf("unexpected inserted events: %v", repo.inserted)
	}
}

func TestAuditService_Process_Errors(t *testing.T) {
	repo := &stubAuthEventRepo{err: errBoom}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuthEvent{Type: domain.AuthEventLoginFailed, Username: "bob"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected repository error, got %v", err)
	}

	if err := svc.Process(context.Background(), domain.AuthEvent{}); err == nil {
		t.Fatalf("expected error for incomplete event")
	}
}
