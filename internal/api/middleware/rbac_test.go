package middleware

import (
	"errors"
	"testing"

	"github.com/todoapp/todo-service/internal/core/domain"
)

func TestGuard_Admin_Allows(t *testing.T) {
	guard := NewGuard(newStubResolver())

	user, err := guard.Admin(newGuardContext("Bearer admin-token"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGuard_Admin_Forbids(t *testing.T) {
	guard := NewGuard(newStubResolver())

	if _, err := guard.Admin(newGuardContext("Bearer user-token")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if _, err := guard.Admin(newGuardContext("")); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected MissingToken, got %v", err)
	}
}
