package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindMissingToken:       http.StatusUnauthorized,
		KindInvalidToken:       http.StatusUnauthorized,
		KindExpiredToken:       http.StatusUnauthorized,
		KindInvalidCredentials: http.StatusUnauthorized,
		KindActorNotFound:      http.StatusUnauthorized,
		KindForbidden:          http.StatusForbidden,
		KindRecordNotFound:     http.StatusNotFound,
		KindRecordInvalid:      http.StatusUnprocessableEntity,
		Kind("bogus"):          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.Status(); got != want {
			t.Fatalf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", ErrRecordNotFound.WithMessage("Todo not found"))

	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected errors.Is to match by kind")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatalf("did not expect match against a different kind")
	}

	de, ok := AsError(err)
	if !ok {
		t.Fatalf("expected AsError to find taxonomy error")
	}
	if de.Message != "Todo not found" || de.Status != http.StatusNotFound {
		t.Fatalf("unexpected error: %+v", de)
	}
}

func TestError_WithCauseKeepsPrototypeIntact(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := ErrInvalidToken.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if ErrInvalidToken.Unwrap() != nil {
		t.Fatalf("prototype must not be mutated")
	}
	if err.Message != "Authentication Failed" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAdmin.Valid() {
		t.Fatalf("expected built-in roles to be valid")
	}
	if Role("client").Valid() {
		t.Fatalf("unexpected valid role")
	}
}
