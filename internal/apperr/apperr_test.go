package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("updating board: %w", NotFound("Board not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped NotFound to match ErrNotFound")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("NotFound should not match ErrUnauthorized")
	}
}

func TestAsExtractsStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", NotFound("Card not found"), http.StatusNotFound, "Card not found"},
		{"unauthorized", Unauthorized("User unauthorized"), http.StatusUnauthorized, "User unauthorized"},
		{"invalid user", InvalidAuthenticatedUser(errors.New("sig")), http.StatusUnauthorized, "Invalid authenticated user"},
		{"account", AccountNotFound(), http.StatusNotFound, "This account doesn't exist"},
		{"password", IncorrectPassword(), http.StatusUnauthorized, "Incorrect password"},
		{"validation", Validation("Invalid color format"), http.StatusBadRequest, "Invalid color format"},
		{"storage", Storage(errors.New("conn refused")), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := As(fmt.Errorf("wrapped: %w", tt.err))
			if !ok {
				t.Fatal("expected As to find *Error")
			}
			if e.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", e.Status, tt.wantStatus)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", e.Message, tt.wantMsg)
			}
		})
	}
}

func TestStorageUnwrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Storage(cause)
	if !errors.Is(err, cause) {
		t.Error("expected Storage error to unwrap to its cause")
	}
	if !errors.Is(err, ErrStorage) {
		t.Error("expected Storage error to match ErrStorage")
	}
}

func TestAsPlainError(t *testing.T) {
	if _, ok := As(errors.New("plain")); ok {
		t.Error("As should not match a plain error")
	}
}
