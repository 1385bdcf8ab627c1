package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType ErrorType
		want    int
	}{
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{AuthError, http.StatusUnauthorized},
		{ExpiredCredentialError, http.StatusUnauthorized},
		{ForbiddenError, http.StatusForbidden},
		{NotFoundError, http.StatusNotFound},
		{ConflictError, http.StatusConflict},
		{DatabaseError, http.StatusInternalServerError},
		{ConfigError, http.StatusInternalServerError},
		{MigrationError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		appErr := NewAppError(tt.errType, "msg", nil)
		if got := appErr.StatusCode(); got != tt.want {
			t.Errorf("StatusCode for type %d = %d, want %d", tt.errType, got, tt.want)
		}
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("pq: boom")
	appErr := NewDatabaseError("failed to get user", underlying)

	if appErr.Error() != "failed to get user: pq: boom" {
		t.Fatalf("unexpected Error(): %q", appErr.Error())
	}
	if !errors.Is(appErr, underlying) {
		t.Fatal("expected errors.Is to reach the underlying error")
	}

	bare := NewNotFoundError("comment not found", nil)
	if bare.Error() != "comment not found" {
		t.Fatalf("unexpected Error(): %q", bare.Error())
	}
}

func TestToResponse_HidesUnderlyingError(t *testing.T) {
	t.Parallel()

	appErr := NewDatabaseError("failed to get user", errors.New("dsn=postgres://secret"))
	resp := appErr.ToResponse()
	if resp.Error != "failed to get user" {
		t.Fatalf("response leaked internals: %q", resp.Error)
	}
}

func TestFromError(t *testing.T) {
	t.Parallel()

	appErr := NewConflictError("email already in use", nil)
	wrapped := fmt.Errorf("register: %w", appErr)

	got, ok := FromError(wrapped)
	if !ok || got.Type != ConflictError {
		t.Fatalf("FromError(wrapped) = %v, %v", got, ok)
	}

	if _, ok := FromError(errors.New("plain")); ok {
		t.Fatal("plain error must not convert")
	}
	if _, ok := FromError(nil); ok {
		t.Fatal("nil must not convert")
	}
}

func TestTypePredicates(t *testing.T) {
	t.Parallel()

	if !IsForbidden(NewForbiddenError("no", nil)) {
		t.Fatal("IsForbidden")
	}
	if !IsExpiredCredential(NewExpiredCredentialError("stale", nil)) {
		t.Fatal("IsExpiredCredential")
	}
	if IsAuthError(NewForbiddenError("no", nil)) {
		t.Fatal("a Forbidden error is not an AuthError")
	}
	if !IsValidationError(fmt.Errorf("wrap: %w", NewValidationError("bad", nil))) {
		t.Fatal("predicates must see through wrapping")
	}
}
