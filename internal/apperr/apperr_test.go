package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTaxonomyStatusCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        *Error
		wantCode   string
		wantStatus int
	}{
		{"validation", Validation(FieldError{Field: "title", Message: "required"}), CodeValidation, http.StatusBadRequest},
		{"conflict", Conflict("duplicate email"), CodeConflict, http.StatusConflict},
		{"invalid credentials", InvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{"missing token", MissingToken(), CodeMissingToken, http.StatusUnauthorized},
		{"invalid token format", InvalidTokenFormat(), CodeInvalidTokenFormat, http.StatusUnauthorized},
		{"token expired", TokenExpired(), CodeTokenExpired, http.StatusUnauthorized},
		{"invalid token", InvalidToken(), CodeInvalidToken, http.StatusUnauthorized},
		{"not found", NotFound("task not found"), CodeNotFound, http.StatusNotFound},
		{"internal", Internal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if test.err.Code != test.wantCode {
				t.Errorf("code = %q, want %q", test.err.Code, test.wantCode)
			}
			if test.err.Status != test.wantStatus {
				t.Errorf("status = %d, want %d", test.err.Status, test.wantStatus)
			}
		})
	}
}

func TestFromPassesThroughAppErrors(t *testing.T) {
	t.Parallel()
	original := NotFound("task not found")
	wrapped := fmt.Errorf("service: %w", original)
	if got := From(wrapped); got != original {
		t.Errorf("From did not unwrap to the original *Error")
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	t.Parallel()
	cause := errors.New("driver exploded")
	got := From(cause)
	if got.Code != CodeInternal {
		t.Errorf("code = %q, want %q", got.Code, CodeInternal)
	}
	if !errors.Is(got, cause) {
		t.Error("wrapped cause lost")
	}
	if got.Message != "Internal server error" {
		t.Errorf("client-facing message leaks detail: %q", got.Message)
	}
}
