// Package validation holds the input schemas for each entity. Every rule for
// an entity lives here and is evaluated before any handler logic runs, with
// all violations collected into one list of field errors.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/karanns19/task-manager/internal/apperr"
)

var (
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	eventHandlerPattern = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	lowerPattern        = regexp.MustCompile(`[a-z]`)
	upperPattern        = regexp.MustCompile(`[A-Z]`)
	digitPattern        = regexp.MustCompile(`[0-9]`)
)

// NormalizeEmail trims, lowercases and strips markup-injection vectors
// (angle brackets, the javascript: scheme, inline event-handler attributes)
// from an email address.
func NormalizeEmail(email string) string {
	s := strings.ToLower(strings.TrimSpace(email))
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = strings.ReplaceAll(s, "javascript:", "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	return s
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks every registration constraint and returns the full set of
// violations rather than stopping at the first one.
func (p RegisterPayload) Validate() []apperr.FieldError {
	var errs []apperr.FieldError

	name := strings.TrimSpace(p.Name)
	if len(name) < 2 || len(name) > 100 {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "Name must be between 2 and 100 characters"})
	}

	email := NormalizeEmail(p.Email)
	if email == "" || len(email) > 255 || !emailPattern.MatchString(email) {
		errs = append(errs, apperr.FieldError{Field: "email", Message: "A valid email address is required"})
	}

	switch {
	case len(p.Password) < 6 || len(p.Password) > 128:
		errs = append(errs, apperr.FieldError{Field: "password", Message: "Password must be between 6 and 128 characters"})
	case !lowerPattern.MatchString(p.Password) || !upperPattern.MatchString(p.Password) || !digitPattern.MatchString(p.Password):
		errs = append(errs, apperr.FieldError{Field: "password", Message: "Password must contain a lowercase letter, an uppercase letter and a digit"})
	}

	if p.ConfirmPassword != p.Password {
		errs = append(errs, apperr.FieldError{Field: "confirmPassword", Message: "Passwords do not match"})
	}

	return errs
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present.
func (p LoginPayload) Validate() []apperr.FieldError {
	var errs []apperr.FieldError
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, apperr.FieldError{Field: "email", Message: "Email is required"})
	}
	if p.Password == "" {
		errs = append(errs, apperr.FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

// Timestamp layouts accepted for deadline and reminder_time inputs.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
