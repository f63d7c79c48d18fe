package services

import (
	"errors"
	"strings"
)

// Failure kinds surfaced to the request boundary. Anything else that
// escapes a service is an internal error and maps to a 500.
var (
	ErrOwnerNotFound         = errors.New("owner account not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrResetDeliveryFailed   = errors.New("failed to deliver reset email")
	ErrEmailTaken            = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
)

// ValidationError carries every violated field, not just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Violations, "; ")
}

func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
