// Package apperr holds the error values shared between the domain packages
// and the HTTP layer, which maps them to status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers bad credentials and missing, invalid or
	// expired session tokens.
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrNotFound is returned both for absent records and for records the
	// requester may not see. Callers must not distinguish the two.
	ErrNotFound = errors.New("Not found")

	ErrFolderContent = errors.New("A folder doesn't have content")

	ErrUserExists = errors.New("Already exist")
)

// ValidationError reports a malformed or incomplete request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
