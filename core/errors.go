package core

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// BackendError is returned when the REST backend answers with an error status.
type BackendError struct {
	Resource string
	Status   int
	Body     string
}

func (err BackendError) Error() string {
	return fmt.Sprintf("backend %s: %d %s", err.Resource, err.Status, http.StatusText(err.Status))
}

// IsBackendStatus reports whether err was caused by a backend response with the given status.
func IsBackendStatus(err error, status int) bool {
	berr, ok := errors.Cause(err).(*BackendError)
	return ok && berr.Status == status
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
