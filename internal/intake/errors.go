package intake

import (
	"errors"
	"net/http"
	"strings"
)

// ValidationError carries every field problem found in one submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// PersistenceError wraps any failure of the insert.  Causes are not
// distinguished.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "Database error: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

// SystemError wraps failures outside validation and persistence, such as
// an unreadable body or a recovered panic.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string { return "System error: " + e.Err.Error() }
func (e *SystemError) Unwrap() error { return e.Err }

// Messages returns the lines shown to the customer for err.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		pe *PersistenceError
		se *SystemError
	)
	switch {
	case errors.As(err, &ve):
		return append([]string(nil), ve.Problems...)
	case errors.As(err, &pe):
		return []string{pe.Error()}
	case errors.As(err, &se):
		return []string{se.Error()}
	default:
		return []string{(&SystemError{Err: err}).Error()}
	}
}

// StatusCode returns the HTTP status for err: 400 when the customer can fix
// the input, 500 for everything on our side.
func StatusCode(err error) int {
	var ve *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
