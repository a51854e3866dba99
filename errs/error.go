package errs

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are portable across transports; the HTTP layer maps them to status
// codes and the interactors use them to classify expected failures.
const (
	ECONFLICT       = "conflict"
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	ENOTFOUND       = "not_found"
	ENOTIMPLEMENTED = "not_implemented"
	EUNAUTHORIZED   = "unauthorized"

	// Catalog gateway failures. These carry the upstream message verbatim
	// and are never rewritten by the interactors.
	ECATALOGNETWORK = "catalog_network"
	ECATALOGTMDB    = "catalog_tmdb"
	ECATALOGUNKNOWN = "catalog_unknown"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the code constants above.
	Code string

	// Message is shown to end users.
	Message string
}

// Error implements the error interface. Not meant for end users, use
// ErrorMessage instead.
func (e *Error) Error() string {
	return fmt.Sprintf("application error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
