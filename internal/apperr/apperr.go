package apperr

import (
	"errors"
	"fmt"
)

// Error categories. Each maps to one HTTP status in the respond package.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrStorage            = errors.New("storage error")
)

// Specific failure codes carried alongside a category.
var (
	ErrMalformedBody     = errors.New("malformed body")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingFields     = errors.New("missing fields")
	ErrEmptyFields       = errors.New("empty fields")
	ErrInvalidOwnerID    = errors.New("invalid owner id")
	ErrOwnerNotFound     = errors.New("owner not found")
	ErrDuplicateUsername = errors.New("duplicate username")
)

// Error is a classified application failure. Msg is safe to show to API callers;
// Err holds the underlying cause for logging.
type Error struct {
	Kind error
	Code error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches both the category and the specific code.
func (e *Error) Is(target error) bool {
	return target == e.Kind || (e.Code != nil && target == e.Code)
}

func newf(kind, code error, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Validation builds a 400-class failure with the given code.
func Validation(code error, format string, args ...any) error {
	return newf(ErrValidation, code, format, args...)
}

func NotFound(format string, args ...any) error {
	return newf(ErrNotFound, nil, format, args...)
}

func Unauthenticated(cause error) error {
	return &Error{Kind: ErrUnauthenticated, Msg: "Missing or invalid token", Err: cause}
}

func InvalidCredentials() error {
	return &Error{Kind: ErrInvalidCredentials, Msg: "Invalid credentials"}
}

// DuplicateUsername is reported as a validation-style failure, not a distinct conflict status.
func DuplicateUsername(username string) error {
	return newf(ErrValidation, ErrDuplicateUsername, "Username '%s' already exists", username)
}

// Storage wraps a failed unit of work. The public message never includes the cause.
func Storage(cause error) error {
	return &Error{Kind: ErrStorage, Msg: "Internal server error", Err: cause}
}

// Message returns the caller-facing text of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "Internal server error"
}
