// Package apperr defines the error taxonomy shared by every domain service:
// validation failures with field detail, uniqueness conflicts, uniform
// authentication errors, and not-found. Handlers translate these into HTTP
// status codes in one place instead of guessing per call site.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ValidationError reports a malformed, missing, out-of-range, or
// broken-reference field. The request is rejected with no partial write.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func Validation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// ConflictError reports a uniqueness violation (email, phone, department
// name). Surfaced as a conflict, never as a server error.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func Conflict(field string) error {
	return &ConflictError{Field: field}
}

// ErrInvalidCredentials is the only authentication failure ever surfaced.
// Unknown identifier, wrong password, and inactive account are deliberately
// indistinguishable to prevent account enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotFound reports that an id did not resolve.
var ErrNotFound = errors.New("not found")

// ToHTTP maps a service error to an echo HTTP error. Unrecognized errors
// become 500s without leaking their text to the client.
func ToHTTP(err error) *echo.HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"field":  ve.Field,
			"detail": ve.Msg,
		})
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return echo.NewHTTPError(http.StatusConflict, map[string]string{
			"field":  ce.Field,
			"detail": ce.Error(),
		})
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
	}
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
