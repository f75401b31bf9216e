package apierror

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Verbose controls whether internal error detail is returned to clients.
// main enables it outside production.
var Verbose = false

// Error is the service error taxonomy carried from validation and
// authorization checks up to the HTTP layer.
type Error struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Unauthenticated builds a 401 error for requests with no identity.
func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden builds a 403 error for wrong role or wrong ownership.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound builds a 404 error for an absent entity.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Validation builds a 422 error with field-level messages.
func Validation(message string, fields map[string][]string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message, Fields: fields}
}

// ValidationField builds a 422 error for a single offending field.
func ValidationField(field, message string) *Error {
	return Validation(message, map[string][]string{field: {message}})
}

// Internal builds a 500 error. The wrapped detail is only surfaced when
// Verbose is enabled.
func Internal(err error) *Error {
	message := "Internal server error"
	if Verbose && err != nil {
		message = err.Error()
	}
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// Respond writes the error to the response using the service envelope.
// Unknown error values are masked as internal errors.
func Respond(c echo.Context, err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err)
	}
	return c.JSON(apiErr.Status, apiErr)
}
