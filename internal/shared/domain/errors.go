package domain

import (
	"errors"
	"net/http"
)

// Error is an error that already knows the HTTP status and the message the
// client should see.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError crea un error con estado HTTP.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// WrapError keeps the cause for logs while exposing only message.
func WrapError(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

// --- Helpers para errores comunes ---

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

func BadRequest(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

// ErrInvalidID se devuelve cuando un identificador de ruta no es un UUID.
var ErrInvalidID = BadRequest("Resource not found. Invalid: _id")

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
