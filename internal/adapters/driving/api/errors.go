package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/materials-advisor/advisor/internal/core/domain"
	"github.com/materials-advisor/advisor/internal/logger"
)

// Error is an HTTP error with a JSON body.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// NewError creates an Error.
func NewError(code int, message, detail string) Error {
	return Error{Code: code, Message: message, Detail: detail}
}

// ErrBadRequest is returned for bodies that are not valid JSON.
func ErrBadRequest(detail string) Error {
	return NewError(fiber.StatusBadRequest, "Bad request", detail)
}

// ErrServer is returned when the advisor could not produce a reply.
func ErrServer(detail string) Error {
	return NewError(fiber.StatusInternalServerError, "Server error", detail)
}

// ErrTooManyRequests is returned when a rate limit was hit.
func ErrTooManyRequests(detail string) Error {
	return NewError(fiber.StatusTooManyRequests, "Too many requests", detail)
}

// ValidationError reports request fields that failed validation,
// keyed by JSON path with the failing rule as value.
type ValidationError struct {
	Status  int               `json:"-"`
	Message string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError creates a 422 ValidationError.
func NewValidationError(errs map[string]string) ValidationError {
	return ValidationError{
		Status:  fiber.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	}
}

// FromDomain maps a service error to an HTTP error.
func FromDomain(err error) Error {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return ErrTooManyRequests(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return ErrServer("request timed out")
	default:
		return ErrServer(err.Error())
	}
}

// ErrorHandler renders every error returned by a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		apiErr   Error
		valErr   ValidationError
		fiberErr *fiber.Error
	)

	switch {
	case errors.As(err, &valErr):
		return c.Status(valErr.Status).JSON(valErr)
	case errors.As(err, &apiErr):
	case errors.As(err, &fiberErr):
		apiErr = NewError(fiberErr.Code, fiberErr.Message, "")
	default:
		apiErr = FromDomain(err)
	}

	if apiErr.Code >= fiber.StatusInternalServerError {
		logger.Error("%s %s failed: %v", c.Method(), c.Path(), apiErr)
	}
	return c.Status(apiErr.Code).JSON(apiErr)
}
