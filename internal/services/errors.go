package services

import (
	"errors"
	"fmt"

	"outreach-backend/internal/repositories"
)

// Error classes. Handlers map these to HTTP status codes; everything else
// is treated as an internal error.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = repositories.ErrNotFound
	ErrUpstream     = errors.New("upstream dependency error")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbiddenErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func upstreamErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
}
