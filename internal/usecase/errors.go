package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrUnknownSport is the only error schedule fetches surface to callers.
	ErrUnknownSport = fmt.Errorf("%w: unknown sport", ErrInvalidInput)
)
