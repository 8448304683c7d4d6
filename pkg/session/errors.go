package session

import "errors"

var (
	// ErrInvalid is returned by Submit when visible fields fail validation.
	ErrInvalid = errors.New("session: form is invalid")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session: closed")
	// ErrUnknownField is returned when an event names a field the scope does
	// not hold.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrNoDataAccess is returned by Submit without a data access
	// collaborator.
	ErrNoDataAccess = errors.New("session: data access is not configured")
)
