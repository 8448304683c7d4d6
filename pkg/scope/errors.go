package scope

import "errors"

var (
	// ErrNilScope is returned when a nil scope is used for registration.
	ErrNilScope = errors.New("scope: scope is nil")
	// ErrNilField is returned when attaching a nil field.
	ErrNilField = errors.New("scope: field is nil")
	// ErrFieldIDMissing is returned when attaching a field without an id.
	ErrFieldIDMissing = errors.New("scope: field id is required")
	// ErrDuplicateField signals an id or group/name collision.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrUnknownKind signals a field kind with no validation rules.
	ErrUnknownKind = errors.New("unknown field kind")
)
