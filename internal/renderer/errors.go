package renderer

import "errors"

var (
	// ErrNoRenderer is returned when no renderer is registered for a resource kind.
	ErrNoRenderer = errors.New("no renderer registered for resource type")
	// ErrAlreadyRegistered is returned when a kind is registered twice.
	ErrAlreadyRegistered = errors.New("renderer already registered for resource type")
	// ErrWrongResource is returned when a renderer receives a resource of another kind.
	ErrWrongResource = errors.New("renderer cannot handle resource")
)
