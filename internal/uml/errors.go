package uml

import "errors"

var (
	// ErrDuplicateClass is returned when a class name is registered twice
	ErrDuplicateClass = errors.New("class already registered")

	// ErrNilClass is returned when registering a nil class
	ErrNilClass = errors.New("nil class")
)
