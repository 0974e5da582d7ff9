package analyzer

import "errors"

var (
	// ErrUnsupportedFile is returned for paths that are neither a regular
	// file nor a directory
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrNoParser is returned when no parser handles C/C++ input
	ErrNoParser = errors.New("no C/C++ parser registered")
)
