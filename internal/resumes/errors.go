package resumes

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidContent indicates structured content failed schema validation.
	ErrInvalidContent = errors.New("invalid resume content")
)
