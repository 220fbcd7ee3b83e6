package generation

import "errors"

var (
	// ErrInvalidInput indicates the generation request failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBadModelOutput indicates the provider returned text that could not
	// be normalized into the target content shape.
	ErrBadModelOutput = errors.New("bad model output")
)
