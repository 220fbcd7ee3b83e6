package profiles

import "errors"

var (
	// ErrNotFound indicates the user has not saved a profile yet.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidInput indicates the caller supplied invalid data.
	ErrInvalidInput = errors.New("invalid input")
)
