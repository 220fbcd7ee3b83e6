package artifacts

import "errors"

var (
	// ErrNotFound indicates the document does not exist for the user.
	ErrNotFound = errors.New("generated document not found")
)
