package artifacts

import "time"

// GeneratedDocument records a rendered artifact stored in the object store.
type GeneratedDocument struct {
	ID         string
	UserID     string
	SourceKind string
	Title      string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	CreatedAt  time.Time
}
