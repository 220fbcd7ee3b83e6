package resumes

import "context"

// ListFilter pages List results.
type ListFilter struct {
	Limit  int
	Offset int
}

// Repo defines persistence operations for resumes. Implementations must
// preserve the at-most-one-default invariant: a Create or Update carrying
// IsDefault=true clears the default flag on the user's other resumes within
// the same transaction (or equivalent critical section).
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Resume, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, userID, resumeID string) error
	Count(ctx context.Context, userID string) (int, error)
}
