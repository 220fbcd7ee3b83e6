package coverletters

import "context"

// ListFilter pages List results.
type ListFilter struct {
	Limit  int
	Offset int
}

// Repo defines persistence operations for cover letters.
// Every operation is scoped by the owning user's ID.
type Repo interface {
	Create(ctx context.Context, letter CoverLetter) error
	GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]CoverLetter, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]CoverLetter, error)
	Update(ctx context.Context, letter CoverLetter) error
	Delete(ctx context.Context, userID, letterID string) error
	Count(ctx context.Context, userID string) (int, error)
}
