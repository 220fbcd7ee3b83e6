package applications

import "context"

// ListFilter narrows and pages List results.
type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

// Repo defines persistence operations for job applications.
// Every operation is scoped by the owning user's ID.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, userID, appID string) (Application, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Application, error)
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, userID, appID string) error
	Count(ctx context.Context, userID string) (int, error)
	CountByStatus(ctx context.Context, userID string) (map[Status]int, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]Application, error)
}
