package artifacts

import "context"

// Repo defines persistence for generated document records.
// Every operation is scoped by the owning user's ID.
type Repo interface {
	Create(ctx context.Context, doc GeneratedDocument) error
	GetByID(ctx context.Context, userID, docID string) (GeneratedDocument, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]GeneratedDocument, error)
	DeleteByUser(ctx context.Context, userID string) error
}
