package profiles

import "context"

// Repo abstracts profile persistence. A user has at most one profile row.
type Repo interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, profile Profile) error
	Delete(ctx context.Context, userID string) error
}
