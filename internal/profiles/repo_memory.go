package profiles

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Profile // userId -> profile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Profile)}
}

// Get fetches the profile for a user.
func (r *MemoryRepo) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.data[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

// Upsert stores or replaces the profile for a user.
func (r *MemoryRepo) Upsert(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[profile.UserID] = profile
	return nil
}

// Delete removes the profile for a user.
func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, userID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
