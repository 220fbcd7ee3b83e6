package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Application // userId -> applications
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Application),
	}
}

// Create stores a new application for a user.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[app.UserID] = append(r.data[app.UserID], app)
	return nil
}

// GetByID returns an application by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.data[userID] {
		if app.ID == appID {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

// ListByUser returns applications newest-update-first, honoring the filter.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset := normalizePage(filter.Limit, filter.Offset)

	r.mu.RLock()
	apps := make([]Application, 0, len(r.data[userID]))
	for _, app := range r.data[userID] {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		apps = append(apps, app)
	}
	r.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].UpdatedAt.After(apps[j].UpdatedAt)
	})

	if offset >= len(apps) {
		return []Application{}, nil
	}
	end := len(apps)
	if offset+limit < end {
		end = offset + limit
	}
	return apps[offset:end], nil
}

// Update overwrites an existing application owned by the user.
func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := r.data[app.UserID]
	for i := range apps {
		if apps[i].ID == app.ID {
			apps[i] = app
			r.data[app.UserID] = apps
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes an application owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, appID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := r.data[userID]
	for i := range apps {
		if apps[i].ID == appID {
			r.data[userID] = append(apps[:i], apps[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Count returns the number of applications owned by the user.
func (r *MemoryRepo) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[userID]), nil
}

// ListRecent returns the newest applications by creation time.
func (r *MemoryRepo) ListRecent(ctx context.Context, userID string, limit int) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	r.mu.RLock()
	apps := append([]Application(nil), r.data[userID]...)
	r.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	if limit < len(apps) {
		apps = apps[:limit]
	}
	return apps, nil
}

// CountByStatus tallies the user's applications per status.
func (r *MemoryRepo) CountByStatus(ctx context.Context, userID string) (map[Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[Status]int)
	for _, app := range r.data[userID] {
		counts[app.Status]++
	}
	return counts, nil
}

// DeleteAllForUser removes every application owned by the user and reports
// how many were removed. Used by account deletion.
func (r *MemoryRepo) DeleteAllForUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.data[userID])
	delete(r.data, userID)
	return n, nil
}

// ClaimGuest reassigns a guest's applications to an authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	apps := r.data[guestUserID]
	for i := range apps {
		apps[i].UserID = authedUserID
	}
	r.data[authedUserID] = append(r.data[authedUserID], apps...)
	delete(r.data, guestUserID)
	return len(apps), nil
}

var _ Repo = (*MemoryRepo)(nil)
