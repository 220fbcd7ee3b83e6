package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. The default-flag
// invariant is maintained under a single lock.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Resume // userId -> resumes
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Resume),
	}
}

// Create stores a new resume, clearing other defaults when needed.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.IsDefault {
		r.clearDefaultsLocked(resume.UserID)
	}
	r.data[resume.UserID] = append(r.data[resume.UserID], resume)
	return nil
}

// GetByID returns a resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, resume := range r.data[userID] {
		if resume.ID == resumeID {
			return resume, nil
		}
	}
	return Resume{}, ErrNotFound
}

// ListByUser returns resumes newest-update-first, honoring the filter.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset := normalizePage(filter.Limit, filter.Offset)

	r.mu.RLock()
	resumes := append([]Resume(nil), r.data[userID]...)
	r.mu.RUnlock()

	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].UpdatedAt.After(resumes[j].UpdatedAt)
	})

	if offset >= len(resumes) {
		return []Resume{}, nil
	}
	end := len(resumes)
	if offset+limit < end {
		end = offset + limit
	}
	return resumes[offset:end], nil
}

// ListRecent returns the newest resumes by creation time.
func (r *MemoryRepo) ListRecent(ctx context.Context, userID string, limit int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	r.mu.RLock()
	resumes := append([]Resume(nil), r.data[userID]...)
	r.mu.RUnlock()

	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].CreatedAt.After(resumes[j].CreatedAt)
	})
	if limit < len(resumes) {
		resumes = resumes[:limit]
	}
	return resumes, nil
}

// Update overwrites an existing resume, clearing other defaults when needed.
func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resumes := r.data[resume.UserID]
	for i := range resumes {
		if resumes[i].ID == resume.ID {
			if resume.IsDefault {
				r.clearDefaultsLocked(resume.UserID)
			}
			resumes[i] = resume
			r.data[resume.UserID] = resumes
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a resume owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resumes := r.data[userID]
	for i := range resumes {
		if resumes[i].ID == resumeID {
			r.data[userID] = append(resumes[:i], resumes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Count returns the number of resumes owned by the user.
func (r *MemoryRepo) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[userID]), nil
}

func (r *MemoryRepo) clearDefaultsLocked(userID string) {
	resumes := r.data[userID]
	for i := range resumes {
		resumes[i].IsDefault = false
	}
	r.data[userID] = resumes
}

// DeleteAllForUser removes every resume owned by the user and reports how
// many were removed. Used by account deletion.
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

// ClaimGuest reassigns a guest's resumes to an authenticated user. Migrated
// rows lose their default flag so the target's default is undisturbed.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resumes := r.data[guestUserID]
	for i := range resumes {
		resumes[i].UserID = authedUserID
		resumes[i].IsDefault = false
	}
	r.data[authedUserID] = append(r.data[authedUserID], resumes...)
	delete(r.data, guestUserID)
	return len(resumes), nil
}

var _ Repo = (*MemoryRepo)(nil)
