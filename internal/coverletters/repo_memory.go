package coverletters

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]CoverLetter // userId -> cover letters
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]CoverLetter),
	}
}

// Create stores a new cover letter for a user.
func (r *MemoryRepo) Create(ctx context.Context, letter CoverLetter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[letter.UserID] = append(r.data[letter.UserID], letter)
	return nil
}

// GetByID returns a cover letter by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return CoverLetter{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, letter := range r.data[userID] {
		if letter.ID == letterID {
			return letter, nil
		}
	}
	return CoverLetter{}, ErrNotFound
}

// ListByUser returns cover letters newest-update-first, honoring the filter.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset := normalizePage(filter.Limit, filter.Offset)

	r.mu.RLock()
	letters := append([]CoverLetter(nil), r.data[userID]...)
	r.mu.RUnlock()

	sort.Slice(letters, func(i, j int) bool {
		return letters[i].UpdatedAt.After(letters[j].UpdatedAt)
	})

	if offset >= len(letters) {
		return []CoverLetter{}, nil
	}
	end := len(letters)
	if offset+limit < end {
		end = offset + limit
	}
	return letters[offset:end], nil
}

// ListRecent returns the newest cover letters by creation time.
func (r *MemoryRepo) ListRecent(ctx context.Context, userID string, limit int) ([]CoverLetter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	r.mu.RLock()
	letters := append([]CoverLetter(nil), r.data[userID]...)
	r.mu.RUnlock()

	sort.Slice(letters, func(i, j int) bool {
		return letters[i].CreatedAt.After(letters[j].CreatedAt)
	})
	if limit < len(letters) {
		letters = letters[:limit]
	}
	return letters, nil
}

// Update overwrites an existing cover letter owned by the user.
func (r *MemoryRepo) Update(ctx context.Context, letter CoverLetter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	letters := r.data[letter.UserID]
	for i := range letters {
		if letters[i].ID == letter.ID {
			letters[i] = letter
			r.data[letter.UserID] = letters
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes a cover letter owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, letterID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	letters := r.data[userID]
	for i := range letters {
		if letters[i].ID == letterID {
			r.data[userID] = append(letters[:i], letters[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Count returns the number of cover letters owned by the user.
func (r *MemoryRepo) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data[userID]), nil
}

// DeleteAllForUser removes every cover letter owned by the user and reports
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

// ClaimGuest reassigns a guest's cover letters to an authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	letters := r.data[guestUserID]
	for i := range letters {
		letters[i].UserID = authedUserID
	}
	r.data[authedUserID] = append(r.data[authedUserID], letters...)
	delete(r.data, guestUserID)
	return len(letters), nil
}

var _ Repo = (*MemoryRepo)(nil)
