package artifacts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]GeneratedDocument // userId -> documents
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]GeneratedDocument)}
}

// Create stores a generated document record.
func (r *MemoryRepo) Create(ctx context.Context, doc GeneratedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.UserID] = append(r.data[doc.UserID], doc)
	return nil
}

// GetByID fetches a generated document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, docID string) (GeneratedDocument, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[userID] {
		if doc.ID == docID {
			return doc, nil
		}
	}
	return GeneratedDocument{}, ErrNotFound
}

// ListByUser lists generated documents newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]GeneratedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	r.mu.RLock()
	docs := append([]GeneratedDocument(nil), r.data[userID]...)
	r.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	if limit < len(docs) {
		docs = docs[:limit]
	}
	return docs, nil
}

// DeleteByUser removes all generated document records for a user.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, userID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
