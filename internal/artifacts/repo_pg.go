package artifacts

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a generated document record.
func (r *PGRepo) Create(ctx context.Context, doc GeneratedDocument) error {
	const query = `
INSERT INTO generated_documents (id, user_id, source_kind, title, storage_key, mime_type, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.SourceKind,
		doc.Title,
		doc.StorageKey,
		doc.MimeType,
		doc.SizeBytes,
		doc.CreatedAt,
	)
	return err
}

// GetByID fetches a generated document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, docID string) (GeneratedDocument, error) {
	const query = `
SELECT id, user_id, source_kind, title, storage_key, mime_type, size_bytes, created_at
FROM generated_documents
WHERE user_id = $1 AND id = $2
LIMIT 1`

	var doc GeneratedDocument
	err := r.DB.QueryRowContext(ctx, query, userID, docID).Scan(
		&doc.ID,
		&doc.UserID,
		&doc.SourceKind,
		&doc.Title,
		&doc.StorageKey,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedDocument{}, ErrNotFound
		}
		return GeneratedDocument{}, err
	}
	return doc, nil
}

// ListByUser lists generated documents newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]GeneratedDocument, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
SELECT id, user_id, source_kind, title, storage_key, mime_type, size_bytes, created_at
FROM generated_documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GeneratedDocument
	for rows.Next() {
		var doc GeneratedDocument
		err := rows.Scan(
			&doc.ID,
			&doc.UserID,
			&doc.SourceKind,
			&doc.Title,
			&doc.StorageKey,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// DeleteByUser removes all generated document records for a user.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM generated_documents WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

var _ Repo = (*PGRepo)(nil)
