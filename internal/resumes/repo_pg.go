package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume. When the resume is marked default, the
// user's other defaults are cleared in the same transaction.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const insert = `
INSERT INTO resumes (
    id,
    user_id,
    title,
    content,
    is_default,
    is_ai_generated,
    application_id,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	content, err := marshalContent(resume.Content)
	if err != nil {
		return err
	}
	var applicationID sql.NullString
	if resume.ApplicationID != "" {
		applicationID = sql.NullString{String: resume.ApplicationID, Valid: true}
	}

	args := []any{
		resume.ID,
		resume.UserID,
		resume.Title,
		content,
		resume.IsDefault,
		resume.IsAIGenerated,
		applicationID,
		resume.CreatedAt,
		resume.UpdatedAt,
	}

	if !resume.IsDefault {
		_, err := r.DB.ExecContext(ctx, insert, args...)
		return err
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := clearDefaults(ctx, tx, resume.UserID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, insert, args...)
		return err
	})
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, title, content, is_default, is_ai_generated, application_id, created_at, updated_at
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, userID, resumeID)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByUser lists resumes ordered by most recent update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Resume, error) {
	limit, offset := normalizePage(filter.Limit, filter.Offset)
	const query = `
SELECT id, user_id, title, content, is_default, is_ai_generated, application_id, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3`

	return r.queryResumes(ctx, query, userID, limit, offset)
}

// ListRecent lists the newest resumes by creation time, for activity feeds.
func (r *PGRepo) ListRecent(ctx context.Context, userID string, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
SELECT id, user_id, title, content, is_default, is_ai_generated, application_id, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	return r.queryResumes(ctx, query, userID, limit)
}

// Update overwrites a resume owned by the user. When the update marks the
// resume default, other defaults are cleared in the same transaction.
func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const update = `
UPDATE resumes
SET title = $1,
    content = $2,
    is_default = $3,
    is_ai_generated = $4,
    application_id = $5,
    updated_at = $6
WHERE user_id = $7 AND id = $8`

	content, err := marshalContent(resume.Content)
	if err != nil {
		return err
	}
	var applicationID sql.NullString
	if resume.ApplicationID != "" {
		applicationID = sql.NullString{String: resume.ApplicationID, Valid: true}
	}

	args := []any{
		resume.Title,
		content,
		resume.IsDefault,
		resume.IsAIGenerated,
		applicationID,
		resume.UpdatedAt,
		resume.UserID,
		resume.ID,
	}

	if !resume.IsDefault {
		res, err := r.DB.ExecContext(ctx, update, args...)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if err := clearDefaults(ctx, tx, resume.UserID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, update, args...)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Delete hard-deletes a resume owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, resumeID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of resumes owned by the user.
func (r *PGRepo) Count(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM resumes WHERE user_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func clearDefaults(ctx context.Context, tx *sql.Tx, userID string) error {
	const query = `UPDATE resumes SET is_default = FALSE WHERE user_id = $1 AND is_default = TRUE`
	_, err := tx.ExecContext(ctx, query, userID)
	return err
}

func (r *PGRepo) queryResumes(ctx context.Context, query string, args ...any) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var content []byte
	var applicationID sql.NullString
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&content,
		&resume.IsDefault,
		&resume.IsAIGenerated,
		&applicationID,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &resume.Content); err != nil {
			return Resume{}, fmt.Errorf("decode resume content: %w", err)
		}
	}
	if applicationID.Valid {
		resume.ApplicationID = applicationID.String
	}
	return resume, nil
}

func marshalContent(content map[string]any) ([]byte, error) {
	if content == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode resume content: %w", err)
	}
	return data, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var _ Repo = (*PGRepo)(nil)
