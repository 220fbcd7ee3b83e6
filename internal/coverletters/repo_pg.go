package coverletters

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new cover letter.
func (r *PGRepo) Create(ctx context.Context, letter CoverLetter) error {
	const query = `
INSERT INTO cover_letters (
    id,
    user_id,
    title,
    content,
    is_ai_generated,
    application_id,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var applicationID sql.NullString
	if letter.ApplicationID != "" {
		applicationID = sql.NullString{String: letter.ApplicationID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		letter.ID,
		letter.UserID,
		letter.Title,
		letter.Content,
		letter.IsAIGenerated,
		applicationID,
		letter.CreatedAt,
		letter.UpdatedAt,
	)
	return err
}

// GetByID fetches a cover letter by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	const query = `
SELECT id, user_id, title, content, is_ai_generated, application_id, created_at, updated_at
FROM cover_letters
WHERE user_id = $1 AND id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, userID, letterID)
	letter, err := scanCoverLetter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CoverLetter{}, ErrNotFound
		}
		return CoverLetter{}, err
	}
	return letter, nil
}

// ListByUser lists cover letters ordered by most recent update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]CoverLetter, error) {
	limit, offset := normalizePage(filter.Limit, filter.Offset)
	const query = `
SELECT id, user_id, title, content, is_ai_generated, application_id, created_at, updated_at
FROM cover_letters
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3`

	return r.queryCoverLetters(ctx, query, userID, limit, offset)
}

// ListRecent lists the newest cover letters by creation time, for activity feeds.
func (r *PGRepo) ListRecent(ctx context.Context, userID string, limit int) ([]CoverLetter, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
SELECT id, user_id, title, content, is_ai_generated, application_id, created_at, updated_at
FROM cover_letters
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	return r.queryCoverLetters(ctx, query, userID, limit)
}

// Update overwrites a cover letter owned by the user.
func (r *PGRepo) Update(ctx context.Context, letter CoverLetter) error {
	const query = `
UPDATE cover_letters
SET title = $1,
    content = $2,
    is_ai_generated = $3,
    application_id = $4,
    updated_at = $5
WHERE user_id = $6 AND id = $7`

	var applicationID sql.NullString
	if letter.ApplicationID != "" {
		applicationID = sql.NullString{String: letter.ApplicationID, Valid: true}
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		letter.Title,
		letter.Content,
		letter.IsAIGenerated,
		applicationID,
		letter.UpdatedAt,
		letter.UserID,
		letter.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes a cover letter owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, letterID string) error {
	const query = `DELETE FROM cover_letters WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, letterID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of cover letters owned by the user.
func (r *PGRepo) Count(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM cover_letters WHERE user_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PGRepo) queryCoverLetters(ctx context.Context, query string, args ...any) ([]CoverLetter, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CoverLetter
	for rows.Next() {
		letter, err := scanCoverLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, letter)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoverLetter(row rowScanner) (CoverLetter, error) {
	var letter CoverLetter
	var applicationID sql.NullString
	err := row.Scan(
		&letter.ID,
		&letter.UserID,
		&letter.Title,
		&letter.Content,
		&letter.IsAIGenerated,
		&applicationID,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	)
	if err != nil {
		return CoverLetter{}, err
	}
	if applicationID.Valid {
		letter.ApplicationID = applicationID.String
	}
	return letter, nil
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
