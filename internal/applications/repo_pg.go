package applications

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO job_applications (
    id,
    user_id,
    company,
    position,
    job_description,
    status,
    location,
    notes,
    applied_at,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var jobDescription sql.NullString
	if app.JobDescription != "" {
		jobDescription = sql.NullString{String: app.JobDescription, Valid: true}
	}
	var appliedAt sql.NullTime
	if app.AppliedAt != nil {
		appliedAt = sql.NullTime{Time: *app.AppliedAt, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.UserID,
		app.Company,
		app.Position,
		jobDescription,
		app.Status,
		app.Location,
		app.Notes,
		appliedAt,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// GetByID fetches a job application by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, appID string) (Application, error) {
	const query = `
SELECT id, user_id, company, position, job_description, status, location, notes, applied_at, created_at, updated_at
FROM job_applications
WHERE user_id = $1 AND id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, userID, appID)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// ListByUser lists job applications ordered by most recent update.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	limit, offset := normalizePage(filter.Limit, filter.Offset)

	query := `
SELECT id, user_id, company, position, job_description, status, location, notes, applied_at, created_at, updated_at
FROM job_applications
WHERE user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		query += ` AND status = $2
ORDER BY updated_at DESC
LIMIT $3 OFFSET $4`
		args = append(args, filter.Status, limit, offset)
	} else {
		query += `
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of an application owned by the user.
func (r *PGRepo) Update(ctx context.Context, app Application) error {
	const query = `
UPDATE job_applications
SET company = $1,
    position = $2,
    job_description = $3,
    status = $4,
    location = $5,
    notes = $6,
    applied_at = $7,
    updated_at = $8
WHERE user_id = $9 AND id = $10`

	var jobDescription sql.NullString
	if app.JobDescription != "" {
		jobDescription = sql.NullString{String: app.JobDescription, Valid: true}
	}
	var appliedAt sql.NullTime
	if app.AppliedAt != nil {
		appliedAt = sql.NullTime{Time: *app.AppliedAt, Valid: true}
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		app.Company,
		app.Position,
		jobDescription,
		app.Status,
		app.Location,
		app.Notes,
		appliedAt,
		app.UpdatedAt,
		app.UserID,
		app.ID,
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

// Delete hard-deletes an application owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, appID string) error {
	const query = `DELETE FROM job_applications WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userID, appID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of applications owned by the user.
func (r *PGRepo) Count(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM job_applications WHERE user_id = $1`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListRecent lists the newest applications by creation time, for activity feeds.
func (r *PGRepo) ListRecent(ctx context.Context, userID string, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
SELECT id, user_id, company, position, job_description, status, location, notes, applied_at, created_at, updated_at
FROM job_applications
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// CountByStatus tallies the user's applications per pipeline status.
func (r *PGRepo) CountByStatus(ctx context.Context, userID string) (map[Status]int, error) {
	const query = `
SELECT status, COUNT(*)
FROM job_applications
WHERE user_id = $1
GROUP BY status`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var jobDescription sql.NullString
	var appliedAt sql.NullTime
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Company,
		&app.Position,
		&jobDescription,
		&app.Status,
		&app.Location,
		&app.Notes,
		&appliedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if jobDescription.Valid {
		app.JobDescription = jobDescription.String
	}
	if appliedAt.Valid {
		app.AppliedAt = &appliedAt.Time
	}
	return app, nil
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
