package profiles

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

// Get fetches the profile for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT id, user_id, full_name, email, phone, location, headline, summary,
       work_experience, education, skills, achievements, refs,
       created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`

	var p Profile
	var work, edu, skills, achievements, refs []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.Location,
		&p.Headline,
		&p.Summary,
		&work,
		&edu,
		&skills,
		&achievements,
		&refs,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	if err := decodeList(work, &p.WorkExperience); err != nil {
		return Profile{}, err
	}
	if err := decodeList(edu, &p.Education); err != nil {
		return Profile{}, err
	}
	if err := decodeList(skills, &p.Skills); err != nil {
		return Profile{}, err
	}
	if err := decodeList(achievements, &p.Achievements); err != nil {
		return Profile{}, err
	}
	if err := decodeList(refs, &p.References); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Upsert creates the profile row on first save and overwrites it afterwards.
func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (
    id, user_id, full_name, email, phone, location, headline, summary,
    work_experience, education, skills, achievements, refs,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (user_id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    location = EXCLUDED.location,
    headline = EXCLUDED.headline,
    summary = EXCLUDED.summary,
    work_experience = EXCLUDED.work_experience,
    education = EXCLUDED.education,
    skills = EXCLUDED.skills,
    achievements = EXCLUDED.achievements,
    refs = EXCLUDED.refs,
    updated_at = EXCLUDED.updated_at`

	work, err := encodeList(profile.WorkExperience)
	if err != nil {
		return err
	}
	edu, err := encodeList(profile.Education)
	if err != nil {
		return err
	}
	skills, err := encodeList(profile.Skills)
	if err != nil {
		return err
	}
	achievements, err := encodeList(profile.Achievements)
	if err != nil {
		return err
	}
	refs, err := encodeList(profile.References)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.Location,
		profile.Headline,
		profile.Summary,
		work,
		edu,
		skills,
		achievements,
		refs,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

// Delete removes the profile row for a user. Missing rows are not an error;
// account deletion treats an absent profile as already gone.
func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM profiles WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}

func encodeList(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode profile list: %w", err)
	}
	if string(data) == "null" {
		return []byte("[]"), nil
	}
	return data, nil
}

func decodeList(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode profile list: %w", err)
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
