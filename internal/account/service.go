package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/coverletters"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/resumes"
)

// Service performs cross-resource account operations: deleting everything a
// user owns, and claiming guest data after login. The users row is never
// touched; identity is owned by the auth subsystem.
type Service struct {
	// DB is set in Postgres mode so multi-table operations run in one
	// transaction. Nil means repo-by-repo fallback (memory mode).
	DB *sql.DB

	AppRepo      applications.Repo
	ResumeRepo   resumes.Repo
	LetterRepo   coverletters.Repo
	ArtifactRepo artifacts.Repo
	ProfileRepo  profiles.Repo
}

// DeleteResult reports how many rows each resource lost.
type DeleteResult struct {
	Applications int `json:"applications"`
	Resumes      int `json:"resumes"`
	CoverLetters int `json:"coverLetters"`
	Documents    int `json:"documents"`
}

// ClaimResult reports how many rows moved from the guest identity.
type ClaimResult struct {
	Applications int `json:"applications"`
	Resumes      int `json:"resumes"`
	CoverLetters int `json:"coverLetters"`
}

// DeleteAccount hard-deletes all user-owned rows across resources.
func (s *Service) DeleteAccount(ctx context.Context, userID string) (DeleteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return DeleteResult{}, errors.New("userID is required")
	}

	if s.DB != nil {
		return s.deleteWithTx(ctx, userID)
	}

	var result DeleteResult
	var err error
	if result.Applications, err = purge(ctx, s.AppRepo, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.Resumes, err = purge(ctx, s.ResumeRepo, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.CoverLetters, err = purge(ctx, s.LetterRepo, userID); err != nil {
		return DeleteResult{}, err
	}
	if err := s.ArtifactRepo.DeleteByUser(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	if err := s.ProfileRepo.Delete(ctx, userID); err != nil {
		return DeleteResult{}, err
	}
	return result, nil
}

func (s *Service) deleteWithTx(ctx context.Context, userID string) (DeleteResult, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	defer tx.Rollback()

	var result DeleteResult
	if result.Applications, err = execCount(ctx, tx, `DELETE FROM job_applications WHERE user_id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.Resumes, err = execCount(ctx, tx, `DELETE FROM resumes WHERE user_id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.CoverLetters, err = execCount(ctx, tx, `DELETE FROM cover_letters WHERE user_id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}
	if result.Documents, err = execCount(ctx, tx, `DELETE FROM generated_documents WHERE user_id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}
	if _, err = execCount(ctx, tx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
		return DeleteResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return DeleteResult{}, err
	}
	return result, nil
}

// ClaimGuest moves the guest identity's rows to the authenticated user.
// Migrated resumes drop their default flag so the authed user's own default
// stays the only one.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if s.DB != nil {
		return s.claimWithTx(ctx, guestUserID, authedUserID)
	}

	var result ClaimResult
	var err error
	if result.Applications, err = claim(ctx, s.AppRepo, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.Resumes, err = claim(ctx, s.ResumeRepo, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.CoverLetters, err = claim(ctx, s.LetterRepo, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	return result, nil
}

func (s *Service) claimWithTx(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	var result ClaimResult
	if result.Applications, err = execCount(ctx, tx, `UPDATE job_applications SET user_id = $1 WHERE user_id = $2`, authedUserID, guestUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.Resumes, err = execCount(ctx, tx, `UPDATE resumes SET user_id = $1, is_default = FALSE WHERE user_id = $2`, authedUserID, guestUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.CoverLetters, err = execCount(ctx, tx, `UPDATE cover_letters SET user_id = $1 WHERE user_id = $2`, authedUserID, guestUserID); err != nil {
		return ClaimResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return result, nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string, args ...any) (int, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

type userPurger interface {
	DeleteAllForUser(ctx context.Context, userID string) (int, error)
}

type guestClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

func purge(ctx context.Context, repo any, userID string) (int, error) {
	p, ok := repo.(userPurger)
	if !ok {
		return 0, errors.New("repo does not support bulk delete")
	}
	return p.DeleteAllForUser(ctx, userID)
}

func claim(ctx context.Context, repo any, guestUserID, authedUserID string) (int, error) {
	c, ok := repo.(guestClaimer)
	if !ok {
		return 0, errors.New("repo does not support claim")
	}
	return c.ClaimGuest(ctx, guestUserID, authedUserID)
}
