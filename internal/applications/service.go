package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for job applications.
type Service struct {
	Repo Repo
}

// CreateInput carries the fields accepted when creating an application.
type CreateInput struct {
	Company        string
	Position       string
	JobDescription string
	Status         Status
	Location       string
	Notes          string
	AppliedAt      *time.Time
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Company        *string
	Position       *string
	JobDescription *string
	Status         *Status
	Location       *string
	Notes          *string
	AppliedAt      *time.Time
}

// Create validates and stores a new application for the user.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Application, error) {
	if strings.TrimSpace(userID) == "" {
		return Application{}, ErrInvalidInput
	}
	company := strings.TrimSpace(in.Company)
	position := strings.TrimSpace(in.Position)
	if company == "" || position == "" {
		return Application{}, ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = StatusApplied
	}
	if !ValidStatus(status) {
		return Application{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	app := Application{
		ID:             uuid.NewString(),
		UserID:         userID,
		Company:        company,
		Position:       position,
		JobDescription: strings.TrimSpace(in.JobDescription),
		Status:         status,
		Location:       strings.TrimSpace(in.Location),
		Notes:          in.Notes,
		AppliedAt:      in.AppliedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Get returns an application by ID for the user.
func (s *Service) Get(ctx context.Context, userID, appID string) (Application, error) {
	if userID == "" || appID == "" {
		return Application{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, appID)
}

// Exists reports whether the application exists and belongs to the user.
func (s *Service) Exists(ctx context.Context, userID, appID string) (bool, error) {
	_, err := s.Repo.GetByID(ctx, userID, appID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns the user's applications honoring the filter.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Application, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, filter)
}

// Update applies a partial update to an application owned by the user.
// Status transitions are unrestricted.
func (s *Service) Update(ctx context.Context, userID, appID string, in UpdateInput) (Application, error) {
	if userID == "" || appID == "" {
		return Application{}, ErrInvalidInput
	}

	app, err := s.Repo.GetByID(ctx, userID, appID)
	if err != nil {
		return Application{}, err
	}

	if in.Company != nil {
		company := strings.TrimSpace(*in.Company)
		if company == "" {
			return Application{}, ErrInvalidInput
		}
		app.Company = company
	}
	if in.Position != nil {
		position := strings.TrimSpace(*in.Position)
		if position == "" {
			return Application{}, ErrInvalidInput
		}
		app.Position = position
	}
	if in.JobDescription != nil {
		app.JobDescription = strings.TrimSpace(*in.JobDescription)
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return Application{}, ErrInvalidInput
		}
		app.Status = *in.Status
	}
	if in.Location != nil {
		app.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		app.Notes = *in.Notes
	}
	if in.AppliedAt != nil {
		app.AppliedAt = in.AppliedAt
	}
	app.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// Delete removes an application owned by the user.
func (s *Service) Delete(ctx context.Context, userID, appID string) error {
	if userID == "" || appID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, appID)
}
