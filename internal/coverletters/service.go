package coverletters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppReader checks that a linked job application exists and belongs to the user.
type AppReader interface {
	Exists(ctx context.Context, userID, applicationID string) (bool, error)
}

// Service implements cover letter management on top of a Repo.
type Service struct {
	repo Repo
	apps AppReader
}

// NewService constructs a Service. apps may be nil to skip link checks.
func NewService(repo Repo, apps AppReader) *Service {
	return &Service{repo: repo, apps: apps}
}

// CreateInput carries the fields accepted when creating a cover letter.
type CreateInput struct {
	Title         string
	Content       string
	IsAIGenerated bool
	ApplicationID string
}

// UpdateInput carries optional fields for partial updates. Nil means unchanged.
type UpdateInput struct {
	Title         *string
	Content       *string
	ApplicationID *string
}

// Create validates input and stores a new cover letter.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (CoverLetter, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return CoverLetter{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.checkApplication(ctx, userID, in.ApplicationID); err != nil {
		return CoverLetter{}, err
	}

	now := time.Now().UTC()
	letter := CoverLetter{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		Content:       in.Content,
		IsAIGenerated: in.IsAIGenerated,
		ApplicationID: in.ApplicationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, letter); err != nil {
		return CoverLetter{}, err
	}
	return letter, nil
}

// Get returns a cover letter owned by the user.
func (s *Service) Get(ctx context.Context, userID, letterID string) (CoverLetter, error) {
	return s.repo.GetByID(ctx, userID, letterID)
}

// List returns cover letters owned by the user, newest-update-first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]CoverLetter, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

// Update applies a partial update to a cover letter owned by the user.
func (s *Service) Update(ctx context.Context, userID, letterID string, in UpdateInput) (CoverLetter, error) {
	letter, err := s.repo.GetByID(ctx, userID, letterID)
	if err != nil {
		return CoverLetter{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return CoverLetter{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		letter.Title = title
	}
	if in.Content != nil {
		letter.Content = *in.Content
	}
	if in.ApplicationID != nil {
		if err := s.checkApplication(ctx, userID, *in.ApplicationID); err != nil {
			return CoverLetter{}, err
		}
		letter.ApplicationID = *in.ApplicationID
	}

	letter.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, letter); err != nil {
		return CoverLetter{}, err
	}
	return letter, nil
}

// Delete removes a cover letter owned by the user.
func (s *Service) Delete(ctx context.Context, userID, letterID string) error {
	return s.repo.Delete(ctx, userID, letterID)
}

func (s *Service) checkApplication(ctx context.Context, userID, applicationID string) error {
	if applicationID == "" || s.apps == nil {
		return nil
	}
	ok, err := s.apps.Exists(ctx, userID, applicationID)
	if err != nil {
		return fmt.Errorf("check application link: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: applicationId does not reference an owned application", ErrInvalidInput)
	}
	return nil
}
