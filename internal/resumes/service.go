package resumes

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxImportBytes = 10 << 20 // 10MB

// AppReader checks that a linked job application exists and is owned by the user.
type AppReader interface {
	Exists(ctx context.Context, userID, appID string) (bool, error)
}

// TextExtractor pulls plain text out of an uploaded PDF.
type TextExtractor interface {
	ExtractPDF(ctx context.Context, data []byte) (string, error)
}

// Service contains business logic for resumes.
type Service struct {
	Repo      Repo
	Apps      AppReader
	Extractor TextExtractor
}

// CreateInput carries the fields accepted when creating a resume.
type CreateInput struct {
	Title         string
	Content       map[string]any
	IsDefault     bool
	IsAIGenerated bool
	ApplicationID string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title         *string
	Content       map[string]any
	IsDefault     *bool
	ApplicationID *string
}

// Create validates and stores a new resume. Marking it default demotes the
// user's other resumes inside the repository's critical section.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, ErrInvalidInput
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Resume{}, ErrInvalidInput
	}
	if err := ValidateContent(in.Content); err != nil {
		return Resume{}, err
	}
	if err := s.checkApplication(ctx, userID, in.ApplicationID); err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		Content:       in.Content,
		IsDefault:     in.IsDefault,
		IsAIGenerated: in.IsAIGenerated,
		ApplicationID: in.ApplicationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Get returns a resume by ID for the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes honoring the filter.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, filter)
}

// Update applies a partial update to a resume owned by the user.
func (s *Service) Update(ctx context.Context, userID, resumeID string, in UpdateInput) (Resume, error) {
	if userID == "" || resumeID == "" {
		return Resume{}, ErrInvalidInput
	}

	resume, err := s.Repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return Resume{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Resume{}, ErrInvalidInput
		}
		resume.Title = title
	}
	if in.Content != nil {
		if err := ValidateContent(in.Content); err != nil {
			return Resume{}, err
		}
		resume.Content = in.Content
	}
	if in.IsDefault != nil {
		resume.IsDefault = *in.IsDefault
	}
	if in.ApplicationID != nil {
		if err := s.checkApplication(ctx, userID, *in.ApplicationID); err != nil {
			return Resume{}, err
		}
		resume.ApplicationID = *in.ApplicationID
	}
	resume.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// Delete removes a resume owned by the user.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	if userID == "" || resumeID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, resumeID)
}

// Import extracts text from an uploaded PDF and saves a draft resume
// holding the raw text.
func (s *Service) Import(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(fileName) == "" {
		return Resume{}, ErrInvalidInput
	}
	if s.Extractor == nil {
		return Resume{}, fmt.Errorf("extractor not configured")
	}

	data, err := io.ReadAll(io.LimitReader(r, maxImportBytes+1))
	if err != nil {
		return Resume{}, err
	}
	if len(data) == 0 || len(data) > maxImportBytes {
		return Resume{}, ErrInvalidInput
	}

	text, err := s.Extractor.ExtractPDF(ctx, data)
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	title := strings.TrimSuffix(fileName, ".pdf")
	return s.Create(ctx, userID, CreateInput{
		Title:   title,
		Content: map[string]any{"rawText": text},
	})
}

func (s *Service) checkApplication(ctx context.Context, userID, appID string) error {
	if appID == "" || s.Apps == nil {
		return nil
	}
	ok, err := s.Apps.Exists(ctx, userID, appID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidInput
	}
	return nil
}
