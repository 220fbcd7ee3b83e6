package profiles

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for profiles.
type Service struct {
	Repo Repo
}

// SaveInput carries the full profile document sent by the client. Saves are
// whole-document replacements; sub-collections keep the order given.
type SaveInput struct {
	FullName       string
	Email          string
	Phone          string
	Location       string
	Headline       string
	Summary        string
	WorkExperience []WorkExperience
	Education      []Education
	Skills         []Skill
	Achievements   []Achievement
	References     []Reference
}

// Get returns the user's profile, or ErrNotFound before the first save.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.Get(ctx, userID)
}

// Save upserts the user's profile, creating it lazily on first save.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Profile, error) {
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	profile := Profile{
		UserID:         userID,
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		Location:       in.Location,
		Headline:       in.Headline,
		Summary:        in.Summary,
		WorkExperience: in.WorkExperience,
		Education:      in.Education,
		Skills:         in.Skills,
		Achievements:   in.Achievements,
		References:     in.References,
		UpdatedAt:      now,
	}

	existing, err := s.Repo.Get(ctx, userID)
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		profile.ID = uuid.NewString()
		profile.CreatedAt = now
	default:
		return Profile{}, err
	}

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
