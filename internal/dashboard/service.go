package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/coverletters"
	"jobtrack-backend/internal/resumes"
)

// Activity item types.
const (
	TypeApplication = "application"
	TypeResume      = "resume"
	TypeCoverLetter = "cover_letter"
)

const defaultActivityLimit = 10

// AppSource reads applications for aggregation.
type AppSource interface {
	Count(ctx context.Context, userID string) (int, error)
	CountByStatus(ctx context.Context, userID string) (map[applications.Status]int, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]applications.Application, error)
}

// ResumeSource reads resumes for aggregation.
type ResumeSource interface {
	Count(ctx context.Context, userID string) (int, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]resumes.Resume, error)
}

// LetterSource reads cover letters for aggregation.
type LetterSource interface {
	Count(ctx context.Context, userID string) (int, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]coverletters.CoverLetter, error)
}

// Service aggregates per-user stats and recent activity across resources.
// Reads are independent and tallied in memory; nothing is cached or stored.
type Service struct {
	Apps    AppSource
	Resumes ResumeSource
	Letters LetterSource
}

// Stats summarizes resource counts for a user.
type Stats struct {
	Applications int            `json:"applications"`
	Resumes      int            `json:"resumes"`
	CoverLetters int            `json:"coverLetters"`
	ByStatus     map[string]int `json:"applicationsByStatus"`
}

// ActivityItem is a derived feed entry. Only resource creations appear.
type ActivityItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Action      string    `json:"action"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ActivityQuery narrows and limits the activity feed.
type ActivityQuery struct {
	Type  string // empty means all sources
	Limit int
}

// GetStats counts each resource and applications per status.
func (s *Service) GetStats(ctx context.Context, userID string) (Stats, error) {
	appCount, err := s.Apps.Count(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("count applications: %w", err)
	}
	resumeCount, err := s.Resumes.Count(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("count resumes: %w", err)
	}
	letterCount, err := s.Letters.Count(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("count cover letters: %w", err)
	}
	byStatus, err := s.Apps.CountByStatus(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("count applications by status: %w", err)
	}

	stats := Stats{
		Applications: appCount,
		Resumes:      resumeCount,
		CoverLetters: letterCount,
		ByStatus:     make(map[string]int, len(applications.Statuses())),
	}
	for _, status := range applications.Statuses() {
		stats.ByStatus[string(status)] = byStatus[status]
	}
	return stats, nil
}

// GetActivity merges the newest rows from each source into one feed sorted
// by creation time descending, truncated to the limit. Up to three times the
// limit is read transiently before truncation.
func (s *Service) GetActivity(ctx context.Context, userID string, q ActivityQuery) ([]ActivityItem, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > 100 {
		limit = 100
	}

	var items []ActivityItem

	if q.Type == "" || q.Type == TypeApplication {
		apps, err := s.Apps.ListRecent(ctx, userID, limit)
		if err != nil {
			return nil, fmt.Errorf("recent applications: %w", err)
		}
		for _, app := range apps {
			items = append(items, ActivityItem{
				ID:          app.ID,
				Type:        TypeApplication,
				Action:      "created",
				Title:       fmt.Sprintf("%s at %s", app.Position, app.Company),
				Description: app.Location,
				CreatedAt:   app.CreatedAt,
			})
		}
	}

	if q.Type == "" || q.Type == TypeResume {
		recent, err := s.Resumes.ListRecent(ctx, userID, limit)
		if err != nil {
			return nil, fmt.Errorf("recent resumes: %w", err)
		}
		for _, resume := range recent {
			items = append(items, ActivityItem{
				ID:        resume.ID,
				Type:      TypeResume,
				Action:    "created",
				Title:     resume.Title,
				CreatedAt: resume.CreatedAt,
			})
		}
	}

	if q.Type == "" || q.Type == TypeCoverLetter {
		letters, err := s.Letters.ListRecent(ctx, userID, limit)
		if err != nil {
			return nil, fmt.Errorf("recent cover letters: %w", err)
		}
		for _, letter := range letters {
			items = append(items, ActivityItem{
				ID:        letter.ID,
				Type:      TypeCoverLetter,
				Action:    "created",
				Title:     letter.Title,
				CreatedAt: letter.CreatedAt,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if limit < len(items) {
		items = items[:limit]
	}
	if items == nil {
		items = []ActivityItem{}
	}
	return items, nil
}

// ValidActivityType reports whether t names a known activity source.
func ValidActivityType(t string) bool {
	switch t {
	case "", TypeApplication, TypeResume, TypeCoverLetter:
		return true
	}
	return false
}
