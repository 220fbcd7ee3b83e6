package resumes

import "time"

// Resume represents a stored resume owned by a user. A resume may be a
// tailored variant linked to a job application, and at most one resume
// per user is the default.
type Resume struct {
	ID            string
	UserID        string
	Title         string
	Content       map[string]any
	IsDefault     bool
	IsAIGenerated bool
	ApplicationID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
