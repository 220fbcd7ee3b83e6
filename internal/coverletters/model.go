package coverletters

import "time"

// CoverLetter represents a stored cover letter owned by a user.
type CoverLetter struct {
	ID            string
	UserID        string
	Title         string
	Content       string
	IsAIGenerated bool
	ApplicationID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
