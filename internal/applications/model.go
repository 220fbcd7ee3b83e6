package applications

import "time"

// Status enumerates the pipeline stages of a job application.
// Transitions are user-set and unrestricted.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// ValidStatus reports whether s is a known pipeline status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Statuses lists all known statuses, in pipeline order.
func Statuses() []Status {
	return []Status{StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn}
}

// Application represents a tracked job application owned by a user.
type Application struct {
	ID             string
	UserID         string
	Company        string
	Position       string
	JobDescription string
	Status         Status
	Location       string
	Notes          string
	AppliedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
