package applications

import "time"

// ApplicationResponse is the outward-facing representation of an application.
type ApplicationResponse struct {
	ID             string     `json:"id"`
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	JobDescription string     `json:"jobDescription,omitempty"`
	Status         Status     `json:"status"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	AppliedAt      *time.Time `json:"appliedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toResponse(app Application) ApplicationResponse {
	return ApplicationResponse{
		ID:             app.ID,
		Company:        app.Company,
		Position:       app.Position,
		JobDescription: app.JobDescription,
		Status:         app.Status,
		Location:       app.Location,
		Notes:          app.Notes,
		AppliedAt:      app.AppliedAt,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}
