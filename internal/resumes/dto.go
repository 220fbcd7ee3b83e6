package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Content       map[string]any `json:"content"`
	IsDefault     bool           `json:"isDefault"`
	IsAIGenerated bool           `json:"isAiGenerated"`
	ApplicationID string         `json:"applicationId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func toResponse(resume Resume) ResumeResponse {
	content := resume.Content
	if content == nil {
		content = map[string]any{}
	}
	return ResumeResponse{
		ID:            resume.ID,
		Title:         resume.Title,
		Content:       content,
		IsDefault:     resume.IsDefault,
		IsAIGenerated: resume.IsAIGenerated,
		ApplicationID: resume.ApplicationID,
		CreatedAt:     resume.CreatedAt,
		UpdatedAt:     resume.UpdatedAt,
	}
}
