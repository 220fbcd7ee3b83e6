package coverletters

import "time"

// CoverLetterResponse is the wire representation of a cover letter.
type CoverLetterResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	IsAIGenerated bool      `json:"isAiGenerated"`
	ApplicationID string    `json:"applicationId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toResponse(letter CoverLetter) CoverLetterResponse {
	return CoverLetterResponse{
		ID:            letter.ID,
		Title:         letter.Title,
		Content:       letter.Content,
		IsAIGenerated: letter.IsAIGenerated,
		ApplicationID: letter.ApplicationID,
		CreatedAt:     letter.CreatedAt,
		UpdatedAt:     letter.UpdatedAt,
	}
}
