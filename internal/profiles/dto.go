package profiles

import "time"

// ProfileResponse is the wire representation of a profile.
type ProfileResponse struct {
	ID             string           `json:"id"`
	FullName       string           `json:"fullName"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Location       string           `json:"location"`
	Headline       string           `json:"headline"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
	Achievements   []Achievement    `json:"achievements"`
	References     []Reference      `json:"references"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func toResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:             p.ID,
		FullName:       p.FullName,
		Email:          p.Email,
		Phone:          p.Phone,
		Location:       p.Location,
		Headline:       p.Headline,
		Summary:        p.Summary,
		WorkExperience: p.WorkExperience,
		Education:      p.Education,
		Skills:         p.Skills,
		Achievements:   p.Achievements,
		References:     p.References,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if resp.WorkExperience == nil {
		resp.WorkExperience = []WorkExperience{}
	}
	if resp.Education == nil {
		resp.Education = []Education{}
	}
	if resp.Skills == nil {
		resp.Skills = []Skill{}
	}
	if resp.Achievements == nil {
		resp.Achievements = []Achievement{}
	}
	if resp.References == nil {
		resp.References = []Reference{}
	}
	return resp
}
