package profiles

import "time"

// Profile holds a user's personal info and career history. One per user.
type Profile struct {
	ID             string
	UserID         string
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
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WorkExperience is a single employment entry. Order is caller-defined.
type WorkExperience struct {
	Company     string   `json:"company"`
	Title       string   `json:"title"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
}

// Skill is a named skill with an optional proficiency label.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Achievement is a notable accomplishment outside of a specific role.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Reference is a professional reference contact.
type Reference struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Contact  string `json:"contact,omitempty"`
}
