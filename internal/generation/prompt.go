package generation

import (
	"fmt"
	"strings"

	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/profiles"
)

const coverLetterSystem = `You are an expert career writer. Write in clear,
professional prose. Use only the facts provided; never invent employers,
dates, or credentials.`

const resumeSystem = `You are an expert resume writer. Respond with a single
JSON object and nothing else. Use only the facts provided; never invent
employers, dates, or credentials.`

func buildCoverLetterPrompt(profile profiles.Profile, app *applications.Application, jobDescription, tone string) string {
	var b strings.Builder

	b.WriteString("Write a cover letter for the candidate below.\n\n")
	writeProfileFacts(&b, profile)
	writeJobFacts(&b, app, jobDescription)

	if tone != "" {
		fmt.Fprintf(&b, "Tone: %s.\n", tone)
	}
	b.WriteString("Return only the letter body, no subject line and no signature placeholders.\n")
	return b.String()
}

func buildResumePrompt(profile profiles.Profile, app *applications.Application, jobDescription string) string {
	var b strings.Builder

	b.WriteString("Write a resume for the candidate below, tailored to the target role.\n\n")
	writeProfileFacts(&b, profile)
	writeJobFacts(&b, app, jobDescription)

	b.WriteString(`Respond with a JSON object of this shape:
{
  "summary": "string",
  "sections": [{"heading": "string", "items": ["string"]}],
  "skills": ["string"]
}
`)
	return b.String()
}

func writeProfileFacts(b *strings.Builder, profile profiles.Profile) {
	b.WriteString("Candidate:\n")
	if profile.FullName != "" {
		fmt.Fprintf(b, "- Name: %s\n", profile.FullName)
	}
	if profile.Headline != "" {
		fmt.Fprintf(b, "- Headline: %s\n", profile.Headline)
	}
	if profile.Location != "" {
		fmt.Fprintf(b, "- Location: %s\n", profile.Location)
	}
	if profile.Summary != "" {
		fmt.Fprintf(b, "- Summary: %s\n", profile.Summary)
	}

	if len(profile.WorkExperience) > 0 {
		b.WriteString("\nWork experience:\n")
		for _, exp := range profile.WorkExperience {
			fmt.Fprintf(b, "- %s at %s", exp.Title, exp.Company)
			if exp.StartDate != "" || exp.EndDate != "" {
				fmt.Fprintf(b, " (%s - %s)", orPresent(exp.StartDate), orPresent(exp.EndDate))
			}
			b.WriteString("\n")
			if exp.Description != "" {
				fmt.Fprintf(b, "  %s\n", exp.Description)
			}
			for _, h := range exp.Highlights {
				fmt.Fprintf(b, "  * %s\n", h)
			}
		}
	}

	if len(profile.Education) > 0 {
		b.WriteString("\nEducation:\n")
		for _, edu := range profile.Education {
			fmt.Fprintf(b, "- %s", edu.Institution)
			if edu.Degree != "" {
				fmt.Fprintf(b, ", %s", edu.Degree)
			}
			if edu.Field != "" {
				fmt.Fprintf(b, " in %s", edu.Field)
			}
			b.WriteString("\n")
		}
	}

	if len(profile.Skills) > 0 {
		names := make([]string, 0, len(profile.Skills))
		for _, skill := range profile.Skills {
			names = append(names, skill.Name)
		}
		fmt.Fprintf(b, "\nSkills: %s\n", strings.Join(names, ", "))
	}

	if len(profile.Achievements) > 0 {
		b.WriteString("\nAchievements:\n")
		for _, a := range profile.Achievements {
			fmt.Fprintf(b, "- %s\n", a.Title)
		}
	}
	b.WriteString("\n")
}

func writeJobFacts(b *strings.Builder, app *applications.Application, jobDescription string) {
	if app != nil {
		fmt.Fprintf(b, "Target role: %s at %s\n", app.Position, app.Company)
		if jobDescription == "" {
			jobDescription = app.JobDescription
		}
	}
	if jobDescription != "" {
		fmt.Fprintf(b, "Job description:\n%s\n", jobDescription)
	}
	b.WriteString("\n")
}

func orPresent(date string) string {
	if date == "" {
		return "present"
	}
	return date
}
