package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/metrics"
	"jobtrack-backend/internal/shared/telemetry"
)

// ProfileReader loads the profile used as generation input.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (profiles.Profile, error)
}

// AppReader loads a referenced job application, scoped to the owner.
type AppReader interface {
	Get(ctx context.Context, userID, appID string) (applications.Application, error)
}

// Service orchestrates one-shot document generation. Results are returned
// to the caller without persisting; saving is a separate explicit step.
type Service struct {
	Profiles ProfileReader
	Apps     AppReader
	LLM      llm.Client
}

// CoverLetterRequest targets a saved application, a pasted job description,
// or both. Tone is a free-form style hint.
type CoverLetterRequest struct {
	ApplicationID  string
	JobDescription string
	Tone           string
}

// ResumeRequest optionally targets a saved application or job description.
type ResumeRequest struct {
	ApplicationID  string
	JobDescription string
}

// Metadata describes a completed generation.
type Metadata struct {
	ApplicationID string    `json:"applicationId,omitempty"`
	DurationMs    int64     `json:"durationMs"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// CoverLetterResult is generated cover letter text plus metadata.
type CoverLetterResult struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// ResumeResult is generated structured resume content plus metadata.
type ResumeResult struct {
	Content  map[string]any `json:"content"`
	Metadata Metadata       `json:"metadata"`
}

// GenerateCoverLetter produces cover letter text from the user's profile and
// the targeted job. One synchronous provider call, no retries.
func (s *Service) GenerateCoverLetter(ctx context.Context, userID string, req CoverLetterRequest) (CoverLetterResult, error) {
	if req.ApplicationID == "" && strings.TrimSpace(req.JobDescription) == "" {
		return CoverLetterResult{}, fmt.Errorf("%w: applicationId or jobDescription is required", ErrInvalidInput)
	}

	profile, app, err := s.loadInputs(ctx, userID, req.ApplicationID)
	if err != nil {
		return CoverLetterResult{}, err
	}

	prompt := buildCoverLetterPrompt(profile, app, req.JobDescription, req.Tone)
	text, durationMs, err := s.generate(ctx, llm.GenerateInput{
		System: coverLetterSystem,
		Prompt: prompt,
	})
	if err != nil {
		return CoverLetterResult{}, err
	}

	content := strings.TrimSpace(stripCodeFences(text))
	if content == "" {
		return CoverLetterResult{}, ErrBadModelOutput
	}

	return CoverLetterResult{
		Content: content,
		Metadata: Metadata{
			ApplicationID: req.ApplicationID,
			DurationMs:    durationMs,
			GeneratedAt:   time.Now().UTC(),
		},
	}, nil
}

// GenerateResume produces structured resume content from the user's profile,
// optionally tailored to a job. The output must parse as JSON and satisfy
// the resume content schema.
func (s *Service) GenerateResume(ctx context.Context, userID string, req ResumeRequest) (ResumeResult, error) {
	profile, app, err := s.loadInputs(ctx, userID, req.ApplicationID)
	if err != nil {
		return ResumeResult{}, err
	}

	prompt := buildResumePrompt(profile, app, req.JobDescription)
	text, durationMs, err := s.generate(ctx, llm.GenerateInput{
		System:     resumeSystem,
		Prompt:     prompt,
		JSONOutput: true,
	})
	if err != nil {
		return ResumeResult{}, err
	}

	content, err := parseResumeContent(text)
	if err != nil {
		telemetry.Warn("generation.bad_output", map[string]any{"error": err.Error()})
		return ResumeResult{}, ErrBadModelOutput
	}

	return ResumeResult{
		Content: content,
		Metadata: Metadata{
			ApplicationID: req.ApplicationID,
			DurationMs:    durationMs,
			GeneratedAt:   time.Now().UTC(),
		},
	}, nil
}

func (s *Service) loadInputs(ctx context.Context, userID, applicationID string) (profiles.Profile, *applications.Application, error) {
	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return profiles.Profile{}, nil, err
	}

	var app *applications.Application
	if applicationID != "" {
		found, err := s.Apps.Get(ctx, userID, applicationID)
		if err != nil {
			return profiles.Profile{}, nil, err
		}
		app = &found
	}
	return profile, app, nil
}

func (s *Service) generate(ctx context.Context, input llm.GenerateInput) (string, int64, error) {
	metrics.IncGenerationStarted()
	start := time.Now()

	text, err := s.LLM.Generate(ctx, input)
	durationMs := time.Since(start).Milliseconds()
	metrics.ObserveGenerationDurationMs(float64(durationMs))

	if err != nil {
		metrics.IncGenerationFailed()
		return "", durationMs, err
	}
	metrics.IncGenerationCompleted()
	return text, durationMs, nil
}

// parseResumeContent strips code fences, parses the JSON object and checks
// it against the resume content schema.
func parseResumeContent(text string) (map[string]any, error) {
	cleaned := strings.TrimSpace(stripCodeFences(text))
	if cleaned == "" {
		return nil, fmt.Errorf("empty output")
	}

	var content map[string]any
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := resumes.ValidateContent(content); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	return content, nil
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
