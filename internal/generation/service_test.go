package generation

import (
	"context"
	"errors"
	"testing"

	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/profiles"
)

type fakeProfiles struct {
	profile profiles.Profile
	err     error
}

func (f fakeProfiles) Get(ctx context.Context, userID string) (profiles.Profile, error) {
	return f.profile, f.err
}

type fakeApps struct {
	app applications.Application
	err error
}

func (f fakeApps) Get(ctx context.Context, userID, appID string) (applications.Application, error) {
	return f.app, f.err
}

type fakeLLM struct {
	output    string
	err       error
	lastInput llm.GenerateInput
}

func (f *fakeLLM) Generate(ctx context.Context, input llm.GenerateInput) (string, error) {
	f.lastInput = input
	return f.output, f.err
}

func newTestService(client llm.Client) *Service {
	return &Service{
		Profiles: fakeProfiles{profile: profiles.Profile{FullName: "Ada Lovelace", Headline: "Engineer"}},
		Apps: fakeApps{app: applications.Application{
			ID: "app-1", Company: "Acme", Position: "Engineer", Status: applications.StatusApplied,
		}},
		LLM: client,
	}
}

func TestGenerateCoverLetterStripsFences(t *testing.T) {
	client := &fakeLLM{output: "```\nDear Hiring Manager,\n\nI am excited to apply.\n```"}
	svc := newTestService(client)

	result, err := svc.GenerateCoverLetter(context.Background(), "guest:a", CoverLetterRequest{ApplicationID: "app-1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Content != "Dear Hiring Manager,\n\nI am excited to apply." {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if result.Metadata.ApplicationID != "app-1" {
		t.Fatalf("expected metadata applicationId app-1, got %q", result.Metadata.ApplicationID)
	}
	if result.Metadata.GeneratedAt.IsZero() {
		t.Fatal("expected generatedAt to be set")
	}
	if client.lastInput.JSONOutput {
		t.Fatal("cover letter generation must not request JSON output")
	}
}

func TestGenerateCoverLetterRequiresTarget(t *testing.T) {
	svc := newTestService(&fakeLLM{output: "text"})

	_, err := svc.GenerateCoverLetter(context.Background(), "guest:a", CoverLetterRequest{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateCoverLetterUnknownApplication(t *testing.T) {
	svc := newTestService(&fakeLLM{output: "text"})
	svc.Apps = fakeApps{err: applications.ErrNotFound}

	_, err := svc.GenerateCoverLetter(context.Background(), "guest:a", CoverLetterRequest{ApplicationID: "missing"})
	if !errors.Is(err, applications.ErrNotFound) {
		t.Fatalf("expected applications.ErrNotFound, got %v", err)
	}
}

func TestGenerateResumeParsesFencedJSON(t *testing.T) {
	client := &fakeLLM{output: "```json\n" +
		`{"summary":"Engineer with 10 years experience.","sections":[{"heading":"Experience","items":["Built things at Acme"]}],"skills":["Go","SQL"]}` +
		"\n```"}
	svc := newTestService(client)

	result, err := svc.GenerateResume(context.Background(), "guest:a", ResumeRequest{ApplicationID: "app-1"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Content["summary"] != "Engineer with 10 years experience." {
		t.Fatalf("unexpected summary: %v", result.Content["summary"])
	}
	if !client.lastInput.JSONOutput {
		t.Fatal("resume generation must request JSON output")
	}
}

func TestGenerateResumeRejectsBadJSON(t *testing.T) {
	svc := newTestService(&fakeLLM{output: "here is your resume: summary, skills"})

	_, err := svc.GenerateResume(context.Background(), "guest:a", ResumeRequest{})
	if !errors.Is(err, ErrBadModelOutput) {
		t.Fatalf("expected ErrBadModelOutput, got %v", err)
	}
}

func TestGenerateResumeRejectsSchemaViolation(t *testing.T) {
	svc := newTestService(&fakeLLM{output: `{"summary":"ok","unexpected":true}`})

	_, err := svc.GenerateResume(context.Background(), "guest:a", ResumeRequest{})
	if !errors.Is(err, ErrBadModelOutput) {
		t.Fatalf("expected ErrBadModelOutput, got %v", err)
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	svc := newTestService(llm.NotConfiguredClient{})

	_, err := svc.GenerateCoverLetter(context.Background(), "guest:a", CoverLetterRequest{JobDescription: "Go role"})
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected llm.ErrNotConfigured, got %v", err)
	}
	_, err = svc.GenerateResume(context.Background(), "guest:a", ResumeRequest{})
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("expected llm.ErrNotConfigured, got %v", err)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"```\nbody\n```", "body"},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"  ```\nbody\n```  ", "body"},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
