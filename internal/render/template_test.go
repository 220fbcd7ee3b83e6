package render

import (
	"strings"
	"testing"
)

func TestHTMLRendersSectionsAndSkills(t *testing.T) {
	content := map[string]any{
		"summary": "Backend engineer with Go experience.",
		"sections": []any{
			map[string]any{
				"heading": "Experience",
				"items":   []any{"Built the billing service", "Led the migration to Postgres"},
			},
		},
		"skills": []any{"Go", "Postgres"},
	}

	html, err := HTML("Jordan Doe", content)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	for _, want := range []string{
		"Jordan Doe",
		"Backend engineer with Go experience.",
		"Experience",
		"Built the billing service",
		"Go",
		"Postgres",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered HTML missing %q", want)
		}
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	html, err := HTML("Jordan <script>alert(1)</script>", map[string]any{
		"summary": "<b>bold</b> claim",
	})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("title was not escaped")
	}
	if strings.Contains(html, "<b>bold</b>") {
		t.Fatal("summary was not escaped")
	}
}

func TestHTMLIgnoresUnknownKeys(t *testing.T) {
	html, err := HTML("Resume", map[string]any{
		"summary": "ok",
		"extra":   map[string]any{"nested": true},
	})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "ok") {
		t.Fatal("summary missing from rendered HTML")
	}
}

func TestHTMLEmptyContent(t *testing.T) {
	html, err := HTML("Resume", nil)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "Resume") {
		t.Fatal("title missing from rendered HTML")
	}
}
