package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"sync"
)

//go:embed resume.html.tmpl
var resumeTemplateSrc string

var (
	resumeTemplateOnce sync.Once
	resumeTemplate     *template.Template
	resumeTemplateErr  error
)

type document struct {
	Title    string
	Summary  string
	RawText  string
	Sections []section
	Skills   []string
}

type section struct {
	Heading string
	Items   []string
}

// HTML renders structured resume content into a standalone HTML page.
func HTML(title string, content map[string]any) (string, error) {
	resumeTemplateOnce.Do(func() {
		resumeTemplate, resumeTemplateErr = template.New("resume").Parse(resumeTemplateSrc)
	})
	if resumeTemplateErr != nil {
		return "", fmt.Errorf("parse resume template: %w", resumeTemplateErr)
	}

	doc, err := decodeDocument(title, content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render resume: %w", err)
	}
	return buf.String(), nil
}

// decodeDocument converts the free-form content map into the template model
// via a JSON round trip, so unknown keys are ignored rather than fatal.
func decodeDocument(title string, content map[string]any) (document, error) {
	doc := document{Title: title}
	if content == nil {
		return doc, nil
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return document{}, fmt.Errorf("encode resume content: %w", err)
	}

	var parsed struct {
		Summary  string `json:"summary"`
		RawText  string `json:"rawText"`
		Sections []struct {
			Heading string   `json:"heading"`
			Items   []string `json:"items"`
		} `json:"sections"`
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return document{}, fmt.Errorf("decode resume content: %w", err)
	}

	doc.Summary = parsed.Summary
	doc.RawText = parsed.RawText
	doc.Skills = parsed.Skills
	for _, s := range parsed.Sections {
		doc.Sections = append(doc.Sections, section{Heading: s.Heading, Items: s.Items})
	}
	return doc, nil
}
