package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/artifacts"
	"jobtrack-backend/internal/render"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/storage/object/local"
)

type stubRenderer struct {
	pdf []byte
	err error
}

func (s stubRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return s.pdf, s.err
}

func newRenderRouter(t *testing.T, renderer render.PDFRenderer) (*gin.Engine, *resumes.Service, *artifacts.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeSvc := &resumes.Service{Repo: resumes.NewMemoryRepo()}
	artifactSvc := &artifacts.Service{
		Repo:  artifacts.NewMemoryRepo(),
		Store: local.New(t.TempDir()),
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "guest:a")
		c.Next()
	})
	render.NewHandler(resumeSvc, artifactSvc, renderer).RegisterRoutes(&r.RouterGroup)
	return r, resumeSvc, artifactSvc
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestPreviewInlineContent(t *testing.T) {
	r, _, _ := newRenderRouter(t, stubRenderer{})

	resp := postJSON(t, r, "/resume-generation/preview", map[string]any{
		"title":   "Jordan Doe",
		"content": map[string]any{"summary": "Backend engineer."},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got %s", ct)
	}
	if !strings.Contains(resp.Body.String(), "Backend engineer.") {
		t.Fatal("summary missing from preview")
	}
}

func TestPreviewSavedResume(t *testing.T) {
	r, resumeSvc, _ := newRenderRouter(t, stubRenderer{})

	resume, err := resumeSvc.Create(context.Background(), "guest:a", resumes.CreateInput{
		Title:   "Saved Resume",
		Content: map[string]any{"summary": "From storage."},
	})
	if err != nil {
		t.Fatalf("create resume: %v", err)
	}

	resp := postJSON(t, r, "/resume-generation/preview", map[string]any{"resumeId": resume.ID})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "From storage.") {
		t.Fatal("saved content missing from preview")
	}
}

func TestPreviewUnknownResume(t *testing.T) {
	r, _, _ := newRenderRouter(t, stubRenderer{})

	resp := postJSON(t, r, "/resume-generation/preview", map[string]any{"resumeId": "missing"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestPreviewRejectsInvalidContent(t *testing.T) {
	r, _, _ := newRenderRouter(t, stubRenderer{})

	resp := postJSON(t, r, "/resume-generation/preview", map[string]any{
		"content": map[string]any{"unexpected": true},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestPreviewRequiresContentOrResumeID(t *testing.T) {
	r, _, _ := newRenderRouter(t, stubRenderer{})

	resp := postJSON(t, r, "/resume-generation/preview", map[string]any{"title": "Empty"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestPDFArchivesRenderedDocument(t *testing.T) {
	fakePDF := []byte("%PDF-1.7 fake")
	r, _, artifactSvc := newRenderRouter(t, stubRenderer{pdf: fakePDF})

	resp := postJSON(t, r, "/resume-generation/pdf", map[string]any{
		"title":   "Tailored",
		"content": map[string]any{"summary": "ok"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", ct)
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "Tailored.pdf") {
		t.Fatalf("unexpected content disposition %s", resp.Header().Get("Content-Disposition"))
	}
	if !bytes.Equal(resp.Body.Bytes(), fakePDF) {
		t.Fatal("response body differs from rendered pdf")
	}

	docs, err := artifactSvc.List(context.Background(), "guest:a", 10)
	if err != nil {
		t.Fatalf("list artifacts: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "Tailored" {
		t.Fatalf("expected archived document, got %+v", docs)
	}
}

func TestPDFRendererFailure(t *testing.T) {
	r, _, _ := newRenderRouter(t, stubRenderer{err: context.DeadlineExceeded})

	resp := postJSON(t, r, "/resume-generation/pdf", map[string]any{
		"content": map[string]any{"summary": "ok"},
	})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}
