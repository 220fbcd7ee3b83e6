package generation_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/bootstrap"
	"jobtrack-backend/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, guestID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func saveProfile(t *testing.T, router *gin.Engine, guestID string) {
	t.Helper()
	resp := doJSON(t, router, http.MethodPut, "/api/v1/profile", guestID, map[string]any{
		"fullName": "Jordan Doe",
		"headline": "Backend Engineer",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("save profile: expected status 200, got %d", resp.Code)
	}
}

func TestGenerateCoverLetterWithoutProfile(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters/generate", "guest-a", map[string]any{
		"jobDescription": "Go backend role",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGenerateCoverLetterWithoutProvider(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "guest-a")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters/generate", "guest-a", map[string]any{
		"jobDescription": "Go backend role",
	})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "generation_unavailable" {
		t.Fatalf("expected code generation_unavailable, got %s", code)
	}
}

func TestGenerateCoverLetterRequiresTarget(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "guest-a")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters/generate", "guest-a", map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGenerateCoverLetterUnknownApplication(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "guest-a")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters/generate", "guest-a", map[string]any{
		"applicationId": "b2a7c2de-0000-4000-8000-000000000000",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGenerateResumeWithoutProvider(t *testing.T) {
	router := newTestRouter(t)
	saveProfile(t, router, "guest-a")

	resp := doJSON(t, router, http.MethodPost, "/api/v1/resume-generation", "guest-a", map[string]any{})
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d: %s", resp.Code, resp.Body.String())
	}
	if code := errorCode(t, resp); code != "generation_unavailable" {
		t.Fatalf("expected code generation_unavailable, got %s", code)
	}
}
