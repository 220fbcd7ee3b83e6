package coverletters_test

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

type letterResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	ApplicationID string `json:"applicationId"`
}

func TestCoverLetterCRUD(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters", "guest-a", map[string]any{
		"title":   "Acme Letter",
		"content": "Dear hiring team,",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created letterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	respUp := doJSON(t, router, http.MethodPut, "/api/v1/cover-letters/"+created.ID, "guest-a", map[string]any{
		"content": "Dear team,",
	})
	if respUp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respUp.Code)
	}
	var updated letterResponse
	if err := json.NewDecoder(respUp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Content != "Dear team," {
		t.Fatalf("expected updated content, got %q", updated.Content)
	}
	if updated.Title != "Acme Letter" {
		t.Fatalf("partial update clobbered title: %q", updated.Title)
	}

	if resp := doJSON(t, router, http.MethodDelete, "/api/v1/cover-letters/"+created.ID, "guest-a", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp := doJSON(t, router, http.MethodGet, "/api/v1/cover-letters/"+created.ID, "guest-a", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", resp.Code)
	}
}

func TestCoverLetterMissingTitleRejected(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters", "guest-a", map[string]any{
		"content": "no title",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCoverLetterApplicationLinkOwnership(t *testing.T) {
	router := newTestRouter(t)

	// guest-b owns the application.
	respApp := doJSON(t, router, http.MethodPost, "/api/v1/applications", "guest-b", map[string]any{
		"company":  "Acme",
		"position": "Engineer",
	})
	if respApp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", respApp.Code)
	}
	var app struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(respApp.Body).Decode(&app); err != nil {
		t.Fatalf("decode application: %v", err)
	}

	// guest-a cannot link a letter to guest-b's application.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters", "guest-a", map[string]any{
		"title":         "Letter",
		"applicationId": app.ID,
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for foreign application link, got %d", resp.Code)
	}

	// The owner can.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/cover-letters", "guest-b", map[string]any{
		"title":         "Letter",
		"applicationId": app.ID,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for owned application link, got %d: %s", resp.Code, resp.Body.String())
	}
	var created letterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ApplicationID != app.ID {
		t.Fatalf("expected applicationId %s, got %s", app.ID, created.ApplicationID)
	}
}

func TestCoverLetterOwnershipIsolation(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/cover-letters", "guest-a", map[string]any{
		"title": "Private",
	})
	var created letterResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	if resp := doJSON(t, router, http.MethodGet, "/api/v1/cover-letters/"+created.ID, "guest-b", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign get, got %d", resp.Code)
	}
}
