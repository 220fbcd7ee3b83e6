package profiles_test

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

func TestProfileNotFoundBeforeFirstSave(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/profile", "guest-a", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestProfileSaveAndGetKeepsOrder(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]any{
		"fullName": "Jordan Doe",
		"headline": "Backend Engineer",
		"workExperience": []map[string]any{
			{"company": "Globex", "title": "Senior Engineer", "startDate": "2021-01"},
			{"company": "Acme", "title": "Engineer", "startDate": "2017-06", "endDate": "2020-12"},
		},
		"skills": []map[string]any{
			{"name": "Go"},
			{"name": "Postgres", "level": "advanced"},
		},
	}

	respPut := doJSON(t, router, http.MethodPut, "/api/v1/profile", "guest-a", body)
	if respPut.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respPut.Code, respPut.Body.String())
	}

	respGet := doJSON(t, router, http.MethodGet, "/api/v1/profile", "guest-a", nil)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	var fetched struct {
		FullName       string `json:"fullName"`
		WorkExperience []struct {
			Company string `json:"company"`
		} `json:"workExperience"`
		Skills []struct {
			Name string `json:"name"`
		} `json:"skills"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if fetched.FullName != "Jordan Doe" {
		t.Fatalf("expected fullName Jordan Doe, got %s", fetched.FullName)
	}
	if len(fetched.WorkExperience) != 2 || fetched.WorkExperience[0].Company != "Globex" {
		t.Fatalf("work experience order lost: %+v", fetched.WorkExperience)
	}
	if len(fetched.Skills) != 2 || fetched.Skills[0].Name != "Go" {
		t.Fatalf("skills order lost: %+v", fetched.Skills)
	}
}

func TestProfileSaveIsWholeDocumentReplacement(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPut, "/api/v1/profile", "guest-a", map[string]any{
		"fullName": "Jordan Doe",
		"skills":   []map[string]any{{"name": "Go"}},
	})
	doJSON(t, router, http.MethodPut, "/api/v1/profile", "guest-a", map[string]any{
		"fullName": "Jordan Doe",
	})

	respGet := doJSON(t, router, http.MethodGet, "/api/v1/profile", "guest-a", nil)
	var fetched struct {
		Skills []any `json:"skills"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if len(fetched.Skills) != 0 {
		t.Fatalf("expected skills cleared by replacement save, got %+v", fetched.Skills)
	}
}

func TestProfileScopedPerUser(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, http.MethodPut, "/api/v1/profile", "guest-a", map[string]any{"fullName": "A"})

	resp := doJSON(t, router, http.MethodGet, "/api/v1/profile", "guest-b", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for other user, got %d", resp.Code)
	}
}
