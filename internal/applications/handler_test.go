package applications_test

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

type appResponse struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

func TestApplicationCreateAndGetRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/applications", "guest-a", map[string]any{
		"company":  "Acme",
		"position": "Engineer",
		"notes":    "referred by Sam",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created appResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id, got empty")
	}
	if created.Status != "applied" {
		t.Fatalf("expected default status applied, got %s", created.Status)
	}

	respGet := doJSON(t, router, http.MethodGet, "/api/v1/applications/"+created.ID, "guest-a", nil)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched appResponse
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Company != "Acme" || fetched.Position != "Engineer" || fetched.Notes != "referred by Sam" {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
}

func TestApplicationCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/applications", "guest-a", map[string]any{
		"position": "Engineer",
		"status":   "ghosted",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %s", body.Error.Code)
	}
	if len(body.Error.Details) != 2 {
		t.Fatalf("expected 2 field errors (company, status), got %d", len(body.Error.Details))
	}
}

func TestApplicationOwnershipIsolation(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/applications", "guest-a", map[string]any{
		"company":  "Acme",
		"position": "Engineer",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var created appResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	// Another user cannot read, update, or delete it.
	if resp := doJSON(t, router, http.MethodGet, "/api/v1/applications/"+created.ID, "guest-b", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign get, got %d", resp.Code)
	}
	if resp := doJSON(t, router, http.MethodPut, "/api/v1/applications/"+created.ID, "guest-b", map[string]any{"notes": "x"}); resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign update, got %d", resp.Code)
	}
	if resp := doJSON(t, router, http.MethodDelete, "/api/v1/applications/"+created.ID, "guest-b", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign delete, got %d", resp.Code)
	}

	// The owner still sees it untouched.
	respGet := doJSON(t, router, http.MethodGet, "/api/v1/applications/"+created.ID, "guest-a", nil)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200 for owner get, got %d", respGet.Code)
	}
}

func TestApplicationStatusFilterAndUpdate(t *testing.T) {
	router := newTestRouter(t)

	for _, in := range []map[string]any{
		{"company": "Acme", "position": "Engineer", "status": "applied"},
		{"company": "Globex", "position": "Manager", "status": "interviewing"},
	} {
		if resp := doJSON(t, router, http.MethodPost, "/api/v1/applications", "guest-a", in); resp.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.Code)
		}
	}

	resp := doJSON(t, router, http.MethodGet, "/api/v1/applications?status=interviewing", "guest-a", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var list []appResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Company != "Globex" {
		t.Fatalf("expected only Globex, got %+v", list)
	}

	// Any status transition is allowed, including straight to offer.
	respUp := doJSON(t, router, http.MethodPut, "/api/v1/applications/"+list[0].ID, "guest-a", map[string]any{"status": "offer"})
	if respUp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respUp.Code)
	}
	var updated appResponse
	if err := json.NewDecoder(respUp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.Status != "offer" {
		t.Fatalf("expected status offer, got %s", updated.Status)
	}
	if updated.Company != "Globex" {
		t.Fatalf("partial update clobbered company: %s", updated.Company)
	}
}

func TestApplicationDeleteMissingReturnsNotFound(t *testing.T) {
	router := newTestRouter(t)

	resp := doJSON(t, router, http.MethodDelete, "/api/v1/applications/does-not-exist", "guest-a", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestApplicationRequiresIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
