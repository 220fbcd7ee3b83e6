package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newRateLimitedRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Rules: map[string]RateLimitRule{
			"GENERATION": {Rate: 1, Burst: 2},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.URL.Path == "/generate" {
				return "GENERATION"
			}
			return ""
		},
		Limiter: limiter,
	}))
	r.POST("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/other", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doPost(r *gin.Engine, path, guestID string) *httptest.ResponseRecorder {
	method := http.MethodPost
	if path == "/other" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, nil)
	if guestID != "" {
		req.Header.Set("X-Guest-Id", guestID)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitExhaustsBurstThenRecovers(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	r := newRateLimitedRouter(limiter)

	for i := 0; i < 2; i++ {
		if resp := doPost(r, "/generate", ""); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, resp.Code)
		}
	}

	resp := doPost(r, "/generate", "")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	now = now.Add(2 * time.Second)
	if resp := doPost(r, "/generate", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected recovery after refill, got %d", resp.Code)
	}
}

func TestRateLimitOnlyAppliesToMatchedGroup(t *testing.T) {
	limiter := NewRateLimiter(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })
	r := newRateLimitedRouter(limiter)

	for i := 0; i < 10; i++ {
		if resp := doPost(r, "/other", ""); resp.Code != http.StatusOK {
			t.Fatalf("request %d: ungrouped path must not be limited, got %d", i, resp.Code)
		}
	}
}

func TestRateLimitKeyedPerPrincipal(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth("dev"))
	r.Use(RateLimit(RateLimitConfig{
		Rules:    map[string]RateLimitRule{"GENERATION": {Rate: 1, Burst: 1}},
		GroupFor: func(c *gin.Context) string { return "GENERATION" },
		Limiter:  limiter,
	}))
	r.POST("/generate", func(c *gin.Context) { c.Status(http.StatusOK) })

	if resp := doPost(r, "/generate", "guest-a"); resp.Code != http.StatusOK {
		t.Fatalf("guest-a first request: expected status 200, got %d", resp.Code)
	}
	if resp := doPost(r, "/generate", "guest-a"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("guest-a second request: expected status 429, got %d", resp.Code)
	}
	if resp := doPost(r, "/generate", "guest-b"); resp.Code != http.StatusOK {
		t.Fatalf("guest-b must have its own bucket, got %d", resp.Code)
	}
}

func TestAllowZeroRuleIsUnlimited(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("k", RateLimitRule{}); !ok {
			t.Fatal("zero rule must never limit")
		}
	}
}
