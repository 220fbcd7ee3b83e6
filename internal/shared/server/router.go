package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/account"
	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/artifacts"
	googleauth "jobtrack-backend/internal/auth"
	"jobtrack-backend/internal/coverletters"
	"jobtrack-backend/internal/dashboard"
	"jobtrack-backend/internal/generation"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/render"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/metrics"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/users"
)

const generationRateGroup = "GENERATION"

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config             config.Config
	ApplicationHandler *applications.Handler
	ResumeHandler      *resumes.Handler
	CoverLetterHandler *coverletters.Handler
	ProfileHandler     *profiles.Handler
	DashboardHandler   *dashboard.Handler
	GenerationHandler  *generation.Handler
	RenderHandler      *render.Handler
	ArtifactHandler    *artifacts.Handler
	UserHandler        *users.Handler
	AccountHandler     *account.Handler
	GoogleAuth         *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				generationRateGroup: {Rate: 0.2, Burst: 3},
			},
			GroupFor: generationGroupFor,
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.CoverLetterHandler != nil {
		deps.CoverLetterHandler.RegisterRoutes(api)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.RegisterRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api)
	}
	if deps.RenderHandler != nil {
		deps.RenderHandler.RegisterRoutes(api)
	}
	if deps.ArtifactHandler != nil {
		deps.ArtifactHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	return r
}

// generationGroupFor throttles only the model-backed endpoints.
func generationGroupFor(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	if path == "/api/v1/cover-letters/generate" || strings.HasPrefix(path, "/api/v1/resume-generation") {
		return generationRateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
