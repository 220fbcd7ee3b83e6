package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/account"
	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/artifacts"
	googleauth "jobtrack-backend/internal/auth"
	"jobtrack-backend/internal/coverletters"
	"jobtrack-backend/internal/dashboard"
	"jobtrack-backend/internal/extract"
	"jobtrack-backend/internal/generation"
	"jobtrack-backend/internal/llm"
	openai "jobtrack-backend/internal/llm/openai"
	"jobtrack-backend/internal/profiles"
	"jobtrack-backend/internal/render"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server"
	"jobtrack-backend/internal/shared/storage/db"
	"jobtrack-backend/internal/shared/storage/object"
	localstore "jobtrack-backend/internal/shared/storage/object/local"
	s3store "jobtrack-backend/internal/shared/storage/object/s3"
	"jobtrack-backend/internal/users"
)

// App holds shared dependencies after Build.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	AppRepo      applications.Repo
	ResumeRepo   resumes.Repo
	LetterRepo   coverletters.Repo
	ProfileRepo  profiles.Repo
	ArtifactRepo artifacts.Repo
	UserRepo     users.Repo

	AppService        *applications.Service
	ResumeService     *resumes.Service
	LetterService     *coverletters.Service
	ProfileService    *profiles.Service
	DashboardService  *dashboard.Service
	GenerationService *generation.Service
	ArtifactService   *artifacts.Service
	AccountService    *account.Service
	UserService       *users.Service

	GoogleAuth *googleauth.GoogleService
	LLM        llm.Client
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		ApplicationHandler: applications.NewHandler(app.AppService),
		ResumeHandler:      resumes.NewHandler(app.ResumeService),
		CoverLetterHandler: coverletters.NewHandler(app.LetterService),
		ProfileHandler:     profiles.NewHandler(app.ProfileService),
		DashboardHandler:   dashboard.NewHandler(app.DashboardService),
		GenerationHandler:  generation.NewHandler(app.GenerationService),
		RenderHandler:      render.NewHandler(app.ResumeService, app.ArtifactService, render.NewChromeRenderer(cfg.ChromePath)),
		ArtifactHandler:    artifacts.NewHandler(app.ArtifactService),
		UserHandler:        users.NewHandler(app.UserService),
		AccountHandler:     account.NewHandler(app.AccountService),
		GoogleAuth:         app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.AppRepo = &applications.PGRepo{DB: app.DB}
		app.ResumeRepo = &resumes.PGRepo{DB: app.DB}
		app.LetterRepo = &coverletters.PGRepo{DB: app.DB}
		app.ProfileRepo = &profiles.PGRepo{DB: app.DB}
		app.ArtifactRepo = &artifacts.PGRepo{DB: app.DB}
		app.UserRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.AppRepo = applications.NewMemoryRepo()
		app.ResumeRepo = resumes.NewMemoryRepo()
		app.LetterRepo = coverletters.NewMemoryRepo()
		app.ProfileRepo = profiles.NewMemoryRepo()
		app.ArtifactRepo = artifacts.NewMemoryRepo()
		app.UserRepo = users.NewMemoryRepo()
	}

	app.AppService = &applications.Service{Repo: app.AppRepo}
	app.ResumeService = &resumes.Service{
		Repo:      app.ResumeRepo,
		Apps:      app.AppService,
		Extractor: extract.NewPDFExtractor(),
	}
	app.LetterService = coverletters.NewService(app.LetterRepo, app.AppService)
	app.ProfileService = &profiles.Service{Repo: app.ProfileRepo}
	app.DashboardService = &dashboard.Service{
		Apps:    app.AppRepo,
		Resumes: app.ResumeRepo,
		Letters: app.LetterRepo,
	}
	app.ArtifactService = &artifacts.Service{Repo: app.ArtifactRepo, Store: app.Store}

	app.LLM = llm.NotConfiguredClient{}
	if app.Config.LLMProvider == "openai" {
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel)
		if err == nil {
			app.LLM = client
		} else {
			log.Printf("bootstrap: openai client unavailable: %v", err)
		}
	}
	app.GenerationService = &generation.Service{
		Profiles: app.ProfileService,
		Apps:     app.AppService,
		LLM:      app.LLM,
	}

	app.AccountService = &account.Service{
		DB:           app.DB,
		AppRepo:      app.AppRepo,
		ResumeRepo:   app.ResumeRepo,
		LetterRepo:   app.LetterRepo,
		ArtifactRepo: app.ArtifactRepo,
		ProfileRepo:  app.ProfileRepo,
	}

	app.UserService = users.NewService(app.UserRepo)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UserService,
	)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
