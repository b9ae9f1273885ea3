package router

import (
	"context"
	"net/http"
	"time"

	"stockmaster_backend/internal/config"
	"stockmaster_backend/internal/database"
	"stockmaster_backend/internal/handlers"
	"stockmaster_backend/internal/middleware"
	"stockmaster_backend/internal/repositories"
	"stockmaster_backend/internal/services"
	"stockmaster_backend/internal/storage"
	"stockmaster_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth      services.AuthService
	Products  services.ProductService
	Stock     services.StockService
	Category  services.CategoryService
	Audit     services.AuditService
	Dashboard services.DashboardService
	Settings  services.SettingsService
}

// Options configures the engine built by New.
type Options struct {
	Tokens         middleware.TokenValidator
	Probe          handlers.HealthProber
	AllowedOrigins []string
	UploadDir      string
	MaxUploadBytes int64
	Development    bool
}

// NewServices wires repositories and services over one database handle.
func NewServices(db *sqlx.DB, tokens *utils.TokenManager, pictures *storage.LocalStore, maxUploadBytes int64) Services {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	txnRepo := repositories.NewInventoryTransactionRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)
	transactor := repositories.NewTransactor(db)

	// Initialize Services
	audit := services.NewAuditService(db, txnRepo, activityRepo)
	return Services{
		Auth:      services.NewAuthService(authRepo, tokens, pictures, maxUploadBytes, audit),
		Products:  services.NewProductService(transactor, db, productRepo, categoryRepo, audit),
		Stock:     services.NewStockService(transactor, productRepo, audit),
		Category:  services.NewCategoryService(categoryRepo, productRepo, audit),
		Audit:     audit,
		Dashboard: services.NewDashboardService(dashboardRepo, txnRepo, activityRepo, time.Now),
		Settings:  services.NewSettingsService(settingsRepo, audit),
	}
}

// ProbeFor returns a health prober over db.
func ProbeFor(db *sqlx.DB) handlers.HealthProber {
	return func(ctx context.Context) database.Status { return database.Probe(ctx, db) }
}

// CORSConfig builds the CORS policy from the configured origins.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID"}
	cfg.AllowCredentials = true
	return cfg
}

// New builds the engine with middleware and all application routes.
func New(svc Services, opts Options) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), utils.GinLogger(), middleware.Recovery(opts.Development))
	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(CORSConfig(opts.AllowedOrigins)))
	}
	Setup(engine, svc, opts)
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svc Services, opts Options) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, opts.MaxUploadBytes)
	productHandler := handlers.NewProductHandler(svc.Products, svc.Stock, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Category)
	auditHandler := handlers.NewAuditHandler(svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings)
	healthHandler := handlers.NewHealthHandler(opts.Probe)

	if opts.UploadDir != "" {
		engine.Static("/uploads", opts.UploadDir)
	}

	api := engine.Group("/api")
	api.GET("/health", healthHandler.GetHealth)
	SetupAuthRoutes(api, authHandler)

	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(opts.Tokens))
	{
		SetupProfileRoutes(authenticated, authHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupCategoryRoutes(authenticated, categoryHandler)
		SetupAuditRoutes(authenticated, auditHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
		SetupSettingsRoutes(authenticated, settingsHandler)
	}

	engine.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Route not found", ""))
	})
}

// FromConfig maps the loaded configuration onto router options.
func FromConfig(cfg *config.Config, tokens middleware.TokenValidator, probe handlers.HealthProber) Options {
	return Options{
		Tokens:         tokens,
		Probe:          probe,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		UploadDir:      cfg.Upload.Dir,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Development:    cfg.IsDevelopment(),
	}
}
