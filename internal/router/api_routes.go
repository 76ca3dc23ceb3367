package router

import (
	"fleet-admin/internal/config"
	"fleet-admin/internal/handler"
	"fleet-admin/internal/middleware"
	"fleet-admin/internal/repository"
	"fleet-admin/internal/service"
	"fleet-admin/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redis *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	organRepo := repository.NewOrganRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	runRepo := repository.NewImportRunRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	importService := service.NewImportService(organRepo, referenceRepo, runRepo, utils.GetLogger(), cfg.ApplyWorkers)
	templateService := service.NewTemplateService(organRepo, referenceRepo, cfg.TemplateSample)

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redis != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	organHandler := handler.NewOrganHandler(organRepo, importService, templateService, asynqClient, cfg)
	referenceHandler := handler.NewReferenceHandler(referenceRepo)
	runHandler := handler.NewImportRunHandler(runRepo)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	// Organ routes
	organs := protected.Group("/organes")
	organs.Get("/", organHandler.GetOrgans)
	organs.Get("/export", organHandler.ExportOrgans)
	organs.Get("/template", organHandler.DownloadTemplate)
	organs.Post("/import", organHandler.ImportOrgans)
	organs.Post("/import/async", organHandler.ImportOrgansAsync)
	organs.Get("/error-report/:filename", organHandler.DownloadErrorReport)
	organs.Get("/:id", organHandler.GetOrgan)
	organs.Post("/", organHandler.CreateOrgan)
	organs.Put("/:id", organHandler.UpdateOrgan)
	organs.Delete("/:id", middleware.AdminOnly(), organHandler.DeleteOrgan)

	// Reference tables
	references := protected.Group("/references")
	references.Get("/organ-types", referenceHandler.GetOrganTypes)
	references.Get("/sites", referenceHandler.GetSites)

	// Import run audit trail
	runs := protected.Group("/import-runs")
	runs.Get("/", runHandler.GetRuns)
	runs.Get("/:code", runHandler.GetRun)
}
