package router

import (
	"salesreport-web/internal/config"
	"salesreport-web/internal/handler"
	"salesreport-web/internal/middleware"
	"salesreport-web/internal/repository"
	"salesreport-web/internal/service"
	"salesreport-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	salesRepo := repository.NewSalesRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	targetRepo := repository.NewTargetRepository(db)
	importRepo := repository.NewImportRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	excelService := service.NewExcelService()
	importService := service.NewImportService(salesRepo, productRepo, customerRepo, targetRepo, utils.GetLogger())

	// Asynq client (only if Redis is available)
	var asynqClient *asynq.Client
	if redisClient != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	importHandler := handler.NewImportHandler(importService, excelService, importRepo, cfg)
	uploadHandler := handler.NewUploadHandler(importRepo, asynqClient, redisClient, cfg)
	salesHandler := handler.NewSalesHandler(salesRepo, excelService, cfg)
	dashboardHandler := handler.NewDashboardHandler(dashboardRepo)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/auth/me", authHandler.Me)

	// Import routes (synchronous)
	imports := protected.Group("/imports")
	imports.Post("/", middleware.RequirePermission(middleware.PermRunImports), importHandler.ImportFile)
	imports.Get("/", importHandler.GetImports)
	imports.Get("/template/:type", importHandler.DownloadTemplate)
	imports.Get("/:id", importHandler.GetImport)

	// Upload routes (asynchronous, large files)
	uploads := protected.Group("/uploads")
	uploads.Post("/", middleware.RequirePermission(middleware.PermRunImports), uploadHandler.UploadFile)
	uploads.Get("/progress/:session_code", uploadHandler.GetProgress)
	uploads.Get("/:id", uploadHandler.GetSessionDetail)

	// Sales ledger
	sales := protected.Group("/sales")
	sales.Get("/", salesHandler.GetSales)
	sales.Get("/export", salesHandler.ExportSales)

	// Dashboard aggregates
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/sales-by-month", dashboardHandler.GetSalesByMonth)
	dashboard.Get("/top-products", dashboardHandler.GetTopProducts)
	dashboard.Get("/top-customers", dashboardHandler.GetTopCustomers)
	dashboard.Get("/target-attainment", dashboardHandler.GetTargetAttainment)
}
