package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/orzutravel/api/internal/config"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/handler"
	"github.com/orzutravel/api/internal/middleware"
	"github.com/orzutravel/api/internal/repository"
	"github.com/orzutravel/api/internal/service"
	"github.com/orzutravel/api/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application.
// External clients are injected so tests can substitute fakes.
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	AuthClient  service.FirebaseAuthClient
	Uploader    domain.MediaUploader
	Notifier    domain.Notifier
	Archiver    domain.MediaArchiver // nil when no archive is configured
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	packageRepo := repository.NewMongoPackageRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)

	// Initialize services
	packageService := service.NewPackageService(packageRepo, cacheRepo, deps.Uploader, deps.Archiver)
	inquiryService := service.NewInquiryService(deps.Notifier)
	authService := service.NewAuthService(deps.AuthClient, deps.Config.JWT.Secret)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	packageHandler := handler.NewPackageHandler(packageService)
	mediaHandler := handler.NewMediaHandler(packageService, deps.Config.Server.MaxUploadSizeMB)
	publicHandler := handler.NewPublicHandler(packageService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Orzu Travel API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "orzutravel-api",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	// Auth endpoints (public)
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ===========================================
	// PUBLIC API - read paths and form submissions
	// ===========================================
	v1.Get("/packages", publicHandler.ListPackages)
	v1.Get("/packages/:id", publicHandler.GetPackage)

	inquiries := v1.Group("/inquiries")
	inquiries.Post("/booking", inquiryHandler.SubmitBooking)
	inquiries.Post("/contact", inquiryHandler.SubmitContact)

	// ===========================================
	// ADMIN API - /v1/admin/* (requires session token)
	// ===========================================
	admin := v1.Group("/admin")
	admin.Use(middleware.VerifyAdminToken(deps.Config.JWT.Secret))

	adminPackages := admin.Group("/packages")
	adminPackages.Get("/", packageHandler.ListPackages)
	adminPackages.Post("/", packageHandler.CreatePackage)
	adminPackages.Get("/:id", packageHandler.GetPackage)
	adminPackages.Patch("/:id", packageHandler.UpdatePackage)
	adminPackages.Delete("/:id", packageHandler.DeletePackage)

	admin.Post("/media", mediaHandler.UploadMedia)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
