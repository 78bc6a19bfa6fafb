package api

import (
	"github.com/bilgisen/feedharvest/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RouteOptions configures SetupRoutes.
type RouteOptions struct {
	AdminAPIKey string
	// ImageDir, when set, is served under /images.
	ImageDir string
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, opts RouteOptions) {
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	if opts.ImageDir != "" {
		app.Static("/images", opts.ImageDir)
	}

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/content", middleware.ValidateQuery[URLQuery](), handlers.FetchContent)

	feeds := api.Group("/feeds")
	{
		feeds.Get("/exists", middleware.ValidateQuery[URLQuery](), handlers.FeedExists)
		feeds.Post("/parse",
			middleware.AdminOnly(opts.AdminAPIKey),
			middleware.ValidateBody[ParseRequest](),
			handlers.ParseFeeds,
		)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}

// NewApp returns a fiber app with the service's error handler.
func NewApp(cfg fiber.Config) *fiber.App {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = middleware.ErrorHandler
	}
	return fiber.New(cfg)
}
