// Package server assembles the Fiber application.
package server

import (
	"context"
	"time"

	"catalog/internal/handlers"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	ProductService   *services.ProductService
	Health           HealthChecker
	CORSAllowOrigins string
}

const healthTimeout = 2 * time.Second

// New builds the Fiber app with middleware and all routes mounted.
func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Product Catalog",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	origins := deps.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Product Catalog Microservice API"})
	})

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		storage := "up"
		status := fiber.StatusOK
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := deps.Health.Ping(ctx); err != nil {
				storage = "down"
				status = fiber.StatusServiceUnavailable
			}
		}
		health := "healthy"
		if status != fiber.StatusOK {
			health = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":  health,
			"storage": storage,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewProductHandler(deps.ProductService).RegisterRoutes(api)

	return app
}
