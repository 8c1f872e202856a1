package routes

import (
	"time"

	"github.com/anjiri1684/aptitude_quiz/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const uploadBodyLimit = 10 * 1024 * 1024

type AppOptions struct {
	CORSOrigins string
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// NewApp builds the fiber app with the shared middleware and every route registered.
func NewApp(h *handlers.Handler, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "Aptitude Quiz",
		CaseSensitive: true,
		BodyLimit:     uploadBodyLimit,
		ReadTimeout:   15 * time.Second,
		// PDF rendering can take longer than a plain JSON response.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: handlers.ErrorHandler,
	})

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Aptitude Quiz API",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	PublicRoutes(app, h)
	ParticipantRoutes(app, h)
	AdminRoutes(app, h)
	MonitorRoutes(app, h)
	return app
}
