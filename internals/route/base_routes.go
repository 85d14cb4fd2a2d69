package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	"sekolahku_backend/internals/middlewares"
)

func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Sekolahku API 🚀")
	})

	app.Get("/metrics", middlewares.MetricsHandler())

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}
		redisStatus := "Disabled"
		if database.Redis != nil {
			redisStatus = "Connected"
			if err := database.Redis.Ping(c.UserContext()).Err(); err != nil {
				redisStatus = "Redis connection error"
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"redis":          redisStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.GetEnv("RAILWAY_ENVIRONMENT"),
		})
	})
}
