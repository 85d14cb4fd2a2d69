package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rollbar/rollbar-go"
)

// RecoveryMiddleware menangkap panic, melaporkan ke Rollbar, lalu 500
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			rollbar.Critical(fmt.Errorf("panic: %v", e), map[string]any{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": c.Locals("reqid"),
			})
		},
	})
}
