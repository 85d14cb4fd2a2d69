package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/middlewares/logger"
)

// RequestID + timeout guard (selaras dengan statement_timeout di DB)
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if configs.GetEnvBool("LOG_REQUESTS", false) {
			log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		}
		return err
	}
}

// AppConfig: X-Forwarded-For hanya dipercaya dari TRUSTED_PROXIES
// (mis. CIDR Cloudflare / load balancer). Default loopback saja.
func AppConfig() fiber.Config {
	return fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            ErrorHandler,
		BodyLimit:               configs.GetEnvInt("UPLOAD_MAX_FILE_MB", 50)<<20 + 1<<20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          configs.GetEnvList("TRUSTED_PROXIES", "127.0.0.1", "::1"),
	}
}

func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(configs.GetEnvDuration("HTTP_TIMEOUT", 5*time.Second)))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(MetricsMiddleware())
	app.Use(GlobalRateLimiter())
}
