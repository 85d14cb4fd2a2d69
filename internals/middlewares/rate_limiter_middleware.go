package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "sekolahku_backend/internals/helpers"
)

func ipLimiter(max int, window time.Duration, msg string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Route().Path
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(120, time.Minute, "❌ Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, time.Minute, "❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}

// Form kontak publik: 3 pesan / 10 menit per IP
func ContactRateLimiter() fiber.Handler {
	return ipLimiter(3, 10*time.Minute, "❌ Terlalu banyak pesan terkirim. Silakan coba lagi dalam 10 menit.")
}

// Pendaftaran PPDB publik
func PPDBRateLimiter() fiber.Handler {
	return ipLimiter(5, 10*time.Minute, "❌ Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.")
}
