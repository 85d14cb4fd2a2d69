package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/auth/controller"
	rateLimiter "sekolahku_backend/internals/middlewares"
)

// AuthRoutes: /api/auth. authMw = AuthJWT untuk endpoint yang butuh login.
func AuthRoutes(app *fiber.App, db *gorm.DB, authMw fiber.Handler) {
	ctrl := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh", ctrl.Refresh)

	auth.Post("/logout", authMw, ctrl.Logout)
	auth.Get("/me", authMw, ctrl.Me)
	auth.Post("/change-password", authMw, ctrl.ChangePassword)
}
