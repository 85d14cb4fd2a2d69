package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "sekolahku_backend/internals/features/users/auth/route"
)

func AuthRoutes(app *fiber.App, d Deps, authMw fiber.Handler) {
	authRoute.AuthRoutes(app, d.DB, authMw)
}
