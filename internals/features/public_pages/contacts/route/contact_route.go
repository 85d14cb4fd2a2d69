package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/contacts/controller"
	"sekolahku_backend/internals/helpers/mailer"
)

func ContactAdminRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer) {
	cc := controller.NewContactController(db, m)

	g := admin.Group("/contacts")
	g.Get("/", cc.List)
	g.Get("/:id", cc.Get)
	g.Patch("/:id/status", cc.UpdateStatus)
	g.Delete("/:id", cc.Delete)
}

// limiter dipasang dari luar (3 pesan / 10 menit / IP)
func ContactPublicRoutes(public fiber.Router, db *gorm.DB, m mailer.Mailer, limiter fiber.Handler) {
	cc := controller.NewContactController(db, m)
	public.Post("/contacts", limiter, cc.Submit)
}
