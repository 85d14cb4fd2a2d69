package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/ppdb/controller"
	"sekolahku_backend/internals/features/public_pages/ppdb/service"
	"sekolahku_backend/internals/helpers/mailer"
)

func PPDBAdminRoutes(admin fiber.Router, db *gorm.DB, m mailer.Mailer, gw service.Gateway) {
	pc := controller.NewPPDBController(db, m, gw)

	g := admin.Group("/ppdb")
	g.Get("/", pc.List)
	g.Get("/summary", pc.Summary)
	g.Get("/:id", pc.Get)
	g.Patch("/:id/status", pc.Transition)
	g.Patch("/:id/payment", pc.ManualPayment)
}

func PPDBPublicRoutes(public fiber.Router, db *gorm.DB, m mailer.Mailer, gw service.Gateway, limiter fiber.Handler) {
	pc := controller.NewPPDBController(db, m, gw)

	g := public.Group("/ppdb")
	g.Post("/", limiter, pc.Register)
	g.Get("/status", pc.Status)
	g.Post("/payment", limiter, pc.CreatePayment)
}

// Webhook tanpa :instansi_slug; daftarkan sebelum grup /api/public/:instansi_slug.
func PPDBWebhookRoutes(api fiber.Router, db *gorm.DB, gw service.Gateway) {
	pc := controller.NewPPDBController(db, nil, gw)
	api.Post("/public/ppdb/payments/notify", pc.Notify)
}
