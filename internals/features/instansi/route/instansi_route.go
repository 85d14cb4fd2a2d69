package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/instansi/controller"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

// public sudah melewati ResolvePublicInstansi (/api/public/:instansi_slug)
func InstansiPublicRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewInstansiController(db, nil)
	public.Get("/", ctrl.GetPublic)
}

func InstansiAdminRoutes(admin fiber.Router, db *gorm.DB, storage helperOSS.Storage) {
	ctrl := controller.NewInstansiController(db, storage)
	admin.Get("/instansi", ctrl.GetMine)
	admin.Patch("/instansi", ctrl.PatchMine)
}

func InstansiOwnerRoutes(owner fiber.Router, db *gorm.DB, storage helperOSS.Storage) {
	ctrl := controller.NewInstansiController(db, storage)
	g := owner.Group("/instansi")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", ctrl.Patch)
	g.Delete("/:id", ctrl.Delete)
}
