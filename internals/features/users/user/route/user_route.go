package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/user/controller"
	featuresMiddleware "sekolahku_backend/internals/middlewares/features"
)

// /api/a/users → admin instansi (owner lewat /api/o/users)
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)
	g := admin.Group("/users", featuresMiddleware.RequireRoles("manajemen user", constants.RoleAdmin, constants.RoleOwner))
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", ctrl.Patch)
	g.Delete("/:id", ctrl.Delete)
}

func UserOwnerRoutes(owner fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)
	g := owner.Group("/users")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Patch("/:id", ctrl.Patch)
	g.Delete("/:id", ctrl.Delete)
}
