package details

import (
	"github.com/gofiber/fiber/v2"

	instansiRoute "sekolahku_backend/internals/features/instansi/route"
	userRoute "sekolahku_backend/internals/features/users/user/route"
)

/* ===================== PUBLIC ===================== */
func InstansiPublicRoutes(r fiber.Router, d Deps) {
	instansiRoute.InstansiPublicRoutes(r, d.DB)
}

/* ===================== ADMIN ===================== */
func InstansiAdminRoutes(r fiber.Router, d Deps) {
	instansiRoute.InstansiAdminRoutes(r, d.DB, d.Storage)
	userRoute.UserAdminRoutes(r, d.DB)
}

/* ===================== OWNER ===================== */
func InstansiOwnerRoutes(r fiber.Router, d Deps) {
	instansiRoute.InstansiOwnerRoutes(r, d.DB, d.Storage)
	userRoute.UserOwnerRoutes(r, d.DB)
}
