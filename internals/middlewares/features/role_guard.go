package middleware

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// RequireRoles menolak request kalau role token tidak ada di daftar.
func RequireRoles(feature string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.HasRole(c, roles...) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorTeacher(feature))
	}
}

// UseInstansiScope: wajib ada instansi_id di token (kecuali owner).
func UseInstansiScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.IsOwner(c) {
			return c.Next()
		}
		if _, err := helperAuth.GetInstansiID(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// IsInstansiStaff: admin/teacher instansi (owner juga boleh).
func IsInstansiStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := helperAuth.EnsureStaff(c, "admin panel"); err != nil {
			return err
		}
		return c.Next()
	}
}

func IsOwnerGlobal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsOwner(c) {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorOwner("owner"))
		}
		return c.Next()
	}
}
