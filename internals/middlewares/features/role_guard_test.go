package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

func withRole(role, instansi string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		if instansi != "" {
			c.Locals(helperAuth.LocInstansiID, instansi)
		}
		return c.Next()
	}
}

func TestGuards(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		instansi string
		guard    fiber.Handler
		want     int
	}{
		{"staff ok", "teacher", "", IsInstansiStaff(), fiber.StatusOK},
		{"student blocked", "student", "", IsInstansiStaff(), fiber.StatusForbidden},
		{"owner global", "owner", "", IsOwnerGlobal(), fiber.StatusOK},
		{"admin not owner", "admin", "", IsOwnerGlobal(), fiber.StatusForbidden},
		{"scope missing", "admin", "", UseInstansiScope(), fiber.StatusBadRequest},
		{"scope ok", "admin", "0b7a3f5e-8a43-4b8c-9d53-0f0c1f5a8b11", UseInstansiScope(), fiber.StatusOK},
		{"scope owner bypass", "owner", "", UseInstansiScope(), fiber.StatusOK},
		{"roles match", "student", "", RequireRoles("kuis", "student"), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", withRole(tt.role, tt.instansi), tt.guard, func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
