package middlewares

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/rollbar/rollbar-go"

	helper "sekolahku_backend/internals/helpers"
)

// ErrorHandler global: semua error dari handler jadi ErrorResponse JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Terjadi kesalahan pada server"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERR] id=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
		rollbar.Error(err, map[string]any{
			"path":       c.Path(),
			"request_id": c.Locals("reqid"),
		})
	}
	return helper.JsonError(c, code, msg)
}
