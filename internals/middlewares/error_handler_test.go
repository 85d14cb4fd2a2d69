package middlewares

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/locked", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusLocked, "Thread dikunci")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("koneksi putus")
	})

	tests := []struct {
		path string
		code int
		msg  string
		ec   string
	}{
		{"/locked", fiber.StatusLocked, "Thread dikunci", "LOCKED"},
		{"/boom", fiber.StatusInternalServerError, "Terjadi kesalahan pada server", "INTERNAL_ERROR"},
		{"/nope", fiber.StatusNotFound, "Cannot GET /nope", "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.msg, body["message"])
			assert.Equal(t, tt.ec, body["error_code"])
		})
	}
}
