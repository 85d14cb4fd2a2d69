package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/elearning/forums/model"
	"sekolahku_backend/internals/features/elearning/forums/service"
	helper "sekolahku_backend/internals/helpers"
)

func TestEditStatusCodes(t *testing.T) {
	author := uuid.New()
	tests := []struct {
		name   string
		forum  model.ForumModel
		thread model.ForumThreadModel
		actor  uuid.UUID
		staff  bool
		code   int
	}{
		{"author open", model.ForumModel{IsActive: true}, model.ForumThreadModel{}, author, false, fiber.StatusOK},
		{"author locked", model.ForumModel{IsActive: true}, model.ForumThreadModel{IsLocked: true}, author, false, fiber.StatusLocked},
		{"author inactive forum", model.ForumModel{}, model.ForumThreadModel{}, author, false, fiber.StatusLocked},
		{"staff locked", model.ForumModel{IsActive: true}, model.ForumThreadModel{IsLocked: true}, uuid.New(), true, fiber.StatusOK},
		{"stranger", model.ForumModel{IsActive: true}, model.ForumThreadModel{}, uuid.New(), false, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Patch("/forum-posts/x", func(c *fiber.Ctx) error {
				if err := service.CanEdit(&tt.forum, &tt.thread, author, tt.actor, tt.staff); err != nil {
					return helper.JsonErrorFrom(c, mapErr(err))
				}
				return helper.JsonOK(c, "ok", nil)
			})
			resp, err := app.Test(httptest.NewRequest("PATCH", "/forum-posts/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}
