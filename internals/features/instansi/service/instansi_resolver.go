package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/instansi/model"
	helper "sekolahku_backend/internals/helpers"
)

const LocPublicInstansi = "public_instansi"

func FindActiveBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.InstansiModel, error) {
	var m model.InstansiModel
	err := db.WithContext(ctx).
		Where("LOWER(instansi_slug) = ? AND instansi_is_active = TRUE", strings.ToLower(strings.TrimSpace(slug))).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ResolvePublicInstansi: :instansi_slug → Locals(public_instansi).
func ResolvePublicInstansi(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, err := FindActiveBySlug(c.UserContext(), db, c.Params("instansi_slug"))
		if err != nil {
			return helper.DBError(err, "Instansi tidak ditemukan")
		}
		c.Locals(LocPublicInstansi, m)
		return c.Next()
	}
}

// PublicInstansi: instansi yang sudah di-resolve dari slug.
func PublicInstansi(c *fiber.Ctx) (*model.InstansiModel, error) {
	if m, ok := c.Locals(LocPublicInstansi).(*model.InstansiModel); ok && m != nil {
		return m, nil
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "Instansi tidak ditemukan")
}
