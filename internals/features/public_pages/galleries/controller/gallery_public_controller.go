package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	instansiService "sekolahku_backend/internals/features/instansi/service"
	"sekolahku_backend/internals/features/public_pages/galleries/model"
	helper "sekolahku_backend/internals/helpers"
)

type pagedGalleries struct {
	Data []model.GalleryModel `json:"data"`
	Meta helper.Meta          `json:"meta"`
}

// GET /api/public/:instansi_slug/galleries?tag=&page=
func (gc *GalleryController) PublicList(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inst, err := instansiService.PublicInstansi(c)
		if err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		p := helper.ParseFiber(c, "event_date", "desc", helper.PublicOpts)
		key := gc.Cache.Key("galleries", inst.ID.String(), "list", string(c.Request().URI().QueryString()))

		var out pagedGalleries
		err = gc.Cache.CacheOrExecute(c.UserContext(), key, &out, ttl, func() (any, error) {
			q := gc.DB.WithContext(c.UserContext()).Model(&model.GalleryModel{}).
				Where("gallery_instansi_id = ? AND gallery_is_published = TRUE", inst.ID)
			if tag := strings.ToLower(strings.TrimSpace(c.Query("tag"))); tag != "" {
				q = q.Where("? = ANY(gallery_tags)", tag)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				return nil, err
			}
			rows := []model.GalleryModel{}
			if err := q.Order("gallery_event_date DESC NULLS LAST, gallery_created_at DESC").
				Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
				return nil, err
			}
			return pagedGalleries{Data: rows, Meta: helper.BuildMeta(total, p)}, nil
		})
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil galeri")
		}
		return helper.JsonList(c, "ok", out.Data, out.Meta)
	}
}

// GET /api/public/:instansi_slug/galleries/:slug
func (gc *GalleryController) PublicGet(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inst, err := instansiService.PublicInstansi(c)
		if err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
		ctx := c.UserContext()
		key := gc.Cache.Key("galleries", inst.ID.String(), "slug", slug)

		var g model.GalleryModel
		err = gc.Cache.CacheOrExecute(ctx, key, &g, ttl, func() (any, error) {
			var row model.GalleryModel
			if err := gc.DB.WithContext(ctx).
				Where("gallery_instansi_id = ? AND LOWER(gallery_slug) = ? AND gallery_is_published = TRUE", inst.ID, slug).
				First(&row).Error; err != nil {
				return nil, err
			}
			if err := gc.DB.WithContext(ctx).Where("gallery_item_gallery_id = ?", row.ID).
				Order("gallery_item_order ASC, gallery_item_created_at ASC").
				Find(&row.Items).Error; err != nil {
				return nil, err
			}
			return row, nil
		})
		if err != nil {
			return helper.JsonErrorFrom(c, helper.DBError(err, "Galeri tidak ditemukan"))
		}
		return helper.JsonOK(c, "ok", g)
	}
}
