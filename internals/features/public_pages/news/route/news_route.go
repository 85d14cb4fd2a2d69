package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/news/controller"
	"sekolahku_backend/internals/helpers/cache"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func NewsAdminRoutes(admin fiber.Router, db *gorm.DB, storage helperOSS.Storage, c *cache.Cache) {
	nc := controller.NewNewsController(db, storage, c, 0)

	g := admin.Group("/news")
	g.Get("/", nc.List)
	g.Post("/", nc.Create)
	g.Get("/:id", nc.Get)
	g.Patch("/:id", nc.Patch)
	g.Put("/:id/cover", nc.UploadCover)
	g.Delete("/:id", nc.Delete)
}

func NewsPublicRoutes(public fiber.Router, db *gorm.DB, c *cache.Cache, ttl time.Duration) {
	nc := controller.NewNewsController(db, nil, c, ttl)

	g := public.Group("/news")
	g.Get("/", nc.PublicList)
	g.Get("/:slug", nc.PublicGet)
}
