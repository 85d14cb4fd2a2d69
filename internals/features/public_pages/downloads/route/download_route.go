package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/downloads/controller"
	"sekolahku_backend/internals/helpers/cache"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func DownloadAdminRoutes(admin fiber.Router, db *gorm.DB, storage helperOSS.Storage, c *cache.Cache) {
	dc := controller.NewDownloadController(db, storage, c, 0)

	g := admin.Group("/downloads")
	g.Get("/", dc.List)
	g.Post("/", dc.Create)
	g.Get("/:id", dc.Get)
	g.Patch("/:id", dc.Patch)
	g.Put("/:id/file", dc.ReplaceFile)
	g.Delete("/:id", dc.Delete)
}

func DownloadPublicRoutes(public fiber.Router, db *gorm.DB, c *cache.Cache, ttl time.Duration) {
	dc := controller.NewDownloadController(db, nil, c, ttl)

	g := public.Group("/downloads")
	g.Get("/", dc.PublicList)
	g.Get("/:slug", dc.PublicGet)
	g.Get("/:slug/file", dc.File)
}
