package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/galleries/controller"
	"sekolahku_backend/internals/helpers/cache"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func GalleryAdminRoutes(admin fiber.Router, db *gorm.DB, storage helperOSS.Storage, c *cache.Cache) {
	gc := controller.NewGalleryController(db, storage, c)

	g := admin.Group("/galleries")
	g.Get("/", gc.List)
	g.Post("/", gc.Create)
	g.Get("/:id", gc.Get)
	g.Patch("/:id", gc.Patch)
	g.Put("/:id/cover", gc.UploadCover)
	g.Delete("/:id", gc.Delete)
	g.Post("/:id/items", gc.AddItems)

	it := admin.Group("/gallery-items")
	it.Patch("/:item_id", gc.PatchItem)
	it.Delete("/:item_id", gc.DeleteItem)
}

func GalleryPublicRoutes(public fiber.Router, db *gorm.DB, c *cache.Cache, ttl time.Duration) {
	gc := controller.NewGalleryController(db, nil, c)

	g := public.Group("/galleries")
	g.Get("/", gc.PublicList(ttl))
	g.Get("/:slug", gc.PublicGet(ttl))
}
