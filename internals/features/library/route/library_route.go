package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/library/controller"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func LibraryAdminRoutes(admin fiber.Router, db *gorm.DB, storage helperOSS.Storage) {
	bc := controller.NewBookController(db, storage)

	g := admin.Group("/library/books")
	g.Get("/", bc.List)
	g.Post("/", bc.Create)
	g.Get("/:id", bc.Get)
	g.Patch("/:id", bc.Patch)
	g.Put("/:id/file", bc.ReplaceFile)
	g.Put("/:id/cover", bc.ReplaceCover)
	g.Delete("/:id", bc.Delete)
}

func LibraryUserRoutes(user fiber.Router, db *gorm.DB, storage helperOSS.Storage) {
	bc := controller.NewBookController(db, storage)

	lib := user.Group("/library")
	lib.Get("/my/reading", bc.MyReading)

	b := lib.Group("/books")
	b.Get("/", bc.ListPublished)
	b.Get("/:id", bc.GetForReader)
	b.Get("/:id/progress", bc.MyProgress)
	b.Post("/:id/progress", bc.SyncProgress)
	b.Get("/:id/bookmarks", bc.ListBookmarks)
	b.Post("/:id/bookmarks", bc.AddBookmark)

	bm := lib.Group("/bookmarks")
	bm.Patch("/:bookmark_id", bc.UpdateBookmark)
	bm.Delete("/:bookmark_id", bc.DeleteBookmark)
}
