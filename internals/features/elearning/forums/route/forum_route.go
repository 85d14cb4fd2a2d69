package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/forums/controller"
)

func ForumAdminRoutes(admin fiber.Router, db *gorm.DB) {
	fc := controller.NewForumController(db)

	g := admin.Group("/forums")
	g.Get("/", fc.List)
	g.Post("/", fc.Create)
	g.Patch("/:id", fc.Patch)
	g.Delete("/:id", fc.Delete)
	admin.Patch("/forum-threads/:thread_id/moderate", fc.Moderate)
}

func ForumUserRoutes(user fiber.Router, db *gorm.DB) {
	fc := controller.NewForumController(db)

	g := user.Group("/forums")
	g.Get("/", fc.List)
	g.Get("/:id/threads", fc.ListThreads)
	g.Post("/:id/threads", fc.CreateThread)

	t := user.Group("/forum-threads")
	t.Get("/:thread_id", fc.GetThread)
	t.Patch("/:thread_id", fc.EditThread)
	t.Delete("/:thread_id", fc.DeleteThread)
	t.Post("/:thread_id/posts", fc.Reply)

	p := user.Group("/forum-posts")
	p.Patch("/:post_id", fc.EditPost)
	p.Delete("/:post_id", fc.DeletePost)
}
