package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/assignments/controller"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func AssignmentAdminRoutes(admin fiber.Router, db *gorm.DB, storage helperOSS.Storage) {
	ac := controller.NewAssignmentController(db, storage)

	g := admin.Group("/assignments")
	g.Get("/", ac.List)
	g.Post("/", ac.Create)
	g.Get("/:id", ac.Get)
	g.Patch("/:id", ac.Patch)
	g.Put("/:id/attachment", ac.UploadAttachment)
	g.Delete("/:id", ac.Delete)
	g.Get("/:id/submissions", ac.ListSubmissions)
	g.Post("/:id/submissions/:submission_id/grade", ac.Grade)
	g.Post("/:id/submissions/:submission_id/return", ac.Return)
}

func AssignmentUserRoutes(user fiber.Router, db *gorm.DB, storage helperOSS.Storage) {
	ac := controller.NewAssignmentController(db, storage)

	g := user.Group("/assignments")
	g.Get("/", ac.ListForStudent)
	g.Get("/:id", ac.GetForStudent)
	g.Post("/:id/submit", ac.Submit)
}
