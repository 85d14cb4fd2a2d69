package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/courses/controller"
)

// /api/a/courses → guru & admin instansi
func CourseAdminRoutes(admin fiber.Router, db *gorm.DB) {
	cc := controller.NewCourseController(db)
	lc := controller.NewLessonController(db)

	g := admin.Group("/courses")
	g.Get("/", cc.List)
	g.Post("/", cc.Create)
	g.Get("/:id", cc.Get)
	g.Patch("/:id", cc.Patch)
	g.Delete("/:id", cc.Delete)
	g.Post("/:id/publish", cc.Publish)
	g.Post("/:id/unpublish", cc.Unpublish)
	g.Post("/:id/archive", cc.Archive)
	g.Get("/:id/enrollments", cc.ListEnrollments)

	g.Get("/:id/lessons", lc.List)
	g.Post("/:id/lessons", lc.Create)
	g.Patch("/:id/lessons/:lesson_id", lc.Patch)
	g.Delete("/:id/lessons/:lesson_id", lc.Delete)
}

// /api/u → siswa
func CourseUserRoutes(user fiber.Router, db *gorm.DB) {
	cc := controller.NewCourseController(db)

	g := user.Group("/courses")
	g.Get("/", cc.ListPublished)
	g.Get("/:id", cc.GetForStudent)
	g.Post("/:id/enroll", cc.Enroll)
	g.Delete("/:id/enroll", cc.Unenroll)
	g.Post("/:id/lessons/:lesson_id/complete", cc.CompleteLesson)

	user.Get("/my/enrollments", cc.MyEnrollments)
}
