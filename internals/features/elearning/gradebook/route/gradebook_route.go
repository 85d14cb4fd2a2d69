package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/gradebook/controller"
)

func GradebookAdminRoutes(admin fiber.Router, db *gorm.DB) {
	gc := controller.NewGradebookController(db)
	admin.Get("/courses/:id/grades", gc.ListCourse)
	admin.Get("/courses/:id/grades/summary", gc.CourseSummary)
}

func GradebookUserRoutes(user fiber.Router, db *gorm.DB) {
	gc := controller.NewGradebookController(db)
	user.Get("/my/grades", gc.Mine)
}
