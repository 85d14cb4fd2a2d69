package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/quizzes/controller"
)

func QuizAdminRoutes(admin fiber.Router, db *gorm.DB) {
	qc := controller.NewQuizController(db)

	g := admin.Group("/quizzes")
	g.Get("/", qc.List)
	g.Post("/", qc.Create)
	g.Get("/:id", qc.Get)
	g.Patch("/:id", qc.Patch)
	g.Delete("/:id", qc.Delete)
	g.Post("/:id/questions", qc.AddQuestion)
	g.Put("/:id/questions/:question_id", qc.UpdateQuestion)
	g.Delete("/:id/questions/:question_id", qc.DeleteQuestion)
	g.Get("/:id/attempts", qc.ListAttempts)

	admin.Post("/quiz-attempts/:attempt_id/grade-essay", qc.GradeEssay)
}

func QuizUserRoutes(user fiber.Router, db *gorm.DB) {
	ac := controller.NewAttemptController(db)

	g := user.Group("/quizzes")
	g.Get("/", ac.ListForStudent)
	g.Get("/:id", ac.GetForStudent)
	g.Post("/:id/attempts", ac.Start)

	a := user.Group("/quiz-attempts")
	a.Get("/:attempt_id", ac.Get)
	a.Patch("/:attempt_id/answers", ac.SaveAnswers)
	a.Post("/:attempt_id/submit", ac.Submit)
}
