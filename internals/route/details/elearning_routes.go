package details

import (
	"github.com/gofiber/fiber/v2"

	assignmentRoute "sekolahku_backend/internals/features/elearning/assignments/route"
	courseRoute "sekolahku_backend/internals/features/elearning/courses/route"
	forumRoute "sekolahku_backend/internals/features/elearning/forums/route"
	gradebookRoute "sekolahku_backend/internals/features/elearning/gradebook/route"
	quizRoute "sekolahku_backend/internals/features/elearning/quizzes/route"
	libraryRoute "sekolahku_backend/internals/features/library/route"
)

/* ===================== USER (PRIVATE) ===================== */
// Siswa (dan guru) yang login: enroll, kerjakan kuis/tugas, forum, baca buku.
func ElearningUserRoutes(r fiber.Router, d Deps) {
	courseRoute.CourseUserRoutes(r, d.DB)
	quizRoute.QuizUserRoutes(r, d.DB)
	assignmentRoute.AssignmentUserRoutes(r, d.DB, d.Storage)
	forumRoute.ForumUserRoutes(r, d.DB)
	gradebookRoute.GradebookUserRoutes(r, d.DB)
	libraryRoute.LibraryUserRoutes(r, d.DB, d.Storage)
}

/* ===================== ADMIN ===================== */
// Guru/admin instansi
func ElearningAdminRoutes(r fiber.Router, d Deps) {
	courseRoute.CourseAdminRoutes(r, d.DB)
	quizRoute.QuizAdminRoutes(r, d.DB)
	assignmentRoute.AssignmentAdminRoutes(r, d.DB, d.Storage)
	forumRoute.ForumAdminRoutes(r, d.DB)
	gradebookRoute.GradebookAdminRoutes(r, d.DB)
	libraryRoute.LibraryAdminRoutes(r, d.DB, d.Storage)
}
