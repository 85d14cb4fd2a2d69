package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseService "sekolahku_backend/internals/features/elearning/courses/service"
	"sekolahku_backend/internals/features/elearning/quizzes/dto"
	"sekolahku_backend/internals/features/elearning/quizzes/model"
	"sekolahku_backend/internals/features/elearning/quizzes/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AttemptController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Attempts  *service.QuizAttemptService
	quizzes   *QuizController
}

func NewAttemptController(db *gorm.DB) *AttemptController {
	return &AttemptController{
		DB:        db,
		Validator: validator.New(),
		Attempts:  service.NewQuizAttemptService(db),
		quizzes:   NewQuizController(db),
	}
}

// GET /api/u/quizzes?course_id= → kuis published dari kursus yang diikuti
func (ac *AttemptController) ListForStudent(c *fiber.Ctx) error {
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	cid := strings.TrimSpace(c.Query("course_id"))
	if !helper.IsUUID(cid) {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id wajib diisi")
	}
	var rows []model.QuizModel
	if err := ac.DB.WithContext(c.UserContext()).
		Where("quiz_course_id = ? AND quiz_is_published = TRUE", cid).
		Where("EXISTS (SELECT 1 FROM course_enrollments e WHERE e.course_enrollment_course_id = quizzes.quiz_course_id AND e.course_enrollment_student_id = ? AND e.course_enrollment_status <> 'dropped')", me).
		Order("quiz_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kuis")
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/u/quizzes/:id → info kuis + riwayat attempt saya
func (ac *AttemptController) GetForStudent(c *fiber.Ctx) error {
	quiz, err := ac.quizzes.loadQuiz(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if !quiz.IsPublished {
		return helper.JsonError(c, fiber.StatusNotFound, "Kuis tidak ditemukan")
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	ctx := c.UserContext()
	enrolled, err := courseService.IsEnrolled(ctx, ac.DB, quiz.CourseID, me)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if !enrolled {
		return helper.JsonErrorFrom(c, MapAttemptErr(service.ErrNotEnrolled))
	}
	var attempts []model.QuizAttemptModel
	if err := ac.DB.WithContext(ctx).
		Where("quiz_attempt_quiz_id = ? AND quiz_attempt_student_id = ?", quiz.ID, me).
		Order("quiz_attempt_no ASC").Find(&attempts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat")
	}
	var questionCount int64
	_ = ac.DB.WithContext(ctx).Model(&model.QuizQuestionModel{}).
		Where("quiz_question_quiz_id = ?", quiz.ID).Count(&questionCount).Error

	remaining := -1
	if quiz.MaxAttempts > 0 {
		remaining = quiz.MaxAttempts - len(attempts)
		if remaining < 0 {
			remaining = 0
		}
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"quiz":               quiz,
		"question_count":     questionCount,
		"attempts":           attempts,
		"remaining_attempts": remaining,
	})
}

func (ac *AttemptController) attemptView(c *fiber.Ctx, a *model.QuizAttemptModel) (fiber.Map, error) {
	var quiz model.QuizModel
	if err := ac.DB.WithContext(c.UserContext()).Unscoped().First(&quiz, "quiz_id = ?", a.QuizID).Error; err != nil {
		return nil, helper.DBError(err, "Kuis tidak ditemukan")
	}
	var qs []model.QuizQuestionModel
	if err := ac.DB.WithContext(c.UserContext()).
		Where("quiz_question_quiz_id = ?", a.QuizID).
		Order("quiz_question_order ASC, quiz_question_created_at ASC").
		Find(&qs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	if quiz.ShuffleQuestions {
		qs = service.ShuffleFor(a.ID, qs)
	}

	reveal := a.Status == model.AttemptGraded
	view := *a
	if a.Status == model.AttemptInProgress {
		view.EncodeAnswers(dto.StripForStudent(a.DecodeAnswers()))
	}
	return fiber.Map{
		"attempt":   view,
		"questions": dto.ToStudentQuestions(qs, reveal),
	}, nil
}

// POST /api/u/quizzes/:id/attempts
func (ac *AttemptController) Start(c *fiber.Ctx) error {
	quiz, err := ac.quizzes.loadQuiz(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	a, created, err := ac.Attempts.StartAttempt(c.UserContext(), quiz, me)
	if err != nil {
		return helper.JsonErrorFrom(c, MapAttemptErr(err))
	}
	view, err := ac.attemptView(c, a)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Kuis dimulai", view)
	}
	return helper.JsonOK(c, "Melanjutkan percobaan yang berjalan", view)
}

// GET /api/u/quiz-attempts/:attempt_id
func (ac *AttemptController) Get(c *fiber.Ctx) error {
	attemptID, err := helper.ParseUUIDParam(c, "attempt_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var a model.QuizAttemptModel
	if err := ac.DB.WithContext(c.UserContext()).
		First(&a, "quiz_attempt_id = ? AND quiz_attempt_student_id = ?", attemptID, me).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, "Percobaan tidak ditemukan"))
	}
	view, err := ac.attemptView(c, &a)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", view)
}

// PATCH /api/u/quiz-attempts/:attempt_id/answers
func (ac *AttemptController) SaveAnswers(c *fiber.Ctx) error {
	attemptID, err := helper.ParseUUIDParam(c, "attempt_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.SaveAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}
	a, err := ac.Attempts.SaveAnswers(c.UserContext(), attemptID, me, req.ToAnswers())
	if err != nil {
		return helper.JsonErrorFrom(c, MapAttemptErr(err))
	}
	return helper.JsonUpdated(c, "Jawaban tersimpan", fiber.Map{
		"quiz_attempt_id":         a.ID,
		"quiz_attempt_answers":    dto.StripForStudent(a.DecodeAnswers()),
		"quiz_attempt_expires_at": a.ExpiresAt,
	})
}

// POST /api/u/quiz-attempts/:attempt_id/submit (body answers opsional)
func (ac *AttemptController) Submit(c *fiber.Ctx) error {
	attemptID, err := helper.ParseUUIDParam(c, "attempt_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.SaveAnswersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
		}
	}
	a, err := ac.Attempts.SubmitAttempt(c.UserContext(), attemptID, me, req.ToAnswers())
	if err != nil {
		return helper.JsonErrorFrom(c, MapAttemptErr(err))
	}
	view, err := ac.attemptView(c, a)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	msg := "Kuis dikumpulkan"
	if a.IsLate {
		msg = "Kuis dikumpulkan (melewati batas waktu)"
	}
	return helper.JsonOK(c, msg, view)
}
