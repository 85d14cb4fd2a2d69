package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseController "sekolahku_backend/internals/features/elearning/courses/controller"
	"sekolahku_backend/internals/features/elearning/quizzes/dto"
	"sekolahku_backend/internals/features/elearning/quizzes/model"
	"sekolahku_backend/internals/features/elearning/quizzes/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type QuizController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Attempts  *service.QuizAttemptService
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db, Validator: validator.New(), Attempts: service.NewQuizAttemptService(db)}
}

func (qc *QuizController) loadQuiz(c *fiber.Ctx, param string) (*model.QuizModel, error) {
	id, err := helper.ParseUUIDParam(c, param)
	if err != nil {
		return nil, err
	}
	var q model.QuizModel
	if err := qc.DB.WithContext(c.UserContext()).First(&q, "quiz_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Kuis tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, q.InstansiID); err != nil {
		return nil, err
	}
	return &q, nil
}

// manageable: kuis + hak kelola kursusnya.
func (qc *QuizController) manageable(c *fiber.Ctx) (*model.QuizModel, error) {
	q, err := qc.loadQuiz(c, "id")
	if err != nil {
		return nil, err
	}
	course, err := courseController.LoadCourse(c, qc.DB, q.CourseID)
	if err != nil {
		return nil, err
	}
	if err := courseController.EnsureCanManage(c, course); err != nil {
		return nil, err
	}
	return q, nil
}

/* ===================== QUIZ (staff) ===================== */

// POST /api/a/quizzes
func (qc *QuizController) Create(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, qc.Validator, &req); !ok {
		return err
	}
	if !req.WindowValid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "quiz_available_until harus setelah quiz_available_from")
	}
	course, err := courseController.LoadCourse(c, qc.DB, req.CourseID)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := courseController.EnsureCanManage(c, course); err != nil {
		return helper.JsonErrorFrom(c, err)
	}

	row := req.ToModel(course.InstansiID)
	if err := qc.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	return helper.JsonCreated(c, "Kuis berhasil dibuat", row)
}

// GET /api/a/quizzes?course_id=&is_published=
func (qc *QuizController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := qc.DB.WithContext(c.UserContext()).Model(&model.QuizModel{}).Where("quiz_instansi_id = ?", instansiID)
	if cid := strings.TrimSpace(c.Query("course_id")); helper.IsUUID(cid) {
		q = q.Where("quiz_course_id = ?", cid)
	}
	if b := helper.ParseBoolQuery(c.Query("is_published")); b != nil {
		q = q.Where("quiz_is_published = ?", *b)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.QuizModel
	order := p.SafeOrder(map[string]string{"created_at": "quiz_created_at", "title": "quiz_title"}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/quizzes/:id
func (qc *QuizController) Get(c *fiber.Ctx) error {
	quiz, err := qc.loadQuiz(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var questions []model.QuizQuestionModel
	if err := qc.DB.WithContext(c.UserContext()).
		Where("quiz_question_quiz_id = ?", quiz.ID).
		Order("quiz_question_order ASC, quiz_question_created_at ASC").
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"quiz": quiz, "questions": questions})
}

// PATCH /api/a/quizzes/:id
func (qc *QuizController) Patch(c *fiber.Ctx) error {
	quiz, err := qc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, qc.Validator, &req); !ok {
		return err
	}
	if !req.WindowValid(*quiz) {
		return helper.JsonError(c, fiber.StatusBadRequest, "quiz_available_until harus setelah quiz_available_from")
	}
	updates, policyChanged := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", quiz)
	}
	ctx := c.UserContext()
	if err := qc.DB.WithContext(ctx).Model(quiz).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kuis")
	}
	if policyChanged {
		if err := qc.Attempts.ResyncQuiz(ctx, quiz); err != nil {
			log.Printf("[QuizController] resync gradebook kuis %s gagal: %v", quiz.ID, err)
		}
	}
	return helper.JsonUpdated(c, "Kuis diperbarui", quiz)
}

// DELETE /api/a/quizzes/:id
func (qc *QuizController) Delete(c *fiber.Ctx) error {
	quiz, err := qc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := qc.DB.WithContext(c.UserContext()).Delete(quiz).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kuis")
	}
	return helper.JsonDeleted(c, "Kuis dihapus", fiber.Map{"quiz_id": quiz.ID})
}

/* ===================== QUESTIONS (staff) ===================== */

// parseQuestion: req == nil berarti respons error sudah ditulis.
func (qc *QuizController) parseQuestion(c *fiber.Ctx) (*dto.QuestionRequest, error) {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, qc.Validator, &req); !ok {
		return nil, err
	}
	if msg := req.Check(); msg != "" {
		return nil, helper.JsonValidationError(c, map[string][]string{"quiz_question": {msg}})
	}
	return &req, nil
}

// POST /api/a/quizzes/:id/questions
func (qc *QuizController) AddQuestion(c *fiber.Ctx) error {
	quiz, err := qc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	req, err := qc.parseQuestion(c)
	if req == nil {
		return err
	}

	ctx := c.UserContext()
	var maxOrder *int
	if err := qc.DB.WithContext(ctx).Model(&model.QuizQuestionModel{}).
		Where("quiz_question_quiz_id = ?", quiz.ID).
		Select("MAX(quiz_question_order)").Scan(&maxOrder).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca urutan soal")
	}
	next := 1
	if maxOrder != nil {
		next = *maxOrder + 1
	}
	row := req.ToModel(*quiz, next)
	if err := qc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	return helper.JsonCreated(c, "Soal ditambahkan", row)
}

// PUT /api/a/quizzes/:id/questions/:question_id
func (qc *QuizController) UpdateQuestion(c *fiber.Ctx) error {
	quiz, err := qc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := qc.question(c, quiz.ID)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	req, err := qc.parseQuestion(c)
	if req == nil {
		return err
	}
	req.ApplyTo(row)
	if err := qc.DB.WithContext(c.UserContext()).Save(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui soal")
	}
	return helper.JsonUpdated(c, "Soal diperbarui", row)
}

// DELETE /api/a/quizzes/:id/questions/:question_id
func (qc *QuizController) DeleteQuestion(c *fiber.Ctx) error {
	quiz, err := qc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := qc.question(c, quiz.ID)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := qc.DB.WithContext(c.UserContext()).Delete(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus soal")
	}
	return helper.JsonDeleted(c, "Soal dihapus", fiber.Map{"quiz_question_id": row.ID})
}

func (qc *QuizController) question(c *fiber.Ctx, quizID uuid.UUID) (*model.QuizQuestionModel, error) {
	qid, err := helper.ParseUUIDParam(c, "question_id")
	if err != nil {
		return nil, err
	}
	var row model.QuizQuestionModel
	if err := qc.DB.WithContext(c.UserContext()).
		First(&row, "quiz_question_id = ? AND quiz_question_quiz_id = ?", qid, quizID).Error; err != nil {
		return nil, helper.DBError(err, "Soal tidak ditemukan")
	}
	return &row, nil
}

/* ===================== ATTEMPTS (staff) ===================== */

// GET /api/a/quizzes/:id/attempts?status=&student_id=
func (qc *QuizController) ListAttempts(c *fiber.Ctx) error {
	quiz, err := qc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "started_at", "desc", helper.AdminOpts)
	q := qc.DB.WithContext(c.UserContext()).Model(&model.QuizAttemptModel{}).Where("quiz_attempt_quiz_id = ?", quiz.ID)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("quiz_attempt_status = ?", st)
	}
	if sid := strings.TrimSpace(c.Query("student_id")); helper.IsUUID(sid) {
		q = q.Where("quiz_attempt_student_id = ?", sid)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.QuizAttemptModel
	order := p.SafeOrder(map[string]string{
		"started_at": "quiz_attempt_started_at",
		"score":      "quiz_attempt_score",
	}, "started_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// POST /api/a/quiz-attempts/:attempt_id/grade-essay
func (qc *QuizController) GradeEssay(c *fiber.Ctx) error {
	attemptID, err := helper.ParseUUIDParam(c, "attempt_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var a model.QuizAttemptModel
	if err := qc.DB.WithContext(c.UserContext()).First(&a, "quiz_attempt_id = ?", attemptID).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, "Percobaan tidak ditemukan"))
	}
	if err := helperAuth.EnsureSameInstansi(c, a.InstansiID); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var quiz model.QuizModel
	if err := qc.DB.WithContext(c.UserContext()).Unscoped().First(&quiz, "quiz_id = ?", a.QuizID).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, "Kuis tidak ditemukan"))
	}
	course, err := courseController.LoadCourse(c, qc.DB, quiz.CourseID)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := courseController.EnsureCanManage(c, course); err != nil {
		return helper.JsonErrorFrom(c, err)
	}

	var req dto.GradeEssayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, qc.Validator, &req); !ok {
		return err
	}
	out, err := qc.Attempts.GradeEssay(c.UserContext(), attemptID, req.QuestionID, *req.Points, req.Feedback)
	if err != nil {
		return helper.JsonErrorFrom(c, MapAttemptErr(err))
	}
	return helper.JsonUpdated(c, "Essay dinilai", out)
}

// MapAttemptErr: sentinel service → status HTTP.
func MapAttemptErr(err error) error {
	switch err {
	case service.ErrQuizNotAvailable, service.ErrAttemptClosed, service.ErrTimeUp,
		service.ErrAttemptNotGradable, service.ErrNotEssay:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case service.ErrMaxAttemptsReached:
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case service.ErrNotEnrolled:
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case service.ErrAttemptNotFound, service.ErrQuestionNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return helper.DBError(err, "Data tidak ditemukan")
}
