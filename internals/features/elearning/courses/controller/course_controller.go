package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/courses/dto"
	"sekolahku_backend/internals/features/elearning/courses/model"
	"sekolahku_backend/internals/features/elearning/courses/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type CourseController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db, Validator: validator.New()}
}

// LoadCourse: kursus milik tenant pada token (owner bebas).
func LoadCourse(c *fiber.Ctx, db *gorm.DB, id uuid.UUID) (*model.CourseModel, error) {
	var row model.CourseModel
	if err := db.WithContext(c.UserContext()).First(&row, "course_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Kursus tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, row.InstansiID); err != nil {
		return nil, err
	}
	return &row, nil
}

// EnsureCanManage: admin/owner semua kursus instansi, guru hanya kursusnya sendiri.
func EnsureCanManage(c *fiber.Ctx, course *model.CourseModel) error {
	if helperAuth.IsOwner(c) || helperAuth.IsAdmin(c) {
		return nil
	}
	if !helperAuth.IsTeacher(c) {
		return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengelola kursus ini")
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	if course.TeacherID != me {
		return fiber.NewError(fiber.StatusForbidden, "Kursus ini milik guru lain")
	}
	return nil
}

func (cc *CourseController) manageable(c *fiber.Ctx) (*model.CourseModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	course, err := LoadCourse(c, cc.DB, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureCanManage(c, course); err != nil {
		return nil, err
	}
	return course, nil
}

/* ===================== STAFF ===================== */

// POST /api/a/courses
func (cc *CourseController) Create(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}

	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, cc.Validator, &req); !ok {
		return err
	}

	teacherID := me
	if req.TeacherID != nil && !helperAuth.IsTeacher(c) {
		teacherID = *req.TeacherID
	}

	ctx := c.UserContext()
	slug, err := helper.UniqueSlugFrom(ctx, cc.DB, "courses", "course_slug", req.Slug, req.Title,
		func(q *gorm.DB) *gorm.DB {
			return q.Where("course_instansi_id = ? AND course_deleted_at IS NULL", instansiID)
		})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}

	row := req.ToModel(instansiID, teacherID, slug)
	if err := cc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	return helper.JsonCreated(c, "Kursus berhasil dibuat", row)
}

// GET /api/a/courses?q=&status=&teacher_id=&mine=true
func (cc *CourseController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := cc.DB.WithContext(c.UserContext()).Model(&model.CourseModel{}).
		Where("course_instansi_id = ?", instansiID)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("course_title ILIKE ?", "%"+s+"%")
	}
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("course_status = ?", st)
	}
	if tid := strings.TrimSpace(c.Query("teacher_id")); helper.IsUUID(tid) {
		q = q.Where("course_teacher_id = ?", tid)
	}
	if b := helper.ParseBoolQuery(c.Query("mine")); b != nil && *b {
		if me, err := helperAuth.GetUserID(c); err == nil {
			q = q.Where("course_teacher_id = ?", me)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.CourseModel
	order := p.SafeOrder(map[string]string{
		"created_at":  "course_created_at",
		"title":       "course_title",
		"enrollments": "course_enrollment_count",
	}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/courses/:id
func (cc *CourseController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	course, err := LoadCourse(c, cc.DB, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var lessons []model.CourseLessonModel
	if err := cc.DB.WithContext(c.UserContext()).
		Where("course_lesson_course_id = ?", course.ID).
		Order("course_lesson_order ASC, course_lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materi")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"course": course, "lessons": lessons})
}

// PATCH /api/a/courses/:id
func (cc *CourseController) Patch(c *fiber.Ctx) error {
	course, err := cc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, cc.Validator, &req); !ok {
		return err
	}
	if req.TeacherID != nil && helperAuth.IsTeacher(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Guru tidak boleh memindahkan kursus")
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", course)
	}
	if err := cc.DB.WithContext(c.UserContext()).Model(course).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kursus")
	}
	return helper.JsonUpdated(c, "Kursus diperbarui", course)
}

// POST /api/a/courses/:id/publish
func (cc *CourseController) Publish(c *fiber.Ctx) error {
	return cc.setStatus(c, model.CourseStatusPublished)
}

// POST /api/a/courses/:id/archive
func (cc *CourseController) Archive(c *fiber.Ctx) error {
	return cc.setStatus(c, model.CourseStatusArchived)
}

// POST /api/a/courses/:id/unpublish
func (cc *CourseController) Unpublish(c *fiber.Ctx) error {
	return cc.setStatus(c, model.CourseStatusDraft)
}

func (cc *CourseController) setStatus(c *fiber.Ctx, status string) error {
	course, err := cc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if course.Status == status {
		return helper.JsonOK(c, "Status tidak berubah", course)
	}
	if err := cc.DB.WithContext(c.UserContext()).Model(course).
		Update("course_status", status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah status kursus")
	}
	log.Printf("[CourseController] kursus %s → %s", course.ID, status)
	return helper.JsonUpdated(c, "Status kursus diperbarui", course)
}

// DELETE /api/a/courses/:id
func (cc *CourseController) Delete(c *fiber.Ctx) error {
	course, err := cc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := cc.DB.WithContext(c.UserContext()).Delete(course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kursus")
	}
	return helper.JsonDeleted(c, "Kursus dihapus", fiber.Map{"course_id": course.ID})
}

// GET /api/a/courses/:id/enrollments?status=
func (cc *CourseController) ListEnrollments(c *fiber.Ctx) error {
	course, err := cc.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := cc.DB.WithContext(c.UserContext()).Model(&model.CourseEnrollmentModel{}).
		Where("course_enrollment_course_id = ?", course.ID)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("course_enrollment_status = ?", st)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.CourseEnrollmentModel
	order := p.SafeOrder(map[string]string{
		"created_at": "course_enrollment_created_at",
		"progress":   "course_enrollment_progress_percent",
	}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

/* ===================== STUDENT (/api/u) ===================== */

// GET /api/u/courses → kursus published di instansi sendiri
func (cc *CourseController) ListPublished(c *fiber.Ctx) error {
	instansiID, err := helperAuth.GetInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := cc.DB.WithContext(c.UserContext()).Model(&model.CourseModel{}).
		Where("course_instansi_id = ? AND course_status = ?", instansiID, model.CourseStatusPublished)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("course_title ILIKE ?", "%"+s+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.CourseModel
	order := p.SafeOrder(map[string]string{"created_at": "course_created_at", "title": "course_title"}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/u/courses/:id → materi published; konten hanya untuk yang terdaftar
func (cc *CourseController) GetForStudent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	course, err := LoadCourse(c, cc.DB, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if course.Status != model.CourseStatusPublished {
		return helper.JsonError(c, fiber.StatusNotFound, "Kursus tidak ditemukan")
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}

	ctx := c.UserContext()
	var enrollment *model.CourseEnrollmentModel
	var e model.CourseEnrollmentModel
	if err := cc.DB.WithContext(ctx).
		Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ?", course.ID, me).
		First(&e).Error; err == nil {
		enrollment = &e
	}

	var lessons []model.CourseLessonModel
	if err := cc.DB.WithContext(ctx).
		Where("course_lesson_course_id = ? AND course_lesson_is_published = TRUE", course.ID).
		Order("course_lesson_order ASC, course_lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materi")
	}
	if enrollment == nil || enrollment.Status == model.EnrollmentDropped {
		for i := range lessons {
			lessons[i].Content = nil
		}
	}

	var done []uuid.UUID
	if enrollment != nil {
		_ = cc.DB.WithContext(ctx).Model(&model.LessonCompletionModel{}).
			Where("lesson_completion_enrollment_id = ?", enrollment.ID).
			Pluck("lesson_completion_lesson_id", &done).Error
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"course":            course,
		"lessons":           lessons,
		"enrollment":        enrollment,
		"completed_lessons": done,
	})
}

// POST /api/u/courses/:id/enroll
func (cc *CourseController) Enroll(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	course, err := LoadCourse(c, cc.DB, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	e, created, err := service.Enroll(c.UserContext(), cc.DB, course, me)
	if err != nil {
		return helper.JsonErrorFrom(c, mapServiceErr(err))
	}
	if created {
		return helper.JsonCreated(c, "Berhasil mendaftar kursus", e)
	}
	return helper.JsonOK(c, "Sudah terdaftar", e)
}

// DELETE /api/u/courses/:id/enroll
func (cc *CourseController) Unenroll(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := service.Unenroll(c.UserContext(), cc.DB, id, me); err != nil {
		return helper.JsonErrorFrom(c, mapServiceErr(err))
	}
	return helper.JsonDeleted(c, "Keluar dari kursus", fiber.Map{"course_id": id})
}

// POST /api/u/courses/:id/lessons/:lesson_id/complete
func (cc *CourseController) CompleteLesson(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	lessonID, err := helper.ParseUUIDParam(c, "lesson_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	e, err := service.CompleteLesson(c.UserContext(), cc.DB, id, lessonID, me)
	if err != nil {
		return helper.JsonErrorFrom(c, mapServiceErr(err))
	}
	return helper.JsonUpdated(c, "Progres diperbarui", e)
}

// GET /api/u/my/enrollments?status=
func (cc *CourseController) MyEnrollments(c *fiber.Ctx) error {
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := cc.DB.WithContext(c.UserContext()).Table("course_enrollments e").
		Joins("JOIN courses c ON c.course_id = e.course_enrollment_course_id AND c.course_deleted_at IS NULL").
		Where("e.course_enrollment_student_id = ?", me)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("e.course_enrollment_status = ?", st)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []dto.EnrollmentResponse
	if err := q.Select("e.*, c.course_title, c.course_slug").
		Order("e.course_enrollment_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

func mapServiceErr(err error) error {
	switch err {
	case service.ErrCourseNotPublished:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case service.ErrNotEnrolled:
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case service.ErrLessonNotAvailable:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if fe := helper.DBError(err, "Data tidak ditemukan"); fe != nil {
		return fe
	}
	return err
}
