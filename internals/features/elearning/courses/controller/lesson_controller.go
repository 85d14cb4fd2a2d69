package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/courses/dto"
	"sekolahku_backend/internals/features/elearning/courses/model"
	"sekolahku_backend/internals/features/elearning/courses/service"
	helper "sekolahku_backend/internals/helpers"
)

type LessonController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	courses   *CourseController
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validator: validator.New(), courses: NewCourseController(db)}
}

func (lc *LessonController) recalc(c *fiber.Ctx, course *model.CourseModel) {
	if err := service.RecalculateCourse(c.UserContext(), lc.DB, course.ID); err != nil {
		log.Printf("[LessonController] recalc progres kursus %s gagal: %v", course.ID, err)
	}
}

// GET /api/a/courses/:id/lessons
func (lc *LessonController) List(c *fiber.Ctx) error {
	course, err := lc.courses.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var rows []model.CourseLessonModel
	if err := lc.DB.WithContext(c.UserContext()).
		Where("course_lesson_course_id = ?", course.ID).
		Order("course_lesson_order ASC, course_lesson_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materi")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/courses/:id/lessons
func (lc *LessonController) Create(c *fiber.Ctx) error {
	course, err := lc.courses.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, lc.Validator, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	var maxOrder *int
	if err := lc.DB.WithContext(ctx).Model(&model.CourseLessonModel{}).
		Where("course_lesson_course_id = ?", course.ID).
		Select("MAX(course_lesson_order)").Scan(&maxOrder).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca urutan materi")
	}
	next := 1
	if maxOrder != nil {
		next = *maxOrder + 1
	}

	row := req.ToModel(*course, next)
	if err := lc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	if row.IsPublished {
		lc.recalc(c, course)
	}
	return helper.JsonCreated(c, "Materi ditambahkan", row)
}

func (lc *LessonController) lesson(c *fiber.Ctx, course *model.CourseModel) (*model.CourseLessonModel, error) {
	lessonID, err := helper.ParseUUIDParam(c, "lesson_id")
	if err != nil {
		return nil, err
	}
	var row model.CourseLessonModel
	if err := lc.DB.WithContext(c.UserContext()).
		First(&row, "course_lesson_id = ? AND course_lesson_course_id = ?", lessonID, course.ID).Error; err != nil {
		return nil, helper.DBError(err, "Materi tidak ditemukan")
	}
	return &row, nil
}

// PATCH /api/a/courses/:id/lessons/:lesson_id
func (lc *LessonController) Patch(c *fiber.Ctx) error {
	course, err := lc.courses.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := lc.lesson(c, course)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, lc.Validator, &req); !ok {
		return err
	}
	updates, publishChanged := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", row)
	}
	wasPublished := row.IsPublished
	if err := lc.DB.WithContext(c.UserContext()).Model(row).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui materi")
	}
	if publishChanged && wasPublished != row.IsPublished {
		lc.recalc(c, course)
	}
	return helper.JsonUpdated(c, "Materi diperbarui", row)
}

// DELETE /api/a/courses/:id/lessons/:lesson_id
func (lc *LessonController) Delete(c *fiber.Ctx) error {
	course, err := lc.courses.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := lc.lesson(c, course)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := lc.DB.WithContext(c.UserContext()).Delete(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus materi")
	}
	if row.IsPublished {
		lc.recalc(c, course)
	}
	return helper.JsonDeleted(c, "Materi dihapus", fiber.Map{"course_lesson_id": row.ID})
}
