package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "sekolahku_backend/internals/features/elearning/courses/controller"
	"sekolahku_backend/internals/features/elearning/gradebook/model"
	"sekolahku_backend/internals/features/elearning/gradebook/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type GradebookController struct {
	DB *gorm.DB
}

func NewGradebookController(db *gorm.DB) *GradebookController {
	return &GradebookController{DB: db}
}

func (gc *GradebookController) courseRecords(c *fiber.Ctx) ([]model.GradeRecordModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	course, err := courseController.LoadCourse(c, gc.DB, id)
	if err != nil {
		return nil, err
	}
	if err := courseController.EnsureCanManage(c, course); err != nil {
		return nil, err
	}

	q := gc.DB.WithContext(c.UserContext()).Where("grade_record_course_id = ?", course.ID)
	if sid := strings.TrimSpace(c.Query("student_id")); helper.IsUUID(sid) {
		q = q.Where("grade_record_student_id = ?", sid)
	}
	if st := strings.TrimSpace(c.Query("source_type")); st != "" {
		q = q.Where("grade_record_source_type = ?", st)
	}
	var rows []model.GradeRecordModel
	if err := q.Order("grade_record_graded_at DESC").Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil nilai")
	}
	return rows, nil
}

// GET /api/a/courses/:id/grades?student_id=&source_type=
func (gc *GradebookController) ListCourse(c *fiber.Ctx) error {
	rows, err := gc.courseRecords(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/a/courses/:id/grades/summary
func (gc *GradebookController) CourseSummary(c *fiber.Ctx) error {
	rows, err := gc.courseRecords(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", service.Summarize(rows))
}

// GET /api/u/my/grades?course_id=
func (gc *GradebookController) Mine(c *fiber.Ctx) error {
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	q := gc.DB.WithContext(c.UserContext()).Where("grade_record_student_id = ?", me)
	if cid := strings.TrimSpace(c.Query("course_id")); cid != "" {
		if !helper.IsUUID(cid) {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		q = q.Where("grade_record_course_id = ?", cid)
	}
	var rows []model.GradeRecordModel
	if err := q.Order("grade_record_graded_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai")
	}
	summary := service.Summarize(rows)
	var avg any
	if len(summary) == 1 {
		avg = summary[0]
	}
	return helper.JsonOK(c, "ok", fiber.Map{"grades": rows, "summary": avg})
}
