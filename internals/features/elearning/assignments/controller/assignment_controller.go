package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/elearning/assignments/dto"
	"sekolahku_backend/internals/features/elearning/assignments/model"
	"sekolahku_backend/internals/features/elearning/assignments/service"
	courseController "sekolahku_backend/internals/features/elearning/courses/controller"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

var (
	attachmentExt = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".zip", ".jpg", ".jpeg", ".png"}
	submissionExt = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx", ".zip", ".jpg", ".jpeg", ".png", ".txt"}
)

type AssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage
	Service   *service.AssignmentService
}

func NewAssignmentController(db *gorm.DB, storage helperOSS.Storage) *AssignmentController {
	return &AssignmentController{
		DB:        db,
		Validator: validator.New(),
		Storage:   storage,
		Service:   service.NewAssignmentService(db),
	}
}

func (ac *AssignmentController) load(c *fiber.Ctx) (*model.AssignmentModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var row model.AssignmentModel
	if err := ac.DB.WithContext(c.UserContext()).First(&row, "assignment_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Tugas tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, row.InstansiID); err != nil {
		return nil, err
	}
	return &row, nil
}

func (ac *AssignmentController) manageable(c *fiber.Ctx) (*model.AssignmentModel, error) {
	a, err := ac.load(c)
	if err != nil {
		return nil, err
	}
	course, err := courseController.LoadCourse(c, ac.DB, a.CourseID)
	if err != nil {
		return nil, err
	}
	if err := courseController.EnsureCanManage(c, course); err != nil {
		return nil, err
	}
	return a, nil
}

func (ac *AssignmentController) trash(c *fiber.Ctx, url string) {
	if url == "" || ac.Storage == nil {
		return
	}
	if _, err := ac.Storage.MoveToTrash(c.UserContext(), url); err != nil {
		log.Printf("[AssignmentController] trash %s gagal: %v", url, err)
	}
}

/* ===================== STAFF ===================== */

// POST /api/a/assignments
func (ac *AssignmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}
	course, err := courseController.LoadCourse(c, ac.DB, req.CourseID)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := courseController.EnsureCanManage(c, course); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row := req.ToModel(course.InstansiID)
	if err := ac.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	return helper.JsonCreated(c, "Tugas berhasil dibuat", row)
}

// GET /api/a/assignments?course_id=
func (ac *AssignmentController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := ac.DB.WithContext(c.UserContext()).Model(&model.AssignmentModel{}).Where("assignment_instansi_id = ?", instansiID)
	if cid := strings.TrimSpace(c.Query("course_id")); helper.IsUUID(cid) {
		q = q.Where("assignment_course_id = ?", cid)
	}
	if b := helper.ParseBoolQuery(c.Query("is_published")); b != nil {
		q = q.Where("assignment_is_published = ?", *b)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.AssignmentModel
	order := p.SafeOrder(map[string]string{
		"created_at": "assignment_created_at",
		"due_at":     "assignment_due_at",
		"title":      "assignment_title",
	}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/assignments/:id
func (ac *AssignmentController) Get(c *fiber.Ctx) error {
	a, err := ac.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", a)
}

// PATCH /api/a/assignments/:id
func (ac *AssignmentController) Patch(c *fiber.Ctx) error {
	a, err := ac.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", a)
	}
	if err := ac.DB.WithContext(c.UserContext()).Model(a).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui tugas")
	}
	return helper.JsonUpdated(c, "Tugas diperbarui", a)
}

// PUT /api/a/assignments/:id/attachment (multipart: file)
func (ac *AssignmentController) UploadAttachment(c *fiber.Ctx) error {
	a, err := ac.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(ac.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	fh := helperOSS.FormFile(c, "file", "attachment")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File lampiran wajib diunggah")
	}
	up, err := ac.Storage.UploadFile(c.UserContext(), "assignments/"+a.ID.String(), fh, attachmentExt...)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	old := ""
	if a.AttachmentURL != nil {
		old = *a.AttachmentURL
	}
	if err := ac.DB.WithContext(c.UserContext()).Model(a).Update("assignment_attachment_url", up.URL).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan lampiran")
	}
	ac.trash(c, old)
	return helper.JsonUpdated(c, "Lampiran diperbarui", a)
}

// DELETE /api/a/assignments/:id
func (ac *AssignmentController) Delete(c *fiber.Ctx) error {
	a, err := ac.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := ac.DB.WithContext(c.UserContext()).Delete(a).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus tugas")
	}
	return helper.JsonDeleted(c, "Tugas dihapus", fiber.Map{"assignment_id": a.ID})
}

// GET /api/a/assignments/:id/submissions?status=
func (ac *AssignmentController) ListSubmissions(c *fiber.Ctx) error {
	a, err := ac.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	q := ac.DB.WithContext(c.UserContext()).Where("assignment_submission_assignment_id = ?", a.ID)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("assignment_submission_status = ?", st)
	}
	var rows []model.AssignmentSubmissionModel
	if err := q.Order("assignment_submission_submitted_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/assignments/:id/submissions/:submission_id/grade
func (ac *AssignmentController) Grade(c *fiber.Ctx) error {
	a, err := ac.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	subID, err := helper.ParseUUIDParam(c, "submission_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}
	out, err := ac.Service.Grade(c.UserContext(), a, subID, me, *req.Score, req.Feedback)
	if err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	return helper.JsonUpdated(c, "Tugas dinilai", out)
}

// POST /api/a/assignments/:id/submissions/:submission_id/return
func (ac *AssignmentController) Return(c *fiber.Ctx) error {
	a, err := ac.manageable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	subID, err := helper.ParseUUIDParam(c, "submission_id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.ReturnRequest
	_ = c.BodyParser(&req)
	out, err := ac.Service.Return(c.UserContext(), a, subID, req.Feedback)
	if err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	return helper.JsonUpdated(c, "Tugas dikembalikan untuk revisi", out)
}

/* ===================== STUDENT ===================== */

// GET /api/u/assignments?course_id=
func (ac *AssignmentController) ListForStudent(c *fiber.Ctx) error {
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	cid := strings.TrimSpace(c.Query("course_id"))
	if !helper.IsUUID(cid) {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id wajib diisi")
	}
	var rows []model.AssignmentModel
	if err := ac.DB.WithContext(c.UserContext()).
		Where("assignment_course_id = ? AND assignment_is_published = TRUE", cid).
		Where("EXISTS (SELECT 1 FROM course_enrollments e WHERE e.course_enrollment_course_id = assignments.assignment_course_id AND e.course_enrollment_student_id = ? AND e.course_enrollment_status <> 'dropped')", me).
		Order("assignment_due_at ASC NULLS LAST").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil tugas")
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/u/assignments/:id → tugas + pengumpulan saya
func (ac *AssignmentController) GetForStudent(c *fiber.Ctx) error {
	a, err := ac.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if !a.IsPublished {
		return helper.JsonError(c, fiber.StatusNotFound, "Tugas tidak ditemukan")
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var sub *model.AssignmentSubmissionModel
	var row model.AssignmentSubmissionModel
	if err := ac.DB.WithContext(c.UserContext()).
		Where("assignment_submission_assignment_id = ? AND assignment_submission_student_id = ?", a.ID, me).
		First(&row).Error; err == nil {
		sub = &row
	}
	return helper.JsonOK(c, "ok", fiber.Map{"assignment": a, "submission": sub})
}

// POST /api/u/assignments/:id/submit (JSON {content} atau multipart content + file)
func (ac *AssignmentController) Submit(c *fiber.Ctx) error {
	a, err := ac.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if req.Content != nil {
		req.Content = helper.StrPtr(*req.Content)
	}

	in := service.SubmitInput{Content: req.Content}
	if fh := helperOSS.FormFile(c, "file"); fh != nil {
		if err := helperOSS.RequireStorage(ac.Storage); err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		if _, err := service.CheckSubmit(a, nil, ac.Service.Now()); err != nil {
			return helper.JsonErrorFrom(c, mapErr(err))
		}
		up, err := ac.Storage.UploadFile(c.UserContext(), "submissions/"+a.ID.String()+"/"+me.String(), fh, submissionExt...)
		if err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		in.FileURL = &up.URL
	}

	out, oldFile, err := ac.Service.Submit(c.UserContext(), a, me, in)
	if err != nil {
		if in.FileURL != nil {
			ac.trash(c, *in.FileURL)
		}
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	ac.trash(c, oldFile)

	msg := "Tugas dikumpulkan"
	if out.IsLate {
		msg = "Tugas dikumpulkan (terlambat)"
	}
	return helper.JsonOK(c, msg, out)
}

func mapErr(err error) error {
	switch err {
	case service.ErrAssignmentClosed, service.ErrNotSubmitted:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case service.ErrPastDue, service.ErrAlreadyGraded:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case service.ErrNotEnrolled:
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case service.ErrEmptySubmission:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return helper.DBError(err, "Data tidak ditemukan")
}
