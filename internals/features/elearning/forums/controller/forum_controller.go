package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseController "sekolahku_backend/internals/features/elearning/courses/controller"
	courseService "sekolahku_backend/internals/features/elearning/courses/service"
	"sekolahku_backend/internals/features/elearning/forums/dto"
	"sekolahku_backend/internals/features/elearning/forums/model"
	"sekolahku_backend/internals/features/elearning/forums/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type ForumController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewForumController(db *gorm.DB) *ForumController {
	return &ForumController{DB: db, Validator: validator.New()}
}

// loadForum + cek akses: forum kursus hanya untuk peserta (staff bebas).
func (fc *ForumController) loadForum(c *fiber.Ctx, id uuid.UUID) (*model.ForumModel, error) {
	var f model.ForumModel
	if err := fc.DB.WithContext(c.UserContext()).First(&f, "forum_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Forum tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, f.InstansiID); err != nil {
		return nil, err
	}
	if f.CourseID != nil && !helperAuth.IsStaff(c) {
		me, err := helperAuth.GetUserID(c)
		if err != nil {
			return nil, err
		}
		ok, err := courseService.IsEnrolled(c.UserContext(), fc.DB, *f.CourseID, me)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
		}
		if !ok {
			return nil, fiber.NewError(fiber.StatusForbidden, "Forum khusus peserta kursus")
		}
	}
	return &f, nil
}

func (fc *ForumController) forumParam(c *fiber.Ctx) (*model.ForumModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	return fc.loadForum(c, id)
}

func (fc *ForumController) threadParam(c *fiber.Ctx) (*model.ForumModel, *model.ForumThreadModel, error) {
	id, err := helper.ParseUUIDParam(c, "thread_id")
	if err != nil {
		return nil, nil, err
	}
	var t model.ForumThreadModel
	if err := fc.DB.WithContext(c.UserContext()).First(&t, "forum_thread_id = ?", id).Error; err != nil {
		return nil, nil, helper.DBError(err, "Thread tidak ditemukan")
	}
	f, err := fc.loadForum(c, t.ForumID)
	if err != nil {
		return nil, nil, err
	}
	return f, &t, nil
}

/* ===================== FORUM (staff) ===================== */

// POST /api/a/forums
func (fc *ForumController) Create(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateForumRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, fc.Validator, &req); !ok {
		return err
	}
	if req.CourseID != nil {
		course, err := courseController.LoadCourse(c, fc.DB, *req.CourseID)
		if err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		if err := courseController.EnsureCanManage(c, course); err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		instansiID = course.InstansiID
	}
	row := req.ToModel(instansiID)
	if err := fc.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	return helper.JsonCreated(c, "Forum dibuat", row)
}

// PATCH /api/a/forums/:id
func (fc *ForumController) Patch(c *fiber.Ctx) error {
	f, err := fc.forumParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateForumRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, fc.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", f)
	}
	if err := fc.DB.WithContext(c.UserContext()).Model(f).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui forum")
	}
	return helper.JsonUpdated(c, "Forum diperbarui", f)
}

// DELETE /api/a/forums/:id
func (fc *ForumController) Delete(c *fiber.Ctx) error {
	f, err := fc.forumParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := fc.DB.WithContext(c.UserContext()).Delete(f).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus forum")
	}
	return helper.JsonDeleted(c, "Forum dihapus", fiber.Map{"forum_id": f.ID})
}

// PATCH /api/a/forum-threads/:thread_id/moderate {is_pinned, is_locked}
func (fc *ForumController) Moderate(c *fiber.Ctx) error {
	_, t, err := fc.threadParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.ModerateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", t)
	}
	if err := fc.DB.WithContext(c.UserContext()).Model(t).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui thread")
	}
	log.Printf("[ForumController] moderate thread %s: %v", t.ID, updates)
	return helper.JsonUpdated(c, "Thread diperbarui", t)
}

/* ===================== FORUM (semua user) ===================== */

// GET /api/u/forums?course_id=  (staff lewat /api/a/forums, termasuk nonaktif)
func (fc *ForumController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	q := fc.DB.WithContext(c.UserContext()).Model(&model.ForumModel{}).Where("forum_instansi_id = ?", instansiID)
	if cid := strings.TrimSpace(c.Query("course_id")); helper.IsUUID(cid) {
		q = q.Where("forum_course_id = ?", cid)
	}
	if !helperAuth.IsStaff(c) {
		me, err := helperAuth.GetUserID(c)
		if err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		q = q.Where("forum_is_active = TRUE").
			Where(`forum_course_id IS NULL OR EXISTS (
				SELECT 1 FROM course_enrollments e
				WHERE e.course_enrollment_course_id = forums.forum_course_id
				  AND e.course_enrollment_student_id = ?
				  AND e.course_enrollment_status <> 'dropped')`, me)
	}
	var rows []model.ForumModel
	if err := q.Order("forum_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil forum")
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/u/forums/:id/threads?q= → pinned dulu, lalu aktivitas terakhir
func (fc *ForumController) ListThreads(c *fiber.Ctx) error {
	f, err := fc.forumParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "last_activity", "desc", helper.DefaultOpts)
	q := fc.DB.WithContext(c.UserContext()).Model(&model.ForumThreadModel{}).Where("forum_thread_forum_id = ?", f.ID)
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("forum_thread_title ILIKE ?", "%"+s+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.ForumThreadModel
	if err := q.Order("forum_thread_is_pinned DESC, forum_thread_last_activity_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// POST /api/u/forums/:id/threads
func (fc *ForumController) CreateThread(c *fiber.Ctx) error {
	f, err := fc.forumParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, fc.Validator, &req); !ok {
		return err
	}
	t := model.ForumThreadModel{AuthorID: me, Title: strings.TrimSpace(req.Title), Body: req.Body}
	if err := service.CreateThread(c.UserContext(), fc.DB, f, &t); err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	return helper.JsonCreated(c, "Thread dibuat", t)
}

// GET /api/u/forum-threads/:thread_id → view_count +1
func (fc *ForumController) GetThread(c *fiber.Ctx) error {
	_, t, err := fc.threadParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	ctx := c.UserContext()
	if err := service.IncrementView(ctx, fc.DB, t.ID); err != nil {
		log.Printf("[ForumController] increment view %s gagal: %v", t.ID, err)
	} else {
		t.ViewCount++
	}

	p := helper.ParseFiber(c, "created_at", "asc", helper.DefaultOpts)
	var total int64
	q := fc.DB.WithContext(ctx).Model(&model.ForumPostModel{}).Where("forum_post_thread_id = ?", t.ID)
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung balasan")
	}
	var posts []model.ForumPostModel
	if err := q.Order("forum_post_created_at ASC").Limit(p.Limit()).Offset(p.Offset()).Find(&posts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil balasan")
	}
	return helper.JsonList(c, "ok", fiber.Map{"thread": t, "posts": posts}, helper.BuildMeta(total, p))
}

// PATCH /api/u/forum-threads/:thread_id (penulis / staff)
func (fc *ForumController) EditThread(c *fiber.Ctx) error {
	f, t, err := fc.threadParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := service.CanEdit(f, t, t.AuthorID, me, helperAuth.IsStaff(c)); err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	var req dto.UpdateThreadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, fc.Validator, &req); !ok {
		return err
	}
	updates := map[string]any{}
	if req.Title != nil {
		updates["forum_thread_title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		updates["forum_thread_body"] = *req.Body
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", t)
	}
	if err := fc.DB.WithContext(c.UserContext()).Model(t).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui thread")
	}
	return helper.JsonUpdated(c, "Thread diperbarui", t)
}

// DELETE /api/u/forum-threads/:thread_id (penulis / staff)
func (fc *ForumController) DeleteThread(c *fiber.Ctx) error {
	_, t, err := fc.threadParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := service.CanModify(t.AuthorID, me, helperAuth.IsStaff(c)); err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	if err := service.DeleteThread(c.UserContext(), fc.DB, t); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus thread")
	}
	return helper.JsonDeleted(c, "Thread dihapus", fiber.Map{"forum_thread_id": t.ID})
}

// POST /api/u/forum-threads/:thread_id/posts
func (fc *ForumController) Reply(c *fiber.Ctx) error {
	f, t, err := fc.threadParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, fc.Validator, &req); !ok {
		return err
	}
	p := model.ForumPostModel{AuthorID: me, Body: req.Body, ParentID: req.ParentID}
	if err := service.Reply(c.UserContext(), fc.DB, f, t.ID, &p); err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	return helper.JsonCreated(c, "Balasan terkirim", p)
}

func (fc *ForumController) postParam(c *fiber.Ctx) (*model.ForumPostModel, error) {
	id, err := helper.ParseUUIDParam(c, "post_id")
	if err != nil {
		return nil, err
	}
	var p model.ForumPostModel
	if err := fc.DB.WithContext(c.UserContext()).First(&p, "forum_post_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Balasan tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, p.InstansiID); err != nil {
		return nil, err
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return nil, err
	}
	if err := service.CanModify(p.AuthorID, me, helperAuth.IsStaff(c)); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// PATCH /api/u/forum-posts/:post_id
func (fc *ForumController) EditPost(c *fiber.Ctx) error {
	p, err := fc.postParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var t model.ForumThreadModel
	if err := fc.DB.WithContext(c.UserContext()).First(&t, "forum_thread_id = ?", p.ThreadID).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, "Thread tidak ditemukan"))
	}
	f, err := fc.loadForum(c, t.ForumID)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := service.CanEdit(f, &t, p.AuthorID, me, helperAuth.IsStaff(c)); err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	var req dto.EditPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, fc.Validator, &req); !ok {
		return err
	}
	now := time.Now()
	if err := fc.DB.WithContext(c.UserContext()).Model(p).Updates(map[string]any{
		"forum_post_body":      req.Body,
		"forum_post_edited_at": now,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui balasan")
	}
	return helper.JsonUpdated(c, "Balasan diperbarui", p)
}

// DELETE /api/u/forum-posts/:post_id
func (fc *ForumController) DeletePost(c *fiber.Ctx) error {
	p, err := fc.postParam(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := service.DeletePost(c.UserContext(), fc.DB, p); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus balasan")
	}
	return helper.JsonDeleted(c, "Balasan dihapus", fiber.Map{"forum_post_id": p.ID})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, service.ErrThreadLocked), errors.Is(err, service.ErrForumInactive):
		return fiber.NewError(fiber.StatusLocked, err.Error())
	case errors.Is(err, service.ErrNotPostOwner):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrParentMismatch):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return helper.DBError(err, "Data tidak ditemukan")
}
