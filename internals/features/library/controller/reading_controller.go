package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/library/dto"
	"sekolahku_backend/internals/features/library/model"
	"sekolahku_backend/internals/features/library/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// POST /api/u/library/books/:id/progress
// Dipanggil reader PDF tiap 5–30 detik.
func (bc *BookController) SyncProgress(c *fiber.Ctx) error {
	b, err := bc.loadReadable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.SyncProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, bc.Validator, &req); !ok {
		return err
	}
	in := service.SyncInput{
		CurrentPage:    req.CurrentPage,
		TotalPages:     req.TotalPages,
		ElapsedSeconds: req.ElapsedSeconds,
	}
	if req.ClientTime != nil {
		in.ClientTime = *req.ClientTime
	}

	ctx := c.UserContext()
	prog, applied, err := service.SyncProgress(ctx, bc.DB, b, me, in, time.Now())
	if err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	// jumlah halaman belum diisi admin → pakai laporan reader
	if b.TotalPages == 0 && req.TotalPages > 0 {
		if err := bc.DB.WithContext(ctx).Model(&model.LibraryBookModel{}).
			Where("book_id = ? AND book_total_pages = 0", b.ID).
			UpdateColumn("book_total_pages", req.TotalPages).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui jumlah halaman")
		}
	}
	return helper.JsonOK(c, "Progress tersimpan", dto.SyncProgressResponse{Applied: applied, Progress: prog})
}

// GET /api/u/library/books/:id/progress
func (bc *BookController) MyProgress(c *fiber.Ctx) error {
	b, err := bc.loadReadable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var prog model.ReadingProgressModel
	err = bc.DB.WithContext(c.UserContext()).
		First(&prog, "reading_progress_book_id = ? AND reading_progress_user_id = ?", b.ID, me).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonOK(c, "Belum mulai membaca", nil)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progress")
	}
	return helper.JsonOK(c, "ok", prog)
}

// GET /api/u/library/my/reading → daftar buku yang sedang/selesai dibaca
func (bc *BookController) MyReading(c *fiber.Ctx) error {
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	ctx := c.UserContext()
	var rows []model.ReadingProgressModel
	if err := bc.DB.WithContext(ctx).Where("reading_progress_user_id = ?", me).
		Order("reading_progress_last_read_at DESC").Limit(100).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	var books []model.LibraryBookModel
	if len(rows) > 0 {
		if err := bc.DB.WithContext(ctx).Where("book_id IN ?", bookIDs(rows)).Find(&books).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil buku")
		}
	}
	byID := make(map[string]model.LibraryBookModel, len(books))
	for _, b := range books {
		byID[b.ID.String()] = b
	}
	type item struct {
		Book     model.LibraryBookModel     `json:"book"`
		Progress model.ReadingProgressModel `json:"progress"`
	}
	out := make([]item, 0, len(rows))
	for _, r := range rows {
		if b, ok := byID[r.BookID.String()]; ok {
			out = append(out, item{Book: b, Progress: r})
		}
	}
	return helper.JsonOK(c, "ok", out)
}
