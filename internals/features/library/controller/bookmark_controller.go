package controller

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/library/dto"
	"sekolahku_backend/internals/features/library/model"
	"sekolahku_backend/internals/features/library/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// GET /api/u/library/books/:id/bookmarks
func (bc *BookController) ListBookmarks(c *fiber.Ctx) error {
	b, err := bc.loadReadable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var rows []model.BookmarkModel
	if err := bc.DB.WithContext(c.UserContext()).
		Where("bookmark_book_id = ? AND bookmark_user_id = ?", b.ID, me).
		Order("bookmark_page ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bookmark")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/u/library/books/:id/bookmarks (halaman sama → ditimpa)
func (bc *BookController) AddBookmark(c *fiber.Ctx) error {
	b, err := bc.loadReadable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, bc.Validator, &req); !ok {
		return err
	}
	if b.TotalPages > 0 && req.Page > b.TotalPages {
		return helper.JsonError(c, fiber.StatusBadRequest, "Halaman melebihi jumlah halaman buku")
	}
	row := model.BookmarkModel{
		BookID:     b.ID,
		InstansiID: b.InstansiID,
		UserID:     me,
		Page:       req.Page,
		Label:      req.Label,
		Note:       req.Note,
	}
	if err := service.UpsertBookmark(c.UserContext(), bc.DB, &row); err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	return helper.JsonCreated(c, "Bookmark disimpan", row)
}

func (bc *BookController) ownBookmark(c *fiber.Ctx) (*model.BookmarkModel, error) {
	id, err := helper.ParseUUIDParam(c, "bookmark_id")
	if err != nil {
		return nil, err
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return nil, err
	}
	var row model.BookmarkModel
	if err := bc.DB.WithContext(c.UserContext()).
		First(&row, "bookmark_id = ? AND bookmark_user_id = ?", id, me).Error; err != nil {
		return nil, helper.DBError(err, "Bookmark tidak ditemukan")
	}
	return &row, nil
}

// PATCH /api/u/library/bookmarks/:bookmark_id
func (bc *BookController) UpdateBookmark(c *fiber.Ctx) error {
	row, err := bc.ownBookmark(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, bc.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", row)
	}
	if err := bc.DB.WithContext(c.UserContext()).Model(row).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui bookmark")
	}
	return helper.JsonUpdated(c, "Bookmark diperbarui", row)
}

// DELETE /api/u/library/bookmarks/:bookmark_id
func (bc *BookController) DeleteBookmark(c *fiber.Ctx) error {
	row, err := bc.ownBookmark(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := bc.DB.WithContext(c.UserContext()).Delete(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus bookmark")
	}
	return helper.JsonDeleted(c, "Bookmark dihapus", fiber.Map{"bookmark_id": row.ID})
}
