package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/library/dto"
	"sekolahku_backend/internals/features/library/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

var bookSorts = map[string]string{
	"created_at": "book_created_at",
	"title":      "book_title",
	"readers":    "book_reader_count",
}

type BookController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage
}

func NewBookController(db *gorm.DB, storage helperOSS.Storage) *BookController {
	return &BookController{DB: db, Validator: validator.New(), Storage: storage}
}

func (bc *BookController) load(c *fiber.Ctx) (*model.LibraryBookModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var b model.LibraryBookModel
	if err := bc.DB.WithContext(c.UserContext()).First(&b, "book_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Buku tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, b.InstansiID); err != nil {
		return nil, err
	}
	return &b, nil
}

// loadReadable: buku terbit (staff juga boleh membuka draft).
func (bc *BookController) loadReadable(c *fiber.Ctx) (*model.LibraryBookModel, error) {
	b, err := bc.load(c)
	if err != nil {
		return nil, err
	}
	if !b.IsPublished && !helperAuth.IsStaff(c) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Buku tidak ditemukan")
	}
	return b, nil
}

func (bc *BookController) trash(c *fiber.Ctx, url string) {
	if url == "" || bc.Storage == nil {
		return
	}
	if _, err := bc.Storage.MoveToTrash(c.UserContext(), url); err != nil {
		log.Printf("[BookController] trash %s gagal: %v", url, err)
	}
}

func (bc *BookController) list(c *fiber.Ctx, onlyPublished bool) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := bc.DB.WithContext(c.UserContext()).Model(&model.LibraryBookModel{}).Where("book_instansi_id = ?", instansiID)
	if onlyPublished {
		q = q.Where("book_is_published = TRUE")
	} else if v := helper.ParseBoolQuery(c.Query("is_published")); v != nil {
		q = q.Where("book_is_published = ?", *v)
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("book_category = ?", cat)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("book_title ILIKE ? OR book_author ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.LibraryBookModel
	if err := q.Order(p.SafeOrder(bookSorts, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

/* ===================== STAFF ===================== */

// POST /api/a/library/books (multipart: file PDF wajib, cover opsional)
func (bc *BookController) Create(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(bc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, bc.Validator, &req); !ok {
		return err
	}
	pdf := helperOSS.FormFile(c, "file", "pdf")
	if pdf == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File PDF wajib diunggah")
	}

	ctx := c.UserContext()
	slug, err := helper.UniqueSlugFrom(ctx, bc.DB, "books", "book_slug", req.Slug, req.Title,
		func(q *gorm.DB) *gorm.DB {
			return q.Where("book_instansi_id = ? AND book_deleted_at IS NULL", instansiID)
		})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}

	dir := "library/" + instansiID.String()
	up, err := bc.Storage.UploadFile(ctx, dir, pdf, ".pdf")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row := req.ToModel(instansiID, slug, up.URL)

	if cover := helperOSS.FormFile(c, "cover"); cover != nil {
		img, err := bc.Storage.UploadImageAsWebP(ctx, dir+"/covers", cover)
		if err != nil {
			bc.trash(c, up.URL)
			return helper.JsonErrorFrom(c, err)
		}
		row.CoverURL = &img.URL
	}

	if err := bc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		bc.trash(c, up.URL)
		if row.CoverURL != nil {
			bc.trash(c, *row.CoverURL)
		}
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	log.Printf("[BookController] buku %s (%s) diunggah %d byte", row.ID, row.Slug, up.Size)
	return helper.JsonCreated(c, "Buku ditambahkan", row)
}

// GET /api/a/library/books?is_published=&category=&q=
func (bc *BookController) List(c *fiber.Ctx) error { return bc.list(c, false) }

// GET /api/a/library/books/:id
func (bc *BookController) Get(c *fiber.Ctx) error {
	b, err := bc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", b)
}

// PATCH /api/a/library/books/:id
func (bc *BookController) Patch(c *fiber.Ctx) error {
	b, err := bc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, bc.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", b)
	}
	if err := bc.DB.WithContext(c.UserContext()).Model(b).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui buku")
	}
	return helper.JsonUpdated(c, "Buku diperbarui", b)
}

// PUT /api/a/library/books/:id/file (multipart: file)
func (bc *BookController) ReplaceFile(c *fiber.Ctx) error {
	return bc.replace(c, "file", func(b *model.LibraryBookModel) (string, string, error) {
		fh := helperOSS.FormFile(c, "file", "pdf")
		if fh == nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "File PDF wajib diunggah")
		}
		up, err := bc.Storage.UploadFile(c.UserContext(), "library/"+b.InstansiID.String(), fh, ".pdf")
		return "book_file_url", up.URL, err
	}, func(b *model.LibraryBookModel) string { return b.FileURL })
}

// PUT /api/a/library/books/:id/cover (multipart: cover)
func (bc *BookController) ReplaceCover(c *fiber.Ctx) error {
	return bc.replace(c, "cover", func(b *model.LibraryBookModel) (string, string, error) {
		fh := helperOSS.FormFile(c, "cover", "image")
		if fh == nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "Gambar cover wajib diunggah")
		}
		up, err := bc.Storage.UploadImageAsWebP(c.UserContext(), "library/"+b.InstansiID.String()+"/covers", fh)
		return "book_cover_url", up.URL, err
	}, func(b *model.LibraryBookModel) string {
		if b.CoverURL == nil {
			return ""
		}
		return *b.CoverURL
	})
}

func (bc *BookController) replace(
	c *fiber.Ctx,
	what string,
	upload func(*model.LibraryBookModel) (col, url string, err error),
	current func(*model.LibraryBookModel) string,
) error {
	b, err := bc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(bc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	old := current(b)
	col, url, err := upload(b)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := bc.DB.WithContext(c.UserContext()).Model(b).Update(col, url).Error; err != nil {
		bc.trash(c, url)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan "+what)
	}
	bc.trash(c, old)
	return helper.JsonUpdated(c, "Berkas buku diperbarui", b)
}

// DELETE /api/a/library/books/:id (soft delete; file dibersihkan reaper)
func (bc *BookController) Delete(c *fiber.Ctx) error {
	b, err := bc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := bc.DB.WithContext(c.UserContext()).Delete(b).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus buku")
	}
	bc.trash(c, b.FileURL)
	if b.CoverURL != nil {
		bc.trash(c, *b.CoverURL)
	}
	return helper.JsonDeleted(c, "Buku dihapus", fiber.Map{"book_id": b.ID})
}

/* ===================== PEMBACA ===================== */

// GET /api/u/library/books
func (bc *BookController) ListPublished(c *fiber.Ctx) error { return bc.list(c, true) }

// GET /api/u/library/books/:id  (+ progress saya kalau ada)
func (bc *BookController) GetForReader(c *fiber.Ctx) error {
	b, err := bc.loadReadable(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var prog []model.ReadingProgressModel
	if err := bc.DB.WithContext(c.UserContext()).
		Where("reading_progress_book_id = ? AND reading_progress_user_id = ?", b.ID, me).
		Limit(1).Find(&prog).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progress")
	}
	var mine *model.ReadingProgressModel
	if len(prog) == 1 {
		mine = &prog[0]
	}
	return helper.JsonOK(c, "ok", fiber.Map{"book": b, "progress": mine})
}

func bookIDs(rows []model.ReadingProgressModel) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.BookID)
	}
	return out
}
