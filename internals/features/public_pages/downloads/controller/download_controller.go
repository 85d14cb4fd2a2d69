package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instansiService "sekolahku_backend/internals/features/instansi/service"
	"sekolahku_backend/internals/features/public_pages/downloads/dto"
	"sekolahku_backend/internals/features/public_pages/downloads/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/cache"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

var downloadSorts = map[string]string{
	"created_at": "download_created_at",
	"title":      "download_title",
	"downloads":  "download_count",
}

type DownloadController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage
	Cache     *cache.Cache
	TTL       time.Duration
}

func NewDownloadController(db *gorm.DB, storage helperOSS.Storage, c *cache.Cache, ttl time.Duration) *DownloadController {
	return &DownloadController{DB: db, Validator: validator.New(), Storage: storage, Cache: c, TTL: ttl}
}

type pagedDownloads struct {
	Data []model.DownloadModel `json:"data"`
	Meta helper.Meta           `json:"meta"`
}

func (dc *DownloadController) invalidate(c *fiber.Ctx, d *model.DownloadModel) {
	dc.Cache.InvalidatePrefix(c.UserContext(), dc.Cache.Key("downloads", d.InstansiID.String()))
}

func (dc *DownloadController) load(c *fiber.Ctx) (*model.DownloadModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var d model.DownloadModel
	if err := dc.DB.WithContext(c.UserContext()).First(&d, "download_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "File unduhan tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, d.InstansiID); err != nil {
		return nil, err
	}
	return &d, nil
}

func filterDownloads(q *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("download_category = ?", cat)
	}
	if tag := strings.ToLower(strings.TrimSpace(c.Query("tag"))); tag != "" {
		q = q.Where("? = ANY(download_tags)", tag)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("download_title ILIKE ?", "%"+s+"%")
	}
	return q
}

/* ===================== ADMIN ===================== */

// POST /api/a/downloads (multipart: file + field)
func (dc *DownloadController) Create(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(dc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	fh := helperOSS.FormFile(c, "file")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File wajib diunggah (multipart field: file)")
	}
	var req dto.CreateDownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, dc.Validator, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	slug, err := helper.UniqueSlugFrom(ctx, dc.DB, "downloads", "download_slug", req.Slug, req.Title,
		func(q *gorm.DB) *gorm.DB {
			return q.Where("download_instansi_id = ? AND download_deleted_at IS NULL", instansiID)
		})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	up, err := dc.Storage.UploadFile(ctx, "downloads/"+instansiID.String(), fh, dto.AllowedExt...)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}

	row := req.ToModel(instansiID, slug, fh.Filename, up)
	if err := dc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if _, terr := dc.Storage.MoveToTrash(ctx, up.URL); terr != nil {
			log.Printf("[DownloadController] rollback file gagal: %v", terr)
		}
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	dc.invalidate(c, &row)
	return helper.JsonCreated(c, "File unduhan dibuat", row)
}

// GET /api/a/downloads?category=&tag=&q=&published=
func (dc *DownloadController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := dc.DB.WithContext(c.UserContext()).Model(&model.DownloadModel{}).Where("download_instansi_id = ?", instansiID)
	if pub := helper.ParseBoolQuery(c.Query("published")); pub != nil {
		q = q.Where("download_is_published = ?", *pub)
	}
	q = filterDownloads(q, c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.DownloadModel
	if err := q.Order(p.SafeOrder(downloadSorts, "created_at")).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/downloads/:id
func (dc *DownloadController) Get(c *fiber.Ctx) error {
	d, err := dc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", d)
}

// PATCH /api/a/downloads/:id
func (dc *DownloadController) Patch(c *fiber.Ctx) error {
	d, err := dc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateDownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, dc.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", d)
	}
	ctx := c.UserContext()
	if err := dc.DB.WithContext(ctx).Model(d).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui data")
	}
	if err := dc.DB.WithContext(ctx).First(d, "download_id = ?", d.ID).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	dc.invalidate(c, d)
	return helper.JsonUpdated(c, "File unduhan diperbarui", d)
}

// PUT /api/a/downloads/:id/file (multipart: file)
func (dc *DownloadController) ReplaceFile(c *fiber.Ctx) error {
	d, err := dc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(dc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	fh := helperOSS.FormFile(c, "file")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File wajib diunggah")
	}
	ctx := c.UserContext()
	up, err := dc.Storage.UploadFile(ctx, "downloads/"+d.InstansiID.String(), fh, dto.AllowedExt...)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	old := d.FileURL
	updates := map[string]any{
		"download_file_url":  up.URL,
		"download_file_name": dto.CleanFileName(fh.Filename),
		"download_file_size": up.Size,
		"download_mime_type": up.ContentType,
	}
	if err := dc.DB.WithContext(ctx).Model(d).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan file")
	}
	if _, err := dc.Storage.MoveToTrash(ctx, old); err != nil {
		log.Printf("[DownloadController] trash file lama gagal: %v", err)
	}
	dc.invalidate(c, d)
	return helper.JsonUpdated(c, "File diganti", d)
}

// DELETE /api/a/downloads/:id
func (dc *DownloadController) Delete(c *fiber.Ctx) error {
	d, err := dc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	ctx := c.UserContext()
	if err := dc.DB.WithContext(ctx).Delete(d).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus data")
	}
	if dc.Storage != nil {
		if _, err := dc.Storage.MoveToTrash(ctx, d.FileURL); err != nil {
			log.Printf("[DownloadController] trash %s gagal: %v", d.FileURL, err)
		}
	}
	dc.invalidate(c, d)
	return helper.JsonDeleted(c, "File unduhan dihapus", fiber.Map{"download_id": d.ID})
}

/* ===================== PUBLIC ===================== */

// GET /api/public/:instansi_slug/downloads?category=&tag=&q=
func (dc *DownloadController) PublicList(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.PublicOpts)
	ctx := c.UserContext()
	key := dc.Cache.Key("downloads", inst.ID.String(), "list", string(c.Request().URI().QueryString()))

	var out pagedDownloads
	err = dc.Cache.CacheOrExecute(ctx, key, &out, dc.TTL, func() (any, error) {
		q := dc.DB.WithContext(ctx).Model(&model.DownloadModel{}).
			Where("download_instansi_id = ? AND download_is_published = TRUE", inst.ID)
		q = filterDownloads(q, c)
		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, err
		}
		rows := []model.DownloadModel{}
		if err := q.Order(p.SafeOrder(downloadSorts, "created_at")).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
			return nil, err
		}
		return pagedDownloads{Data: rows, Meta: helper.BuildMeta(total, p)}, nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data unduhan")
	}
	return helper.JsonList(c, "ok", out.Data, out.Meta)
}

func (dc *DownloadController) publicBySlug(c *fiber.Ctx) (*model.DownloadModel, error) {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return nil, err
	}
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	var d model.DownloadModel
	if err := dc.DB.WithContext(c.UserContext()).
		Where("download_instansi_id = ? AND LOWER(download_slug) = ? AND download_is_published = TRUE", inst.ID, slug).
		First(&d).Error; err != nil {
		return nil, helper.DBError(err, "File unduhan tidak ditemukan")
	}
	return &d, nil
}

// GET /api/public/:instansi_slug/downloads/:slug
func (dc *DownloadController) PublicGet(c *fiber.Ctx) error {
	d, err := dc.publicBySlug(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", d)
}

// GET /api/public/:instansi_slug/downloads/:slug/file → counter +1 lalu 302 ke OSS
func (dc *DownloadController) File(c *fiber.Ctx) error {
	d, err := dc.publicBySlug(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := dc.DB.WithContext(c.UserContext()).Model(&model.DownloadModel{}).
		Where("download_id = ?", d.ID).
		UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		log.Printf("[DownloadController] counter %s gagal: %v", d.ID, err)
	}
	return c.Redirect(d.FileURL, fiber.StatusFound)
}
