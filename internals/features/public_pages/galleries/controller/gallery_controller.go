package controller

import (
	"log"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/galleries/dto"
	"sekolahku_backend/internals/features/public_pages/galleries/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/cache"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

const maxImagesPerUpload = 20

var gallerySorts = map[string]string{
	"created_at": "gallery_created_at",
	"event_date": "gallery_event_date",
	"title":      "gallery_title",
}

type GalleryController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage
	Cache     *cache.Cache
}

func NewGalleryController(db *gorm.DB, storage helperOSS.Storage, c *cache.Cache) *GalleryController {
	return &GalleryController{DB: db, Validator: validator.New(), Storage: storage, Cache: c}
}

func (gc *GalleryController) invalidate(c *fiber.Ctx, g *model.GalleryModel) {
	gc.Cache.InvalidatePrefix(c.UserContext(), gc.Cache.Key("galleries", g.InstansiID.String()))
}

func (gc *GalleryController) trash(c *fiber.Ctx, urls ...string) {
	if gc.Storage == nil {
		return
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, err := gc.Storage.MoveToTrash(c.UserContext(), u); err != nil {
			log.Printf("[GalleryController] trash %s gagal: %v", u, err)
		}
	}
}

func (gc *GalleryController) load(c *fiber.Ctx) (*model.GalleryModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var g model.GalleryModel
	if err := gc.DB.WithContext(c.UserContext()).First(&g, "gallery_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Galeri tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, g.InstansiID); err != nil {
		return nil, err
	}
	return &g, nil
}

/* ===================== GALERI ===================== */

// POST /api/a/galleries
func (gc *GalleryController) Create(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, gc.Validator, &req); !ok {
		return err
	}
	ctx := c.UserContext()
	slug, err := helper.UniqueSlugFrom(ctx, gc.DB, "galleries", "gallery_slug", req.Slug, req.Title,
		func(q *gorm.DB) *gorm.DB {
			return q.Where("gallery_instansi_id = ? AND gallery_deleted_at IS NULL", instansiID)
		})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	row := req.ToModel(instansiID, slug)
	if err := gc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	gc.invalidate(c, &row)
	return helper.JsonCreated(c, "Galeri dibuat", row)
}

// GET /api/a/galleries
func (gc *GalleryController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := gc.DB.WithContext(c.UserContext()).Model(&model.GalleryModel{}).Where("gallery_instansi_id = ?", instansiID)
	if v := helper.ParseBoolQuery(c.Query("is_published")); v != nil {
		q = q.Where("gallery_is_published = ?", *v)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("gallery_title ILIKE ?", "%"+s+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.GalleryModel
	if err := q.Order(p.SafeOrder(gallerySorts, "created_at")).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/galleries/:id (beserta item)
func (gc *GalleryController) Get(c *fiber.Ctx) error {
	g, err := gc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := gc.DB.WithContext(c.UserContext()).
		Where("gallery_item_gallery_id = ?", g.ID).
		Order("gallery_item_order ASC, gallery_item_created_at ASC").
		Find(&g.Items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil foto")
	}
	return helper.JsonOK(c, "ok", g)
}

// PATCH /api/a/galleries/:id
func (gc *GalleryController) Patch(c *fiber.Ctx) error {
	g, err := gc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, gc.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", g)
	}
	if err := gc.DB.WithContext(c.UserContext()).Model(g).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui galeri")
	}
	gc.invalidate(c, g)
	return helper.JsonUpdated(c, "Galeri diperbarui", g)
}

// PUT /api/a/galleries/:id/cover (multipart)
func (gc *GalleryController) UploadCover(c *fiber.Ctx) error {
	g, err := gc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(gc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	fh := helperOSS.FormFile(c, "cover", "image", "file")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gambar cover wajib diunggah")
	}
	up, err := gc.Storage.UploadImageAsWebP(c.UserContext(), "galleries/"+g.InstansiID.String()+"/covers", fh)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	old := ""
	if g.CoverURL != nil {
		old = *g.CoverURL
	}
	if err := gc.DB.WithContext(c.UserContext()).Model(g).Update("gallery_cover_url", up.URL).Error; err != nil {
		gc.trash(c, up.URL)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan cover")
	}
	gc.trash(c, old)
	gc.invalidate(c, g)
	return helper.JsonUpdated(c, "Cover diperbarui", g)
}

// DELETE /api/a/galleries/:id (item ikut soft delete)
func (gc *GalleryController) Delete(c *fiber.Ctx) error {
	g, err := gc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	err = gc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gallery_item_gallery_id = ?", g.ID).Delete(&model.GalleryItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(g).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus galeri")
	}
	gc.invalidate(c, g)
	return helper.JsonDeleted(c, "Galeri dihapus", fiber.Map{"gallery_id": g.ID})
}

/* ===================== FOTO ===================== */

func uploadedImages(c *fiber.Ctx) []*multipart.FileHeader {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["images"]; len(files) > 0 {
			return files
		}
	}
	if fh := helperOSS.FormFile(c, "image", "file"); fh != nil {
		return []*multipart.FileHeader{fh}
	}
	return nil
}

// POST /api/a/galleries/:id/items (multipart: images[] / image; caption opsional untuk 1 foto)
// Tiap foto → WebP + thumbnail 400px.
func (gc *GalleryController) AddItems(c *fiber.Ctx) error {
	g, err := gc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(gc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	files := uploadedImages(c)
	if len(files) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Minimal satu foto wajib diunggah")
	}
	if len(files) > maxImagesPerUpload {
		return helper.JsonError(c, fiber.StatusBadRequest, "Maksimal 20 foto per unggahan")
	}

	ctx := c.UserContext()
	var next int
	if err := gc.DB.WithContext(ctx).Model(&model.GalleryItemModel{}).
		Where("gallery_item_gallery_id = ?", g.ID).
		Select("COALESCE(MAX(gallery_item_order), 0)").Scan(&next).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca urutan")
	}

	dir := "galleries/" + g.InstansiID.String() + "/" + g.ID.String()
	var caption *string
	if len(files) == 1 {
		if s := strings.TrimSpace(c.FormValue("caption")); s != "" {
			caption = &s
		}
	}
	items := make([]model.GalleryItemModel, 0, len(files))
	var uploaded []string
	for i, fh := range files {
		img, thumb, err := gc.Storage.UploadImageWithThumb(ctx, dir, fh, dto.ThumbSize)
		if err != nil {
			gc.trash(c, uploaded...)
			return helper.JsonErrorFrom(c, err)
		}
		uploaded = append(uploaded, img.URL, thumb.URL)
		items = append(items, model.GalleryItemModel{
			GalleryID:    g.ID,
			InstansiID:   g.InstansiID,
			ImageURL:     img.URL,
			ThumbnailURL: thumb.URL,
			Caption:      caption,
			Order:        next + i + 1,
		})
	}

	err = gc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Model(&model.GalleryModel{}).Where("gallery_id = ?", g.ID).
			UpdateColumn("gallery_item_count", gorm.Expr("gallery_item_count + ?", len(items))).Error
	})
	if err != nil {
		gc.trash(c, uploaded...)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan foto")
	}
	log.Printf("[GalleryController] %d foto ditambahkan ke galeri %s", len(items), g.ID)
	gc.invalidate(c, g)
	return helper.JsonCreated(c, "Foto ditambahkan", items)
}

func (gc *GalleryController) loadItem(c *fiber.Ctx) (*model.GalleryItemModel, error) {
	id, err := helper.ParseUUIDParam(c, "item_id")
	if err != nil {
		return nil, err
	}
	var it model.GalleryItemModel
	if err := gc.DB.WithContext(c.UserContext()).First(&it, "gallery_item_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Foto tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, it.InstansiID); err != nil {
		return nil, err
	}
	return &it, nil
}

// PATCH /api/a/gallery-items/:item_id
func (gc *GalleryController) PatchItem(c *fiber.Ctx) error {
	it, err := gc.loadItem(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, gc.Validator, &req); !ok {
		return err
	}
	updates := req.Apply()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", it)
	}
	if err := gc.DB.WithContext(c.UserContext()).Model(it).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui foto")
	}
	gc.Cache.InvalidatePrefix(c.UserContext(), gc.Cache.Key("galleries", it.InstansiID.String()))
	return helper.JsonUpdated(c, "Foto diperbarui", it)
}

// DELETE /api/a/gallery-items/:item_id (file dipindah ke trash OSS)
func (gc *GalleryController) DeleteItem(c *fiber.Ctx) error {
	it, err := gc.loadItem(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	err = gc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(it)
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		return tx.Model(&model.GalleryModel{}).Where("gallery_id = ?", it.GalleryID).
			UpdateColumn("gallery_item_count", gorm.Expr("GREATEST(gallery_item_count - 1, 0)")).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus foto")
	}
	gc.trash(c, it.ImageURL, it.ThumbnailURL)
	gc.Cache.InvalidatePrefix(c.UserContext(), gc.Cache.Key("galleries", it.InstansiID.String()))
	return helper.JsonDeleted(c, "Foto dihapus", fiber.Map{"gallery_item_id": it.ID})
}
