package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instansiService "sekolahku_backend/internals/features/instansi/service"
	"sekolahku_backend/internals/features/public_pages/news/dto"
	"sekolahku_backend/internals/features/public_pages/news/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/cache"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

var newsSorts = map[string]string{
	"created_at":   "news_created_at",
	"published_at": "news_published_at",
	"title":        "news_title",
	"views":        "news_view_count",
}

type NewsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage
	Cache     *cache.Cache
	TTL       time.Duration
}

func NewNewsController(db *gorm.DB, storage helperOSS.Storage, c *cache.Cache, ttl time.Duration) *NewsController {
	return &NewsController{DB: db, Validator: validator.New(), Storage: storage, Cache: c, TTL: ttl}
}

type pagedNews struct {
	Data []model.NewsModel `json:"data"`
	Meta helper.Meta       `json:"meta"`
}

// invalidate semua key news:<instansi>:* (list + slug)
func (nc *NewsController) invalidate(c *fiber.Ctx, n *model.NewsModel) {
	nc.Cache.InvalidatePrefix(c.UserContext(), nc.Cache.Key("news", n.InstansiID.String()))
}

func (nc *NewsController) load(c *fiber.Ctx) (*model.NewsModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var n model.NewsModel
	if err := nc.DB.WithContext(c.UserContext()).First(&n, "news_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Berita tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, n.InstansiID); err != nil {
		return nil, err
	}
	return &n, nil
}

/* ===================== ADMIN ===================== */

// POST /api/a/news
func (nc *NewsController) Create(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	me, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, nc.Validator, &req); !ok {
		return err
	}
	ctx := c.UserContext()
	slug, err := helper.UniqueSlugFrom(ctx, nc.DB, "news", "news_slug", req.Slug, req.Title,
		func(q *gorm.DB) *gorm.DB {
			return q.Where("news_instansi_id = ? AND news_deleted_at IS NULL", instansiID)
		})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}
	row := req.ToModel(instansiID, me, slug, time.Now())
	if err := nc.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	nc.invalidate(c, &row)
	return helper.JsonCreated(c, "Berita dibuat", row)
}

// GET /api/a/news?status=&tag=&q=
func (nc *NewsController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := nc.DB.WithContext(c.UserContext()).Model(&model.NewsModel{}).Where("news_instansi_id = ?", instansiID)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		q = q.Where("news_status = ?", st)
	}
	q = filterNews(q, c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.NewsModel
	if err := q.Order(p.SafeOrder(newsSorts, "created_at")).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

func filterNews(q *gorm.DB, c *fiber.Ctx) *gorm.DB {
	if tag := strings.ToLower(strings.TrimSpace(c.Query("tag"))); tag != "" {
		q = q.Where("? = ANY(news_tags)", tag)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("news_title ILIKE ? OR news_excerpt ILIKE ?", like, like)
	}
	return q
}

// GET /api/a/news/:id
func (nc *NewsController) Get(c *fiber.Ctx) error {
	n, err := nc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", n)
}

// PATCH /api/a/news/:id
func (nc *NewsController) Patch(c *fiber.Ctx) error {
	n, err := nc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, nc.Validator, &req); !ok {
		return err
	}
	if !req.Apply(n, time.Now()) {
		return helper.JsonOK(c, "Tidak ada perubahan", n)
	}
	if err := nc.DB.WithContext(c.UserContext()).Save(n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui berita")
	}
	nc.invalidate(c, n)
	return helper.JsonUpdated(c, "Berita diperbarui", n)
}

// PUT /api/a/news/:id/cover (multipart: cover) → WebP
func (nc *NewsController) UploadCover(c *fiber.Ctx) error {
	n, err := nc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := helperOSS.RequireStorage(nc.Storage); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	fh := helperOSS.FormFile(c, "cover", "image", "file")
	if fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Gambar cover wajib diunggah")
	}
	ctx := c.UserContext()
	up, err := nc.Storage.UploadImageAsWebP(ctx, "news/"+n.InstansiID.String(), fh)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	old := n.CoverURL
	if err := nc.DB.WithContext(ctx).Model(n).Update("news_cover_url", up.URL).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan cover")
	}
	if old != nil && *old != "" {
		if _, err := nc.Storage.MoveToTrash(ctx, *old); err != nil {
			log.Printf("[NewsController] trash cover lama gagal: %v", err)
		}
	}
	nc.invalidate(c, n)
	return helper.JsonUpdated(c, "Cover diperbarui", n)
}

// DELETE /api/a/news/:id
func (nc *NewsController) Delete(c *fiber.Ctx) error {
	n, err := nc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := nc.DB.WithContext(c.UserContext()).Delete(n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus berita")
	}
	nc.invalidate(c, n)
	return helper.JsonDeleted(c, "Berita dihapus", fiber.Map{"news_id": n.ID})
}

/* ===================== PUBLIC ===================== */

// GET /api/public/:instansi_slug/news?tag=&q=&page=
func (nc *NewsController) PublicList(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "published_at", "desc", helper.PublicOpts)
	key := nc.Cache.Key("news", inst.ID.String(), "list", string(c.Request().URI().QueryString()))

	var out pagedNews
	err = nc.Cache.CacheOrExecute(c.UserContext(), key, &out, nc.TTL, func() (any, error) {
		q := nc.DB.WithContext(c.UserContext()).Model(&model.NewsModel{}).
			Where("news_instansi_id = ? AND news_status = ?", inst.ID, model.NewsStatusPublished)
		q = filterNews(q, c)
		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, err
		}
		rows := []model.NewsModel{}
		if err := q.Order("news_published_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
			return nil, err
		}
		return pagedNews{Data: rows, Meta: helper.BuildMeta(total, p)}, nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil berita")
	}
	return helper.JsonList(c, "ok", out.Data, out.Meta)
}

// GET /api/public/:instansi_slug/news/:slug (view +1)
func (nc *NewsController) PublicGet(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	ctx := c.UserContext()
	key := nc.Cache.Key("news", inst.ID.String(), "slug", slug)

	var n model.NewsModel
	err = nc.Cache.CacheOrExecute(ctx, key, &n, nc.TTL, func() (any, error) {
		var row model.NewsModel
		if err := nc.DB.WithContext(ctx).
			Where("news_instansi_id = ? AND LOWER(news_slug) = ? AND news_status = ?", inst.ID, slug, model.NewsStatusPublished).
			First(&row).Error; err != nil {
			return nil, err
		}
		return row, nil
	})
	if err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, "Berita tidak ditemukan"))
	}
	if err := nc.DB.WithContext(ctx).Model(&model.NewsModel{}).Where("news_id = ?", n.ID).
		UpdateColumn("news_view_count", gorm.Expr("news_view_count + 1")).Error; err != nil {
		log.Printf("[NewsController] view +1 %s gagal: %v", n.ID, err)
	}
	return helper.JsonOK(c, "ok", n)
}
