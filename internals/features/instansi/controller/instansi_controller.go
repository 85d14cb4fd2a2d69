package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/instansi/dto"
	"sekolahku_backend/internals/features/instansi/model"
	"sekolahku_backend/internals/features/instansi/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

type InstansiController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Storage   helperOSS.Storage
}

func NewInstansiController(db *gorm.DB, storage helperOSS.Storage) *InstansiController {
	return &InstansiController{DB: db, Validator: validator.New(), Storage: storage}
}

/* ===================== OWNER ===================== */

// POST /api/o/instansi
func (ic *InstansiController) Create(c *fiber.Ctx) error {
	var req dto.CreateInstansiRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ic.Validator, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	slug, err := helper.UniqueSlugFrom(ctx, ic.DB, "instansi", "instansi_slug", req.Slug, req.Name,
		func(q *gorm.DB) *gorm.DB { return q.Where("instansi_deleted_at IS NULL") })
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat slug")
	}

	row := req.ToModel(slug)
	if err := ic.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, ""))
	}
	log.Printf("[InstansiController] instansi %s (%s) dibuat", row.Slug, row.ID)
	return helper.JsonCreated(c, "Instansi berhasil dibuat", row)
}

// GET /api/o/instansi?q=&is_active=
func (ic *InstansiController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := ic.DB.WithContext(c.UserContext()).Model(&model.InstansiModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("instansi_name ILIKE ?", "%"+s+"%")
	}
	if b := helper.ParseBoolQuery(c.Query("is_active")); b != nil {
		q = q.Where("instansi_is_active = ?", *b)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.InstansiModel
	order := p.SafeOrder(map[string]string{"created_at": "instansi_created_at", "name": "instansi_name"}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

func (ic *InstansiController) byID(c *fiber.Ctx, id uuid.UUID) (*model.InstansiModel, error) {
	var row model.InstansiModel
	if err := ic.DB.WithContext(c.UserContext()).First(&row, "instansi_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Instansi tidak ditemukan")
	}
	return &row, nil
}

// GET /api/o/instansi/:id
func (ic *InstansiController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := ic.byID(c, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// PATCH /api/o/instansi/:id
func (ic *InstansiController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return ic.patch(c, id, true)
}

// DELETE /api/o/instansi/:id
func (ic *InstansiController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := ic.byID(c, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := ic.DB.WithContext(c.UserContext()).Delete(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus instansi")
	}
	return helper.JsonDeleted(c, "Instansi dihapus", fiber.Map{"instansi_id": row.ID})
}

/* ===================== ADMIN (instansi sendiri) ===================== */

// GET /api/a/instansi
func (ic *InstansiController) GetMine(c *fiber.Ctx) error {
	id, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	row, err := ic.byID(c, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", row)
}

// PATCH /api/a/instansi (JSON atau multipart dengan field logo)
func (ic *InstansiController) PatchMine(c *fiber.Ctx) error {
	if err := helperAuth.EnsureAdmin(c, "profil instansi"); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	id, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return ic.patch(c, id, helperAuth.IsOwner(c))
}

func (ic *InstansiController) patch(c *fiber.Ctx, id uuid.UUID, allowActive bool) error {
	row, err := ic.byID(c, id)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateInstansiRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ic.Validator, &req); !ok {
		return err
	}
	updates := req.Apply(allowActive)

	ctx := c.UserContext()
	var oldLogo string
	if fh := helperOSS.FormFile(c, "logo", "instansi_logo"); fh != nil {
		if err := helperOSS.RequireStorage(ic.Storage); err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		up, err := ic.Storage.UploadImageAsWebP(ctx, "instansi/"+row.ID.String()+"/logo", fh)
		if err != nil {
			return helper.JsonErrorFrom(c, err)
		}
		updates["instansi_logo_url"] = up.URL
		if row.LogoURL != nil {
			oldLogo = *row.LogoURL
		}
	}

	if len(updates) > 0 {
		if err := ic.DB.WithContext(ctx).Model(row).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui instansi")
		}
	}
	if oldLogo != "" {
		if _, err := ic.Storage.MoveToTrash(ctx, oldLogo); err != nil {
			log.Printf("[InstansiController] trash logo lama gagal: %v", err)
		}
	}
	return helper.JsonUpdated(c, "Instansi diperbarui", row)
}

/* ===================== PUBLIC ===================== */

// GET /api/public/:instansi_slug
func (ic *InstansiController) GetPublic(c *fiber.Ctx) error {
	m, err := service.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToPublic(*m))
}
