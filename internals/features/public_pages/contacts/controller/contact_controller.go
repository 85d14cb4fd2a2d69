package controller

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	instansiService "sekolahku_backend/internals/features/instansi/service"
	"sekolahku_backend/internals/features/public_pages/contacts/dto"
	"sekolahku_backend/internals/features/public_pages/contacts/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/mailer"
)

type ContactController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Mailer    mailer.Mailer
}

func NewContactController(db *gorm.DB, m mailer.Mailer) *ContactController {
	return &ContactController{DB: db, Validator: validator.New(), Mailer: m}
}

// POST /api/public/:instansi_slug/contacts
func (cc *ContactController) Submit(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.SubmitContactRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if req.IsSpam() {
		log.Printf("[ContactController] honeypot terisi dari ip=%s, diabaikan", c.IP())
		return helper.JsonCreated(c, "Pesan terkirim", nil)
	}
	if ok, err := helper.ValidateStruct(c, cc.Validator, &req); !ok {
		return err
	}
	row := req.ToModel(inst.ID, c.IP())
	if err := cc.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pesan")
	}

	to := configs.GetEnv("MAIL_ADMIN_TO")
	if inst.Email != nil && *inst.Email != "" {
		to = *inst.Email
	}
	if to != "" {
		mailer.SendAsync(cc.Mailer, mailer.Message{
			ToName:  inst.Name,
			ToEmail: to,
			ReplyTo: row.Email,
			Subject: "Pesan kontak: " + row.Subject,
			Text: fmt.Sprintf("Dari: %s <%s>\nTelepon: %s\n\n%s",
				row.Name, row.Email, deref(row.Phone), row.Message),
		})
	}
	return helper.JsonCreated(c, "Pesan terkirim", fiber.Map{"contact_message_id": row.ID})
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func (cc *ContactController) load(c *fiber.Ctx) (*model.ContactMessageModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var m model.ContactMessageModel
	if err := cc.DB.WithContext(c.UserContext()).First(&m, "contact_message_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Pesan tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, m.InstansiID); err != nil {
		return nil, err
	}
	return &m, nil
}

// GET /api/a/contacts?status=&q=
func (cc *ContactController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := cc.DB.WithContext(c.UserContext()).Model(&model.ContactMessageModel{}).
		Where("contact_message_instansi_id = ?", instansiID)
	if st := strings.TrimSpace(c.Query("status")); st != "" {
		if !model.IsValidContactStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Status tidak dikenal")
		}
		q = q.Where("contact_message_status = ?", st)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("contact_message_name ILIKE ? OR contact_message_email ILIKE ? OR contact_message_subject ILIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.ContactMessageModel
	if err := q.Order(p.SafeOrder(map[string]string{"created_at": "contact_message_created_at"}, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/contacts/:id → pesan baru otomatis jadi read
func (cc *ContactController) Get(c *fiber.Ctx) error {
	m, err := cc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if m.Status == model.ContactNew {
		if err := cc.DB.WithContext(c.UserContext()).Model(m).
			Updates(dto.StatusUpdates(*m, model.ContactRead, time.Now())).Error; err != nil {
			log.Printf("[ContactController] tandai read %s gagal: %v", m.ID, err)
		}
	}
	return helper.JsonOK(c, "ok", m)
}

// PATCH /api/a/contacts/:id/status
func (cc *ContactController) UpdateStatus(c *fiber.Ctx) error {
	m, err := cc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, cc.Validator, &req); !ok {
		return err
	}
	if err := cc.DB.WithContext(c.UserContext()).Model(m).
		Updates(dto.StatusUpdates(*m, req.Status, time.Now())).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status")
	}
	return helper.JsonUpdated(c, "Status pesan diperbarui", m)
}

// DELETE /api/a/contacts/:id
func (cc *ContactController) Delete(c *fiber.Ctx) error {
	m, err := cc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := cc.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus pesan")
	}
	return helper.JsonDeleted(c, "Pesan dihapus", fiber.Map{"contact_message_id": m.ID})
}
