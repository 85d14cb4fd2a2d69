package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	instansiService "sekolahku_backend/internals/features/instansi/service"
	"sekolahku_backend/internals/features/public_pages/ppdb/dto"
	"sekolahku_backend/internals/features/public_pages/ppdb/model"
	"sekolahku_backend/internals/features/public_pages/ppdb/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/mailer"
)

var statusLabel = map[string]string{
	model.StatusVerified:  "telah diverifikasi",
	model.StatusAccepted:  "DITERIMA",
	model.StatusRejected:  "belum dapat kami terima",
	model.StatusCancelled: "dibatalkan",
}

type PPDBController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Mailer    mailer.Mailer
	Gateway   service.Gateway
}

func NewPPDBController(db *gorm.DB, m mailer.Mailer, gw service.Gateway) *PPDBController {
	return &PPDBController{DB: db, Validator: validator.New(), Mailer: m, Gateway: gw}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, service.ErrPPDBClosed):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDuplicateNISN), errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrPaymentPending), errors.Is(err, service.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoFee), errors.Is(err, service.ErrNotPayable):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGatewayOff):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrBadSignature):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	}
	return helper.DBError(err, "Pendaftaran tidak ditemukan")
}

/* ===================== PUBLIC ===================== */

// POST /api/public/:instansi_slug/ppdb
func (pc *PPDBController) Register(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if !inst.PPDBOpen {
		return helper.JsonErrorFrom(c, mapErr(service.ErrPPDBClosed))
	}
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, pc.Validator, &req); !ok {
		return err
	}

	now := time.Now()
	fee := inst.PPDBFeeIDR
	if fee == 0 {
		fee = int64(configs.GetEnvInt("PPDB_FEE_IDR", 0))
	}
	reg := req.ToModel(inst.ID, service.AcademicYearFor(now), fee)
	if err := service.Register(c.UserContext(), pc.DB, &reg, now); err != nil {
		return helper.JsonErrorFrom(c, mapErr(err))
	}

	mailer.SendAsync(pc.Mailer, mailer.Message{
		ToName:  reg.ParentName,
		ToEmail: reg.ParentEmail,
		Subject: "Pendaftaran PPDB " + inst.Name,
		Text: fmt.Sprintf("Terima kasih, pendaftaran %s sudah kami terima.\nNomor pendaftaran: %s\nTahun ajaran: %s\n\nSimpan nomor ini untuk cek status dan pembayaran.",
			reg.StudentName, reg.RegistrationNumber, reg.AcademicYear),
	})
	return helper.JsonCreated(c, "Pendaftaran berhasil", dto.ToPublicStatus(&reg))
}

func (pc *PPDBController) lookup(c *fiber.Ctx, instansiID uuid.UUID, req dto.LookupRequest) (*model.PPDBRegistrationModel, error) {
	var reg model.PPDBRegistrationModel
	if err := pc.DB.WithContext(c.UserContext()).
		Where("ppdb_registration_instansi_id = ? AND ppdb_registration_number = ?",
			instansiID, strings.ToUpper(strings.TrimSpace(req.RegistrationNumber))).
		First(&reg).Error; err != nil {
		return nil, helper.DBError(err, "Pendaftaran tidak ditemukan")
	}
	// tanggal lahir salah → 404, tidak membocorkan keberadaan nomor
	if !req.Matches(&reg) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Pendaftaran tidak ditemukan")
	}
	return &reg, nil
}

// GET /api/public/:instansi_slug/ppdb/status?registration_number=&birth_date=
func (pc *PPDBController) Status(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.LookupRequest
	if err := c.QueryParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, pc.Validator, &req); !ok {
		return err
	}
	reg, err := pc.lookup(c, inst.ID, req)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToPublicStatus(reg))
}

// POST /api/public/:instansi_slug/ppdb/payment {registration_number, birth_date}
func (pc *PPDBController) CreatePayment(c *fiber.Ctx) error {
	inst, err := instansiService.PublicInstansi(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.LookupRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, pc.Validator, &req); !ok {
		return err
	}
	reg, err := pc.lookup(c, inst.ID, req)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if err := service.CreatePayment(c.UserContext(), pc.DB, pc.Gateway, reg, time.Now()); err != nil {
		var fe *fiber.Error
		if errors.As(mapErr(err), &fe) && fe.Code == fiber.StatusInternalServerError {
			return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
		}
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	return helper.JsonCreated(c, "Transaksi pembayaran dibuat", fiber.Map{
		"registration_number": reg.RegistrationNumber,
		"order_id":            reg.PaymentOrderID,
		"snap_token":          reg.PaymentToken,
		"redirect_url":        reg.PaymentRedirectURL,
		"amount":              reg.FeeAmountIDR,
	})
}

// POST /api/public/ppdb/payments/notify (webhook Midtrans)
func (pc *PPDBController) Notify(c *fiber.Ctx) error {
	if pc.Gateway == nil {
		return helper.JsonErrorFrom(c, mapErr(service.ErrGatewayOff))
	}
	var n service.Notification
	if err := c.BodyParser(&n); err != nil || n.OrderID == "" {
		log.Printf("[PPDBController] webhook body tidak valid: %q", string(c.Body()))
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	reg, err := service.HandleNotification(c.UserContext(), pc.DB, pc.Gateway.ServerKey(), n, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// order bukan milik PPDB: 200 supaya Midtrans tidak retry
			log.Printf("[PPDBController] order %s tidak dikenal", n.OrderID)
			return helper.JsonOK(c, "order tidak dikenal", nil)
		}
		return helper.JsonErrorFrom(c, mapErr(err))
	}
	return helper.JsonOK(c, "Notifikasi diproses", fiber.Map{
		"order_id":       n.OrderID,
		"payment_status": reg.PaymentStatus,
	})
}

/* ===================== ADMIN ===================== */

func (pc *PPDBController) load(c *fiber.Ctx) (*model.PPDBRegistrationModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var reg model.PPDBRegistrationModel
	if err := pc.DB.WithContext(c.UserContext()).First(&reg, "ppdb_registration_id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "Pendaftaran tidak ditemukan")
	}
	if err := helperAuth.EnsureSameInstansi(c, reg.InstansiID); err != nil {
		return nil, err
	}
	return &reg, nil
}

var ppdbSorts = map[string]string{
	"created_at": "ppdb_registration_created_at",
	"name":       "ppdb_registration_student_name",
	"number":     "ppdb_registration_number",
}

// GET /api/a/ppdb?status=&payment_status=&academic_year=&q=
func (pc *PPDBController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := pc.DB.WithContext(c.UserContext()).Model(&model.PPDBRegistrationModel{}).
		Where("ppdb_registration_instansi_id = ?", instansiID)
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("ppdb_registration_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("payment_status")); v != "" {
		q = q.Where("ppdb_registration_payment_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("academic_year")); v != "" {
		q = q.Where("ppdb_registration_academic_year = ?", v)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("ppdb_registration_student_name ILIKE ? OR ppdb_registration_number ILIKE ? OR ppdb_registration_nisn = ?", like, like, s)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.PPDBRegistrationModel
	if err := q.Order(p.SafeOrder(ppdbSorts, "created_at")).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildMeta(total, p))
}

// GET /api/a/ppdb/summary?academic_year= → jumlah per status
func (pc *PPDBController) Summary(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	q := pc.DB.WithContext(c.UserContext()).Model(&model.PPDBRegistrationModel{}).
		Where("ppdb_registration_instansi_id = ?", instansiID)
	if v := strings.TrimSpace(c.Query("academic_year")); v != "" {
		q = q.Where("ppdb_registration_academic_year = ?", v)
	}
	type row struct {
		Status string `json:"status"`
		Total  int64  `json:"total"`
	}
	var rows []row
	if err := q.Select("ppdb_registration_status AS status, COUNT(*) AS total").
		Group("ppdb_registration_status").Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ringkasan")
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/a/ppdb/:id
func (pc *PPDBController) Get(c *fiber.Ctx) error {
	reg, err := pc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", reg)
}

// PATCH /api/a/ppdb/:id/status {status, notes}
func (pc *PPDBController) Transition(c *fiber.Ctx) error {
	reg, err := pc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, pc.Validator, &req); !ok {
		return err
	}
	if !service.CanTransition(reg.Status, req.Status) {
		return helper.JsonErrorFrom(c, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Status %s tidak bisa diubah ke %s", reg.Status, req.Status)))
	}
	updates := map[string]any{"ppdb_registration_status": req.Status}
	if req.Notes != nil {
		updates["ppdb_registration_notes"] = req.Notes
	}
	// guard di WHERE: transisi paralel yang kalah tidak menimpa
	res := pc.DB.WithContext(c.UserContext()).Model(&model.PPDBRegistrationModel{}).
		Where("ppdb_registration_id = ? AND ppdb_registration_status = ?", reg.ID, reg.Status).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui status")
	}
	if res.RowsAffected == 0 {
		return helper.JsonErrorFrom(c, mapErr(service.ErrInvalidTransition))
	}
	reg.Status = req.Status
	if req.Notes != nil {
		reg.Notes = req.Notes
	}

	text := fmt.Sprintf("Pendaftaran %s (%s) %s.", reg.StudentName, reg.RegistrationNumber, statusLabel[req.Status])
	if reg.Notes != nil && *reg.Notes != "" {
		text += "\n\nCatatan: " + *reg.Notes
	}
	mailer.SendAsync(pc.Mailer, mailer.Message{
		ToName:  reg.ParentName,
		ToEmail: reg.ParentEmail,
		Subject: "Status PPDB " + reg.RegistrationNumber,
		Text:    text,
	})
	return helper.JsonUpdated(c, "Status pendaftaran diperbarui", reg)
}

// PATCH /api/a/ppdb/:id/payment {payment_status: paid|waived} → bayar tunai / pembebasan
func (pc *PPDBController) ManualPayment(c *fiber.Ctx) error {
	reg, err := pc.load(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.ManualPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, pc.Validator, &req); !ok {
		return err
	}
	if !service.ApplyPaymentStatus(reg, req.PaymentStatus, time.Now()) {
		return helper.JsonErrorFrom(c, fiber.NewError(fiber.StatusConflict, "Status pembayaran sudah final"))
	}
	if err := pc.DB.WithContext(c.UserContext()).Model(reg).Updates(map[string]any{
		"ppdb_registration_payment_status": reg.PaymentStatus,
		"ppdb_registration_paid_at":        reg.PaidAt,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui pembayaran")
	}
	return helper.JsonUpdated(c, "Pembayaran diperbarui", reg)
}
