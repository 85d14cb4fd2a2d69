package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "sekolahku_backend/internals/features/users/auth/dto"
	authService "sekolahku_backend/internals/features/users/auth/service"
	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: validator.New()}
}

func toResponses(rows []model.UserModel) []authDTO.UserResponse {
	out := make([]authDTO.UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, authDTO.FromUser(u))
	}
	return out
}

/* =========================================================
   POST /api/a/users  (admin: teacher/student; owner: + admin)
========================================================= */
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, uc.Validator, &req); !ok {
		return err
	}
	if !service.CanAssignRole(helperAuth.GetRole(c), req.Role) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak boleh membuat akun dengan role "+req.Role)
	}
	if err := authService.ValidatePassword(req.Password); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"Password": {err.Error()}})
	}

	instansiID, err := helperAuth.GetInstansiID(c)
	if helperAuth.IsOwner(c) {
		if req.InstansiID == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "instansi_id wajib diisi")
		}
		instansiID, err = *req.InstansiID, nil
	}
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}

	hash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}
	row := req.ToModel(instansiID, hash)
	if err := uc.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}
	return helper.JsonCreated(c, "User berhasil dibuat", authDTO.FromUser(row))
}

/* =========================================================
   GET /api/a/users?role=&q=&is_active=
========================================================= */
func (uc *UserController) List(c *fiber.Ctx) error {
	instansiID, err := helperAuth.ResolveInstansiID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{}).Where("instansi_id = ?", instansiID)
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR email LIKE ?", like, like)
	}
	if b := helper.ParseBoolQuery(c.Query("is_active")); b != nil {
		q = q.Where("is_active = ?", *b)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}
	var rows []model.UserModel
	order := p.SafeOrder(map[string]string{"created_at": "created_at", "name": "name", "email": "email"}, "created_at")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonList(c, "ok", toResponses(rows), helper.BuildMeta(total, p))
}

func (uc *UserController) findScoped(c *fiber.Ctx) (*model.UserModel, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var u model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).First(&u, "id = ?", id).Error; err != nil {
		return nil, helper.DBError(err, "User tidak ditemukan")
	}
	if u.InstansiID == nil {
		if !helperAuth.IsOwner(c) {
			return nil, helperAuth.ErrInstansiMismatch
		}
	} else if err := helperAuth.EnsureSameInstansi(c, *u.InstansiID); err != nil {
		return nil, err
	}
	return &u, nil
}

// GET /api/a/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	u, err := uc.findScoped(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonOK(c, "ok", authDTO.FromUser(*u))
}

// PATCH /api/a/users/:id
func (uc *UserController) Patch(c *fiber.Ctx) error {
	u, err := uc.findScoped(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, uc.Validator, &req); !ok {
		return err
	}

	actor := helperAuth.GetRole(c)
	// admin tidak boleh mengubah sesama admin
	if !service.CanAssignRole(actor, u.Role) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak boleh mengubah akun ini")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !service.CanAssignRole(actor, *req.Role) {
			return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak boleh memberi role "+*req.Role)
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		if err := authService.ValidatePassword(*req.Password); err != nil {
			return helper.JsonValidationError(c, map[string][]string{"Password": {err.Error()}})
		}
		hash, err := authService.HashPassword(*req.Password)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
		}
		updates["password"] = hash
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", authDTO.FromUser(*u))
	}
	if err := uc.DB.WithContext(c.UserContext()).Model(u).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui user")
	}
	return helper.JsonUpdated(c, "User diperbarui", authDTO.FromUser(*u))
}

// DELETE /api/a/users/:id (soft delete)
func (uc *UserController) Delete(c *fiber.Ctx) error {
	u, err := uc.findScoped(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	if !service.CanAssignRole(helperAuth.GetRole(c), u.Role) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak boleh menghapus akun ini")
	}
	if err := uc.DB.WithContext(c.UserContext()).Delete(u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	return helper.JsonDeleted(c, "User dihapus", fiber.Map{"id": u.ID})
}
