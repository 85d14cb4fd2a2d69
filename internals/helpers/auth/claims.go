package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// Kunci Locals yang diisi middleware AuthJWT.
const (
	LocUserID     = "user_id"
	LocInstansiID = "instansi_id"
	LocRole       = "role"
	LocRawToken   = "raw_token"
	LocClaims     = "jwt_claims"
)

var (
	ErrUnauthenticated  = fiber.NewError(fiber.StatusUnauthorized, "Silakan login terlebih dahulu")
	ErrInstansiMissing  = fiber.NewError(fiber.StatusBadRequest, "Konteks instansi tidak ditemukan pada token")
	ErrInstansiMismatch = fiber.NewError(fiber.StatusForbidden, "Data bukan milik instansi Anda")
)

func localsString(c *fiber.Ctx, key string) string {
	switch v := c.Locals(key).(type) {
	case string:
		return strings.TrimSpace(v)
	case uuid.UUID:
		return v.String()
	default:
		return ""
	}
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(localsString(c, LocUserID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return id, nil
}

// GetInstansiID: tenant dari token. Owner global tidak punya instansi.
func GetInstansiID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(localsString(c, LocInstansiID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInstansiMissing
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	return strings.ToLower(localsString(c, LocRole))
}

func HasRole(c *fiber.Ctx, roles ...string) bool {
	r := GetRole(c)
	if r == "" {
		return false
	}
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func IsOwner(c *fiber.Ctx) bool   { return HasRole(c, constants.RoleOwner) }
func IsAdmin(c *fiber.Ctx) bool   { return HasRole(c, constants.RoleAdmin) }
func IsTeacher(c *fiber.Ctx) bool { return HasRole(c, constants.RoleTeacher) }
func IsStudent(c *fiber.Ctx) bool { return HasRole(c, constants.RoleStudent) }

// IsStaff: admin/teacher instansi (owner dianggap staff juga).
func IsStaff(c *fiber.Ctx) bool {
	return HasRole(c, constants.StaffRoles...)
}

// EnsureSameInstansi memastikan row milik tenant pada token.
func EnsureSameInstansi(c *fiber.Ctx, rowInstansiID uuid.UUID) error {
	if IsOwner(c) {
		return nil
	}
	mine, err := GetInstansiID(c)
	if err != nil {
		return err
	}
	if mine != rowInstansiID {
		return ErrInstansiMismatch
	}
	return nil
}

// EnsureStaff: admin/teacher/owner saja.
func EnsureStaff(c *fiber.Ctx, feature string) error {
	if IsStaff(c) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorTeacher(feature))
}

// EnsureAdmin: admin instansi atau owner.
func EnsureAdmin(c *fiber.Ctx, feature string) error {
	if HasRole(c, constants.RoleAdmin, constants.RoleOwner) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
}

// GetRawAccessToken: Locals (diisi middleware) → Bearer header → cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := localsString(c, LocRawToken); v != "" {
		return v
	}
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}

// ResolveInstansiID: tenant dari token; owner (tanpa tenant) memilih lewat
// query ?instansi_id= atau header X-Instansi-ID.
func ResolveInstansiID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, err := GetInstansiID(c); err == nil {
		return id, nil
	}
	if !IsOwner(c) {
		return uuid.Nil, ErrInstansiMissing
	}
	raw := strings.TrimSpace(c.Query("instansi_id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Get("X-Instansi-ID"))
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Owner wajib memilih instansi_id")
	}
	return id, nil
}
