package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsUniqueViolation: SQLSTATE 23505, dengan fallback cek string (driver lain / error terbungkus).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "sqlstate 23505") ||
		strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// DBError memetakan error gorm ke *fiber.Error (404 / 409 / 500).
func DBError(err error, notFoundMsg string) *fiber.Error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	case IsUniqueViolation(err):
		return fiber.NewError(fiber.StatusConflict, "Data sudah ada (duplikat)")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

func StrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
