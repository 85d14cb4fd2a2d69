package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithLocals(t *testing.T, locals map[string]any, fn func(c *fiber.Ctx) error) int {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		return fn(c)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestEnsureSameInstansi(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()

	tests := []struct {
		name   string
		locals map[string]any
		row    uuid.UUID
		ok     bool
	}{
		{name: "same tenant", locals: map[string]any{LocInstansiID: mine.String(), LocRole: "admin"}, row: mine, ok: true},
		{name: "other tenant", locals: map[string]any{LocInstansiID: mine.String(), LocRole: "teacher"}, row: other, ok: false},
		{name: "owner bypass", locals: map[string]any{LocRole: "owner"}, row: other, ok: true},
		{name: "no tenant", locals: map[string]any{LocRole: "student"}, row: mine, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runWithLocals(t, tt.locals, func(c *fiber.Ctx) error {
				err := EnsureSameInstansi(c, tt.row)
				assert.Equal(t, tt.ok, err == nil)
				return nil
			})
		})
	}
}

func TestRoleChecks(t *testing.T) {
	runWithLocals(t, map[string]any{LocRole: "Teacher"}, func(c *fiber.Ctx) error {
		assert.True(t, IsTeacher(c))
		assert.True(t, IsStaff(c))
		assert.False(t, IsStudent(c))
		assert.NoError(t, EnsureStaff(c, "kursus"))
		assert.Error(t, EnsureAdmin(c, "kursus"))
		return nil
	})
	runWithLocals(t, map[string]any{LocRole: "student"}, func(c *fiber.Ctx) error {
		err := EnsureStaff(c, "kursus")
		require.Error(t, err)
		assert.Equal(t, fiber.StatusForbidden, err.(*fiber.Error).Code)
		return nil
	})
}

func TestGetUserID(t *testing.T) {
	id := uuid.New()
	runWithLocals(t, map[string]any{LocUserID: id}, func(c *fiber.Ctx) error {
		got, err := GetUserID(c)
		assert.NoError(t, err)
		assert.Equal(t, id, got)
		return nil
	})
	runWithLocals(t, map[string]any{LocUserID: "bukan-uuid"}, func(c *fiber.Ctx) error {
		_, err := GetUserID(c)
		assert.ErrorIs(t, err, ErrUnauthenticated)
		return nil
	})
}

func TestHmacHexStable(t *testing.T) {
	a := HmacHex("token", "secret")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HmacHex("token", "secret"))
	assert.NotEqual(t, a, HmacHex("token", "other"))
}

func TestResolveInstansiID(t *testing.T) {
	mine := uuid.New()
	picked := uuid.New()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if r := c.Get("X-Role"); r != "" {
			c.Locals(LocRole, r)
		}
		if v := c.Get("X-Token-Instansi"); v != "" {
			c.Locals(LocInstansiID, v)
		}
		id, err := ResolveInstansiID(c)
		if err != nil {
			return c.SendStatus(err.(*fiber.Error).Code)
		}
		return c.SendString(id.String())
	})

	tests := []struct {
		name    string
		headers map[string]string
		query   string
		code    int
	}{
		{name: "token tenant", headers: map[string]string{"X-Role": "admin", "X-Token-Instansi": mine.String()}, code: 200},
		{name: "owner query", headers: map[string]string{"X-Role": "owner"}, query: "?instansi_id=" + picked.String(), code: 200},
		{name: "owner header", headers: map[string]string{"X-Role": "owner", "X-Instansi-ID": picked.String()}, code: 200},
		{name: "owner missing", headers: map[string]string{"X-Role": "owner"}, code: 400},
		{name: "teacher missing", headers: map[string]string{"X-Role": "teacher"}, query: "?instansi_id=" + picked.String(), code: 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}
