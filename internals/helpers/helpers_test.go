package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "simple", in: "Berita Sekolah Hari Ini", want: "berita-sekolah-hari-ini"},
		{name: "diacritics", in: "Café Élève", want: "cafe-eleve"},
		{name: "symbols collapse", in: "  PPDB 2025 / 2026!!  ", want: "ppdb-2025-2026"},
		{name: "empty fallback", in: "***", want: "item"},
		{name: "max len trims hyphen", in: "abc def", max: 4, want: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in, tt.max))
		})
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "abc-2", withSuffix("abc", "-2", 10))
	assert.Equal(t, "abcd-2", withSuffix("abcdefgh", "-2", 6))
	assert.Equal(t, "x-2", withSuffix("---", "-2", 6))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("ERROR: duplicate key value violates unique constraint")))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestDBError(t *testing.T) {
	assert.Nil(t, DBError(nil, "x"))
	assert.Equal(t, fiber.StatusNotFound, DBError(gorm.ErrRecordNotFound, "tidak ada").Code)
	assert.Equal(t, fiber.StatusConflict, DBError(&pgconn.PgError{Code: "23505"}, "x").Code)
	assert.Equal(t, fiber.StatusInternalServerError, DBError(errors.New("boom"), "x").Code)
}

func TestParseFiberPaging(t *testing.T) {
	app := fiber.New()
	var got Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", Options{DefaultPerPage: 10, MaxPerPage: 50})
		return c.SendStatus(fiber.StatusNoContent)
	})

	cases := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc"}},
		{"?page=3&per_page=500&sort_by=title&order=ASC", Params{Page: 3, PerPage: 50, SortBy: "title", SortOrder: "asc"}},
		{"?page=-2&limit=5&sort=weird", Params{Page: 1, PerPage: 5, SortBy: "created_at", SortOrder: "desc"}},
	}
	for _, tc := range cases {
		_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.query)
	}
}

func TestSafeOrderAndMeta(t *testing.T) {
	allowed := map[string]string{"created_at": "news_created_at", "title": "news_title"}
	p := Params{Page: 2, PerPage: 10, SortBy: "title; DROP TABLE x", SortOrder: "asc"}
	assert.Equal(t, "news_created_at ASC", p.SafeOrder(allowed, "created_at"))
	p.SortBy = "title"
	p.SortOrder = "desc"
	assert.Equal(t, "news_title DESC", p.SafeOrder(allowed, "created_at"))
	assert.Equal(t, 10, p.Offset())

	m := BuildMeta(25, p)
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)

	empty := BuildMeta(0, Params{Page: 1, PerPage: 10})
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

type sampleReq struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
}

func TestJsonValidationError(t *testing.T) {
	app := fiber.New()
	v := validator.New()
	app.Post("/", func(c *fiber.Ctx) error {
		req := sampleReq{Name: "ab", Email: "nope"}
		if ok, err := ValidateStruct(c, v, &req); !ok {
			return err
		}
		return JsonOK(c, "", req)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "VALIDATION_ERROR", out.ErrorCode)
	assert.Equal(t, []string{"min=3"}, out.Errors["Name"])
	assert.Equal(t, []string{"email"}, out.Errors["Email"])
}

func TestJsonErrorFrom(t *testing.T) {
	app := fiber.New()
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return JsonErrorFrom(c, fiber.NewError(fiber.StatusLocked, "thread dikunci"))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return JsonErrorFrom(c, errors.New("boom"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusLocked, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestParseBoolQuery(t *testing.T) {
	assert.True(t, *ParseBoolQuery("yes"))
	assert.False(t, *ParseBoolQuery("0"))
	assert.Nil(t, ParseBoolQuery("maybe"))
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Prestasi, olahraga ,,PRESTASI, ")
	assert.Equal(t, []string{"prestasi", "olahraga"}, []string(got))
	assert.Empty(t, SplitTags(""))

	many := make([]string, 30)
	for i := range many {
		many[i] = string(rune('a' + i%26)) + string(rune('a'+i/26))
	}
	assert.Len(t, NormalizeTags(many), 20)
}

func TestParseDatePtr(t *testing.T) {
	s := "2025-07-14"
	got := ParseDatePtr(&s)
	require.NotNil(t, got)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, 14, got.Day())

	bad := "14/07/2025"
	assert.Nil(t, ParseDatePtr(&bad))
	assert.Nil(t, ParseDatePtr(nil))
}
