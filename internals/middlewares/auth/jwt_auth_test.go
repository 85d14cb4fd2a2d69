package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

const testSecret = "rahasia-test"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthJWT(opts), func(c *fiber.Ctx) error {
		uid, err := helperAuth.GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": uid.String(), "role": helperAuth.GetRole(c)})
	})
	return app
}

func TestAuthJWT(t *testing.T) {
	uid := uuid.New()
	valid := signToken(t, testSecret, jwt.MapClaims{
		"id":          uid.String(),
		"instansi_id": uuid.NewString(),
		"role":        "Teacher",
		"exp":         time.Now().Add(time.Minute).Unix(),
	})
	expired := signToken(t, testSecret, jwt.MapClaims{
		"id":  uid.String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	wrongSecret := signToken(t, "lain", jwt.MapClaims{"id": uid.String()})
	refresh := signToken(t, testSecret, jwt.MapClaims{"id": uid.String(), "typ": "refresh"})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no token", header: "", want: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + valid, want: fiber.StatusOK},
		{name: "expired", header: "Bearer " + expired, want: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + wrongSecret, want: fiber.StatusUnauthorized},
		{name: "refresh token rejected", header: "Bearer " + refresh, want: fiber.StatusUnauthorized},
	}

	app := newApp(AuthJWTOpts{Secret: testSecret})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuthJWTBlacklist(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{"id": uuid.NewString()})
	app := newApp(AuthJWTOpts{
		Secret: testSecret,
		BlacklistChecker: func(ctx context.Context, raw string) (bool, error) {
			return raw == tok, nil
		},
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWTCookieFallback(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{"id": uuid.NewString()})
	app := newApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "access_token="+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
