package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(ctx context.Context, rawToken string) (bool, error) // true = token dicabut
	AllowCookieFallback bool                                                     // pakai cookie access_token jika tidak ada Bearer
	Optional            bool                                                     // tanpa token tetap lanjut (route publik)
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			if o.Optional {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Cek blacklist (logout)
		if o.BlacklistChecker != nil {
			if black, err := o.BlacklistChecker(c.UserContext(), raw); err == nil && black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		// 3) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		if typ := strClaim(claims, "typ"); typ != "" && typ != "access" {
			return fiber.NewError(fiber.StatusUnauthorized, "Bukan access token")
		}

		userID := strClaim(claims, "id")
		if userID == "" {
			userID = strClaim(claims, "sub")
		}
		if _, err := uuid.Parse(userID); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id pada token tidak valid")
		}

		c.Locals(helperAuth.LocClaims, claims)
		c.Locals(helperAuth.LocRawToken, raw)
		c.Locals(helperAuth.LocUserID, userID)
		c.Locals(helperAuth.LocRole, strings.ToLower(strClaim(claims, "role")))
		if iid := strClaim(claims, "instansi_id"); iid != "" {
			c.Locals(helperAuth.LocInstansiID, iid)
		}

		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
