package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/auth/dto"
	"sekolahku_backend/internals/features/users/auth/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc       *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Svc: service.NewAuthService(db), Validator: validator.New()}
}

func clientMeta(c *fiber.Ctx) service.ClientMeta {
	return service.ClientMeta{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

func setAuthCookies(c *fiber.Ctx, pair service.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name: "access_token", Value: pair.AccessToken,
		HTTPOnly: true, Secure: true, SameSite: "None", Path: "/",
		Expires: pair.AccessExpiresAt,
	})
	c.Cookie(&fiber.Cookie{
		Name: "refresh_token", Value: pair.RefreshToken,
		HTTPOnly: true, Secure: true, SameSite: "None", Path: "/api/auth",
		Expires: pair.RefreshExpiresAt,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name: name, Value: "", HTTPOnly: true, Secure: true, SameSite: "None",
			Path: path, Expires: expired, MaxAge: -1,
		})
	}
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}

	u, pair, err := ac.Svc.Login(c.UserContext(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	setAuthCookies(c, pair)
	return helper.JsonOK(c, "Login berhasil", fiber.Map{"user": dto.FromUser(*u), "token": pair})
}

// POST /api/auth/google
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}

	u, pair, err := ac.Svc.LoginGoogle(c.UserContext(), req.IDToken, clientMeta(c))
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	setAuthCookies(c, pair)
	return helper.JsonOK(c, "Login Google berhasil", fiber.Map{"user": dto.FromUser(*u), "token": pair})
}

// POST /api/auth/refresh (body refresh_token atau cookie)
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	_ = c.BodyParser(&req)
	raw := strings.TrimSpace(req.RefreshToken)
	if raw == "" {
		raw = strings.TrimSpace(c.Cookies("refresh_token"))
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	pair, err := ac.Svc.Refresh(c.UserContext(), raw, clientMeta(c))
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	setAuthCookies(c, pair)
	return helper.JsonOK(c, "Token diperbarui", pair)
}

// POST /api/auth/logout (JWT)
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	_ = c.BodyParser(&req)
	refresh := strings.TrimSpace(req.RefreshToken)
	if refresh == "" {
		refresh = strings.TrimSpace(c.Cookies("refresh_token"))
	}

	if err := ac.Svc.Logout(c.UserContext(), helperAuth.GetRawAccessToken(c), refresh); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	u, err := ac.Svc.FindUserByID(c.UserContext(), userID)
	if err != nil {
		return helper.JsonErrorFrom(c, helper.DBError(err, "User tidak ditemukan"))
	}
	return helper.JsonOK(c, "ok", dto.FromUser(*u))
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if ok, err := helper.ValidateStruct(c, ac.Validator, &req); !ok {
		return err
	}
	if err := ac.Svc.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return helper.JsonErrorFrom(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diubah", nil)
}
