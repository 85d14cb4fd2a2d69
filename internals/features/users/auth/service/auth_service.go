package service

import (
	"context"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var (
	ErrInvalidCredentials = fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	ErrAccountInactive    = fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	ErrGoogleInvalid      = fiber.NewError(fiber.StatusUnauthorized, "Google ID token tidak valid")
	ErrGoogleUnknown      = fiber.NewError(fiber.StatusNotFound, "Akun Google belum terdaftar di sekolah mana pun")
	ErrRefreshReused      = fiber.NewError(fiber.StatusUnauthorized, "Refresh token sudah dipakai")
)

// GoogleIdentity hasil verifikasi ID token Google.
type GoogleIdentity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

type GoogleVerifyFunc func(idToken string) (GoogleIdentity, error)

func VerifyGoogleIDToken(clientID string) GoogleVerifyFunc {
	return func(idToken string) (GoogleIdentity, error) {
		if strings.TrimSpace(clientID) == "" {
			return GoogleIdentity{}, fiber.NewError(fiber.StatusServiceUnavailable, "Login Google belum dikonfigurasi")
		}
		v := googleAuthIDTokenVerifier.Verifier{}
		if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
			return GoogleIdentity{}, ErrGoogleInvalid
		}
		cs, err := googleAuthIDTokenVerifier.Decode(idToken)
		if err != nil {
			return GoogleIdentity{}, ErrGoogleInvalid
		}
		return GoogleIdentity{Sub: cs.Sub, Email: cs.Email, EmailVerified: cs.EmailVerified, Name: cs.Name}, nil
	}
}

// googleFallbackEmail: email Google hanya boleh dipakai mencari/menautkan akun kalau sudah diverifikasi Google.
func googleFallbackEmail(ident GoogleIdentity) (string, error) {
	email := strings.ToLower(strings.TrimSpace(ident.Email))
	if email == "" {
		return "", ErrGoogleUnknown
	}
	if !ident.EmailVerified {
		return "", ErrGoogleInvalid
	}
	return email, nil
}

type ClientMeta struct {
	UserAgent string
	IP        string
}

type AuthService struct {
	DB           *gorm.DB
	Tokens       TokenIssuer
	VerifyGoogle GoogleVerifyFunc
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		DB:           db,
		Tokens:       NewTokenIssuerFromEnv(),
		VerifyGoogle: VerifyGoogleIDToken(configs.GoogleClientID),
	}
}

func (s *AuthService) findUser(ctx context.Context, where string, args ...any) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := s.DB.WithContext(ctx).Where(where, args...).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) FindUserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return s.findUser(ctx, "id = ?", id)
}

// Login email + password.
func (s *AuthService) Login(ctx context.Context, email, password string, meta ClientMeta) (*userModel.UserModel, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.findUser(ctx, "email = ?", email)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if err := CheckPasswordHash(u.Password, password); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, TokenPair{}, ErrAccountInactive
	}
	pair, err := s.issue(ctx, u, meta)
	return u, pair, err
}

// LoginGoogle: akun harus sudah dibuat sekolah; google_id ditautkan saat login pertama.
func (s *AuthService) LoginGoogle(ctx context.Context, idToken string, meta ClientMeta) (*userModel.UserModel, TokenPair, error) {
	ident, err := s.VerifyGoogle(idToken)
	if err != nil {
		return nil, TokenPair{}, err
	}

	u, err := s.findUser(ctx, "google_id = ?", ident.Sub)
	if helper.IsNotFound(err) {
		email, ferr := googleFallbackEmail(ident)
		if ferr != nil {
			return nil, TokenPair{}, ferr
		}
		u, err = s.findUser(ctx, "email = ?", email)
		if err == nil && u.GoogleID == nil {
			if e := s.DB.WithContext(ctx).Model(u).Update("google_id", ident.Sub).Error; e != nil {
				log.Printf("[AuthService] link google_id user=%s: %v", u.ID, e)
			}
		}
	}
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, TokenPair{}, ErrGoogleUnknown
		}
		return nil, TokenPair{}, err
	}
	if !u.IsActive {
		return nil, TokenPair{}, ErrAccountInactive
	}
	pair, err := s.issue(ctx, u, meta)
	return u, pair, err
}

// Refresh: rotasi refresh token (token lama dicabut).
func (s *AuthService) Refresh(ctx context.Context, raw string, meta ClientMeta) (TokenPair, error) {
	userID, err := s.Tokens.ParseRefresh(raw)
	if err != nil {
		return TokenPair{}, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	var rt authModel.RefreshTokenModel
	err = s.DB.WithContext(ctx).
		Where("token = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?", s.Tokens.RefreshHash(raw), userID, time.Now()).
		First(&rt).Error
	if err != nil {
		if helper.IsNotFound(err) {
			return TokenPair{}, fiber.NewError(fiber.StatusUnauthorized, "Refresh token tidak dikenal")
		}
		return TokenPair{}, err
	}

	u, err := s.FindUserByID(ctx, userID)
	if err != nil {
		return TokenPair{}, fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !u.IsActive {
		return TokenPair{}, ErrAccountInactive
	}

	// hanya satu request yang boleh memutar token yang sama
	res := s.DB.WithContext(ctx).Model(&authModel.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", rt.ID).
		Update("revoked_at", time.Now())
	if res.Error != nil {
		return TokenPair{}, res.Error
	}
	if res.RowsAffected != 1 {
		return TokenPair{}, ErrRefreshReused
	}
	return s.issue(ctx, u, meta)
}

// Logout: blacklist access token sampai exp + cabut refresh token.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		exp := s.Tokens.AccessExpiry(accessToken)
		if err := helperAuth.AddToBlacklist(ctx, s.DB, accessToken, s.Tokens.Secret, exp); err != nil {
			log.Printf("[AuthService] blacklist gagal: %v", err)
			return err
		}
	}
	if refreshToken != "" {
		err := s.DB.WithContext(ctx).Model(&authModel.RefreshTokenModel{}).
			Where("token = ? AND revoked_at IS NULL", s.Tokens.RefreshHash(refreshToken)).
			Update("revoked_at", time.Now()).Error
		if err != nil {
			log.Printf("[AuthService] revoke refresh gagal: %v", err)
		}
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	u, err := s.FindUserByID(ctx, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if err := CheckPasswordHash(u.Password, current); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Password lama salah")
	}
	if err := ValidatePassword(next); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Update("password", hash).Error; err != nil {
			return err
		}
		// semua sesi lain ikut keluar
		return tx.Model(&authModel.RefreshTokenModel{}).
			Where("user_id = ? AND revoked_at IS NULL", u.ID).
			Update("revoked_at", time.Now()).Error
	})
}

func (s *AuthService) issue(ctx context.Context, u *userModel.UserModel, meta ClientMeta) (TokenPair, error) {
	pair, err := s.Tokens.Issue(*u)
	if err != nil {
		return TokenPair{}, err
	}
	rt := authModel.RefreshTokenModel{
		UserID:    u.ID,
		Token:     s.Tokens.RefreshHash(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
		UserAgent: helper.StrPtr(meta.UserAgent),
		IP:        helper.StrPtr(meta.IP),
	}
	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		return TokenPair{}, err
	}

	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(u).UpdateColumn("last_login_at", now).Error; err != nil {
		log.Printf("[AuthService] update last_login_at user=%s: %v", u.ID, err)
	}
	u.LastLoginAt = &now
	return pair, nil
}
