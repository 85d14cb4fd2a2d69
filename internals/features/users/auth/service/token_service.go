package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"sekolahku_backend/internals/configs"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

var ErrInvalidRefresh = errors.New("refresh token tidak valid")

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int64     `json:"expires_in"`
	AccessExpiresAt  time.Time `json:"-"`
	RefreshExpiresAt time.Time `json:"-"`
}

type TokenIssuer struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func NewTokenIssuerFromEnv() TokenIssuer {
	refresh := configs.JWTRefreshSecret
	if refresh == "" {
		refresh = configs.JWTSecret
	}
	return TokenIssuer{
		Secret:        configs.JWTSecret,
		RefreshSecret: refresh,
		AccessTTL:     configs.GetEnvDuration("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    configs.GetEnvDuration("REFRESH_TTL", 7*24*time.Hour),
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (ti TokenIssuer) now() time.Time {
	if ti.Now != nil {
		return ti.Now()
	}
	return time.Now().UTC()
}

func (ti TokenIssuer) BuildAccessClaims(u userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":  "access",
		"sub":  u.ID.String(),
		"id":   u.ID.String(),
		"name": u.Name,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ti.AccessTTL).Unix(),
	}
	if u.InstansiID != nil {
		claims["instansi_id"] = u.InstansiID.String()
	}
	return claims
}

func (ti TokenIssuer) buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ti.RefreshTTL).Unix(),
	}
}

// Issue menandatangani pasangan access + refresh (HS256).
func (ti TokenIssuer) Issue(u userModel.UserModel) (TokenPair, error) {
	now := ti.now()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ti.BuildAccessClaims(u, now)).SignedString([]byte(ti.Secret))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, ti.buildRefreshClaims(u.ID, now)).SignedString([]byte(ti.RefreshSecret))
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		TokenType:        "Bearer",
		ExpiresIn:        int64(ti.AccessTTL.Seconds()),
		AccessExpiresAt:  now.Add(ti.AccessTTL),
		RefreshExpiresAt: now.Add(ti.RefreshTTL),
	}, nil
}

// ParseRefresh memvalidasi refresh JWT dan mengembalikan user id.
func (ti TokenIssuer) ParseRefresh(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrInvalidRefresh
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefresh
		}
		return []byte(ti.RefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidRefresh
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, ErrInvalidRefresh
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidRefresh
	}
	return id, nil
}

// AccessExpiry: exp dari access token (tanpa verifikasi ulang, sudah lewat middleware).
func (ti TokenIssuer) AccessExpiry(raw string) time.Time {
	fallback := ti.now().Add(ti.AccessTTL)
	tok, _, err := new(jwt.Parser).ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC()
	}
	return fallback
}

func (ti TokenIssuer) RefreshHash(raw string) string {
	return helperAuth.HmacHex(raw, ti.RefreshSecret)
}
