package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenBlacklist menyimpan HMAC(access token), bukan token mentah.
type TokenBlacklist struct {
	Token     string    `gorm:"type:text;primaryKey;column:token" json:"-"`
	ExpiredAt time.Time `gorm:"type:timestamptz;not null;index;column:expired_at" json:"expired_at"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:created_at" json:"created_at"`
}

func (TokenBlacklist) TableName() string { return "token_blacklist" }

func HmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

// AddToBlacklist: upsert, expired_at ikut diperbarui.
func AddToBlacklist(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string, expiresAt time.Time) error {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return nil
	}
	row := TokenBlacklist{
		Token:     HmacHex(rawAccessToken, jwtSecret),
		ExpiredAt: expiresAt,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
		}).
		Create(&row).Error
}

func IsBlacklisted(ctx context.Context, db *gorm.DB, rawAccessToken, jwtSecret string) (bool, error) {
	if db == nil || strings.TrimSpace(rawAccessToken) == "" || strings.TrimSpace(jwtSecret) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", HmacHex(rawAccessToken, jwtSecret), time.Now()).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired menghapus baris yang sudah lewat lebih dari grace.
func PurgeExpired(ctx context.Context, db *gorm.DB, grace time.Duration) (int64, error) {
	res := db.WithContext(ctx).
		Where("expired_at < ?", time.Now().Add(-grace)).
		Delete(&TokenBlacklist{})
	return res.RowsAffected, res.Error
}

// BlacklistChecker dipasang ke AuthJWTOpts.
func BlacklistChecker(db *gorm.DB, jwtSecret string) func(ctx context.Context, raw string) (bool, error) {
	return func(ctx context.Context, raw string) (bool, error) {
		return IsBlacklisted(ctx, db, raw, jwtSecret)
	}
}
