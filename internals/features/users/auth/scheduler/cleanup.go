package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// StartBlacklistCleanupScheduler: harian, hapus blacklist + refresh token kadaluarsa.
func StartBlacklistCleanupScheduler(db *gorm.DB) *cron.Cron {
	grace := time.Duration(configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)) * 24 * time.Hour
	schedule := configs.GetEnv("TOKEN_CLEANUP_CRON", "30 1 * * *")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() { RunCleanup(db, grace) })
	if err != nil {
		log.Printf("[CLEANUP] add cron gagal: %v", err)
		return nil
	}
	c.Start()
	log.Printf("[CLEANUP] token cleanup schedule=%q grace=%s", schedule, grace)
	return c
}

func RunCleanup(db *gorm.DB, grace time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := helperAuth.PurgeExpired(ctx, db, grace)
	if err != nil {
		log.Printf("[CLEANUP ERROR] token_blacklist: %v", err)
	} else {
		log.Printf("[CLEANUP] %d token_blacklist dihapus", n)
	}

	res := db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", time.Now(), time.Now().Add(-grace)).
		Delete(&authModel.RefreshTokenModel{})
	if res.Error != nil {
		log.Printf("[CLEANUP ERROR] refresh_tokens: %v", res.Error)
		return
	}
	log.Printf("[CLEANUP] %d refresh_tokens dihapus", res.RowsAffected)
}
