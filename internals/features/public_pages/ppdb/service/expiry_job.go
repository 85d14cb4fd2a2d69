package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/public_pages/ppdb/model"
)

const PaymentTTL = 24 * time.Hour

// ExpireStalePayments: pending yang dibuat sebelum cutoff → expired.
func ExpireStalePayments(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&model.PPDBRegistrationModel{}).
		Where("ppdb_registration_payment_status = ? AND ppdb_registration_payment_requested_at < ?", model.PaymentPending, cutoff).
		Update("ppdb_registration_payment_status", model.PaymentExpired)
	return res.RowsAffected, res.Error
}

func StartPaymentExpiryCron(db *gorm.DB) *cron.Cron {
	schedule := configs.GetEnv("PPDB_EXPIRY_CRON", "*/30 * * * *")
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := ExpireStalePayments(ctx, db, time.Now().Add(-PaymentTTL))
		if err != nil {
			log.Printf("[PPDB-EXPIRY] gagal: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[PPDB-EXPIRY] %d pembayaran kedaluwarsa", n)
		}
	})
	if err != nil {
		log.Printf("[PPDB-EXPIRY] add cron gagal: %v", err)
		return nil
	}
	log.Printf("[PPDB-EXPIRY] started schedule=%q ttl=%s", schedule, PaymentTTL)
	c.Start()
	return c
}
