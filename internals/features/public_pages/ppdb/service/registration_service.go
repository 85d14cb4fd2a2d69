package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/public_pages/ppdb/model"
)

var (
	ErrPPDBClosed        = errors.New("pendaftaran PPDB sedang ditutup")
	ErrInvalidTransition = errors.New("perubahan status tidak diizinkan")
	ErrDuplicateNISN     = errors.New("NISN sudah terdaftar pada tahun ajaran ini")
)

// FormatNumber: PPDB-2025-00042
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("PPDB-%d-%05d", year, seq)
}

// AcademicYearFor: tahun ajaran tujuan pendaftar (mulai Juli berikutnya).
// Feb 2025 → 2025/2026; Jul 2025 → 2026/2027 karena 2025/2026 sudah berjalan.
func AcademicYearFor(now time.Time) string {
	y := now.Year()
	if now.Month() >= time.July {
		y++
	}
	return fmt.Sprintf("%d/%d", y, y+1)
}

var transitions = map[string][]string{
	model.StatusPending:  {model.StatusVerified, model.StatusRejected, model.StatusCancelled},
	model.StatusVerified: {model.StatusAccepted, model.StatusRejected},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextSequence: upsert atomik, aman untuk pendaftaran paralel.
func NextSequence(ctx context.Context, tx *gorm.DB, instansiID uuid.UUID, year int) (int, error) {
	var seq int
	err := tx.WithContext(ctx).Raw(`
		INSERT INTO ppdb_sequences (ppdb_sequence_instansi_id, ppdb_sequence_year, ppdb_sequence_last)
		VALUES (?, ?, 1)
		ON CONFLICT (ppdb_sequence_instansi_id, ppdb_sequence_year)
		DO UPDATE SET ppdb_sequence_last = ppdb_sequences.ppdb_sequence_last + 1
		RETURNING ppdb_sequence_last`, instansiID, year).Scan(&seq).Error
	return seq, err
}

// Register: cek duplikat NISN, ambil nomor urut, simpan. Semua dalam satu transaksi.
func Register(ctx context.Context, db *gorm.DB, reg *model.PPDBRegistrationModel, now time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reg.NISN != nil && *reg.NISN != "" {
			var n int64
			if err := tx.Model(&model.PPDBRegistrationModel{}).
				Where("ppdb_registration_instansi_id = ? AND ppdb_registration_academic_year = ? AND ppdb_registration_nisn = ?",
					reg.InstansiID, reg.AcademicYear, *reg.NISN).
				Where("ppdb_registration_status <> ?", model.StatusCancelled).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrDuplicateNISN
			}
		}

		seq, err := NextSequence(ctx, tx, reg.InstansiID, now.Year())
		if err != nil {
			return err
		}
		reg.RegistrationNumber = FormatNumber(now.Year(), seq)
		reg.Status = model.StatusPending
		if reg.FeeAmountIDR > 0 {
			reg.PaymentStatus = model.PaymentUnpaid
		} else {
			reg.PaymentStatus = model.PaymentWaived
		}
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		log.Printf("[PPDBService] pendaftaran %s instansi=%s", reg.RegistrationNumber, reg.InstansiID)
		return nil
	})
}
