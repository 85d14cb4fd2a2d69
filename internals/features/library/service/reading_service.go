package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/library/model"
)

const (
	// MaxElapsedPerSync: klien sync tiap 5–30 detik, sisanya dianggap idle.
	MaxElapsedPerSync = 60
	// MaxClientSkew: client_time lebih maju dari ini dipotong ke waktu server.
	MaxClientSkew = time.Minute
)

type SyncInput struct {
	CurrentPage    int
	TotalPages     int
	ElapsedSeconds int
	ClientTime     time.Time
}

// ResolveTotal: jumlah halaman buku menang, lalu laporan klien, lalu nilai tersimpan.
func ResolveTotal(bookTotal, clientTotal, stored int) int {
	switch {
	case bookTotal > 0:
		return bookTotal
	case clientTotal > 0:
		return clientTotal
	case stored > 0:
		return stored
	}
	return 0
}

func clampPage(page, total int) int {
	if page < 1 {
		page = 1
	}
	if total > 0 && page > total {
		page = total
	}
	return page
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ApplySync menerapkan satu sync ke baris progress. false = client_time basi atau duplikat, tidak ada perubahan.
func ApplySync(p *model.ReadingProgressModel, bookTotal int, in SyncInput, now time.Time) bool {
	ct := in.ClientTime
	if ct.IsZero() || ct.After(now.Add(MaxClientSkew)) {
		ct = now
	}
	// presisi timestamptz; client_time sama dengan yang tersimpan = kiriman ulang
	ct = ct.Truncate(time.Microsecond)
	if !p.ClientUpdatedAt.IsZero() && !ct.After(p.ClientUpdatedAt) {
		return false
	}

	total := ResolveTotal(bookTotal, in.TotalPages, p.TotalPages)
	page := clampPage(in.CurrentPage, total)

	elapsed := in.ElapsedSeconds
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxElapsedPerSync {
		elapsed = MaxElapsedPerSync
	}

	p.TotalPages = total
	p.CurrentPage = page
	if page > p.FurthestPage {
		p.FurthestPage = page
	}
	if total > 0 && p.FurthestPage > total {
		p.FurthestPage = total
	}
	p.ReadingSeconds += int64(elapsed)

	if total > 0 {
		p.Percent = round2(float64(p.FurthestPage) / float64(total) * 100)
		if p.FurthestPage >= total && !p.IsCompleted {
			p.IsCompleted = true
			t := now
			p.CompletedAt = &t
		}
	} else {
		p.Percent = 0
	}
	if p.IsCompleted && p.Percent < 100 {
		// buku diganti file yang lebih tebal; status selesai tetap
		p.Percent = 100
	}
	p.ClientUpdatedAt = ct
	p.LastReadAt = now
	return true
}

// SyncProgress: upsert baris progress lalu ApplySync di bawah row lock.
// Sync pertama user menaikkan ReaderCount buku sekali.
func SyncProgress(ctx context.Context, db *gorm.DB, book *model.LibraryBookModel, userID uuid.UUID, in SyncInput, now time.Time) (*model.ReadingProgressModel, bool, error) {
	var (
		out     model.ReadingProgressModel
		applied bool
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := model.ReadingProgressModel{
			BookID:     book.ID,
			InstansiID: book.InstansiID,
			UserID:     userID,
			LastReadAt: now,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reading_progress_book_id"}, {Name: "reading_progress_user_id"}},
			DoNothing: true,
		}).Create(&seed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			if err := tx.Model(&model.LibraryBookModel{}).Where("book_id = ?", book.ID).
				UpdateColumn("book_reader_count", gorm.Expr("book_reader_count + 1")).Error; err != nil {
				return err
			}
			log.Printf("[LibraryReading] pembaca baru book=%s user=%s", book.ID, userID)
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reading_progress_book_id = ? AND reading_progress_user_id = ?", book.ID, userID).
			First(&out).Error; err != nil {
			return err
		}
		applied = ApplySync(&out, book.TotalPages, in, now)
		if !applied {
			return nil
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &out, applied, nil
}

// UpsertBookmark: satu bookmark per halaman; halaman yang sama menimpa label/catatan.
func UpsertBookmark(ctx context.Context, db *gorm.DB, b *model.BookmarkModel) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "bookmark_book_id"}, {Name: "bookmark_user_id"}, {Name: "bookmark_page"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"bookmark_label", "bookmark_note", "bookmark_updated_at"}),
	}).Create(b).Error
}
