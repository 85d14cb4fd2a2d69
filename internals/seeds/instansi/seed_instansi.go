package instansi

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/features/instansi/model"
)

type InstansiSeed struct {
	Name       string  `json:"instansi_name"`
	Slug       string  `json:"instansi_slug"`
	NPSN       *string `json:"instansi_npsn"`
	Email      *string `json:"instansi_email"`
	PPDBOpen   bool    `json:"instansi_ppdb_open"`
	PPDBFeeIDR int64   `json:"instansi_ppdb_fee_idr"`
}

// SeedInstansiFromJSON: idempotent, slug yang sudah ada dilewati.
func SeedInstansiFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file instansi:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}
	var seeds []InstansiSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	rows := make([]model.InstansiModel, 0, len(seeds))
	for _, s := range seeds {
		rows = append(rows, model.InstansiModel{
			Name:       s.Name,
			Slug:       s.Slug,
			NPSN:       s.NPSN,
			Email:      s.Email,
			IsActive:   true,
			PPDBOpen:   s.PPDBOpen,
			PPDBFeeIDR: s.PPDBFeeIDR,
		})
	}
	if len(rows) == 0 {
		return
	}
	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "instansi_slug"}}, DoNothing: true}).Create(&rows)
	if res.Error != nil {
		log.Printf("❌ Gagal insert instansi: %v", res.Error)
		return
	}
	log.Printf("✅ %d instansi baru (dari %d)", res.RowsAffected, len(rows))
}
