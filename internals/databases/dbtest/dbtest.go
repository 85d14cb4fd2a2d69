// Package dbtest membuka Postgres sungguhan untuk test service yang butuh transaksi/lock.
// Test dilewati kalau TEST_DATABASE_URL kosong.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
)

// Open: schema baru per test (search_path), di-drop saat cleanup.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := configs.GetEnv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL belum diset")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		t.Fatalf("konek test DB: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// satu koneksi supaya search_path berlaku untuk semua query
	sqlDB.SetMaxOpenConns(1)

	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		t.Logf("extension pgcrypto: %v", err)
	}
	if err := db.Exec(fmt.Sprintf(`CREATE SCHEMA %s`, schema)).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if err := db.Exec(fmt.Sprintf(`SET search_path TO %s, public`, schema)).Error; err != nil {
		t.Fatalf("search_path: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE`, schema))
		sqlDB.Close()
	})

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
