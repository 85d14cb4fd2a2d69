package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/features/public_pages/ppdb/model"
)

func newRegistration(instansiID uuid.UUID, nisn string) *model.PPDBRegistrationModel {
	reg := &model.PPDBRegistrationModel{
		InstansiID:   instansiID,
		AcademicYear: "2025/2026",
		StudentName:  "Rina",
		BirthPlace:   "Bandung",
		BirthDate:    time.Date(2012, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:       "P",
		ParentName:   "Budi",
		ParentPhone:  "08123",
		ParentEmail:  "budi@example.com",
		Address:      "Jl. Merdeka 1",
	}
	if nisn != "" {
		reg.NISN = &nisn
	}
	return reg
}

func TestRegisterNumbersPerInstansiAndYear(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	feb := time.Date(2025, time.February, 3, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		instansi uuid.UUID
		at       time.Time
		want     string
	}{
		{"first of a", a, feb, "PPDB-2025-00001"},
		{"second of a", a, feb, "PPDB-2025-00002"},
		{"first of b", b, feb, "PPDB-2025-00001"},
		{"new year resets", a, feb.AddDate(1, 0, 0), "PPDB-2026-00001"},
		{"third of a", a, feb, "PPDB-2025-00003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistration(tt.instansi, "")
			require.NoError(t, Register(ctx, db, reg, tt.at))
			assert.Equal(t, tt.want, reg.RegistrationNumber)
			assert.Equal(t, model.StatusPending, reg.Status)
		})
	}
}

func TestRegisterRejectsDuplicateNISN(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	inst := uuid.New()
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, Register(ctx, db, newRegistration(inst, "0012345678"), now))
	err := Register(ctx, db, newRegistration(inst, "0012345678"), now)
	assert.ErrorIs(t, err, ErrDuplicateNISN)

	// nomor urut tidak terpakai oleh pendaftaran yang ditolak
	next := newRegistration(inst, "")
	require.NoError(t, Register(ctx, db, next, now))
	assert.Equal(t, "PPDB-2025-00002", next.RegistrationNumber)
}
