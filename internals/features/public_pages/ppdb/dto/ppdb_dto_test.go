package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/public_pages/ppdb/model"
)

func TestRegisterToModel(t *testing.T) {
	req := RegisterRequest{
		StudentName: " Siti Aminah ",
		BirthPlace:  "Bandung",
		BirthDate:   "2013-05-20",
		Gender:      "P",
		ParentName:  "Ahmad",
		ParentPhone: "08123456789",
		ParentEmail: " Ahmad@Mail.com ",
		Address:     "Jl. Merdeka 1",
	}
	m := req.ToModel(uuid.New(), "2025/2026", 150000)
	assert.Equal(t, "Siti Aminah", m.StudentName)
	assert.Equal(t, "ahmad@mail.com", m.ParentEmail)
	assert.Equal(t, "2025/2026", m.AcademicYear)
	assert.Equal(t, 2013, m.BirthDate.Year())
	assert.Equal(t, int64(150000), m.FeeAmountIDR)

	ay := "2026/2027"
	req.AcademicYear = &ay
	assert.Equal(t, "2026/2027", req.ToModel(uuid.New(), "2025/2026", 0).AcademicYear)
}

func TestLookupMatches(t *testing.T) {
	m := &model.PPDBRegistrationModel{BirthDate: time.Date(2013, 5, 20, 0, 0, 0, 0, time.UTC)}
	assert.True(t, LookupRequest{BirthDate: "2013-05-20"}.Matches(m))
	assert.False(t, LookupRequest{BirthDate: "2013-05-21"}.Matches(m))
	assert.False(t, LookupRequest{BirthDate: "20-05-2013"}.Matches(m))
}

func TestPublicStatusHidesStaleRedirect(t *testing.T) {
	url := "https://app.sandbox.midtrans.com/snap/v2/vtweb/x"
	m := &model.PPDBRegistrationModel{PaymentStatus: model.PaymentExpired, PaymentRedirectURL: &url}
	assert.Nil(t, ToPublicStatus(m).PaymentRedirectURL)

	m.PaymentStatus = model.PaymentPending
	assert.Equal(t, &url, ToPublicStatus(m).PaymentRedirectURL)
}
