package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/public_pages/ppdb/model"
	helper "sekolahku_backend/internals/helpers"
)

type RegisterRequest struct {
	AcademicYear   *string `json:"academic_year" validate:"omitempty,len=9"`
	StudentName    string  `json:"student_name" validate:"required,min=3,max=150"`
	NISN           *string `json:"nisn" validate:"omitempty,numeric,len=10"`
	BirthPlace     string  `json:"birth_place" validate:"required,max=100"`
	BirthDate      string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender         string  `json:"gender" validate:"required,oneof=L P"`
	PreviousSchool *string `json:"previous_school" validate:"omitempty,max=150"`
	ParentName     string  `json:"parent_name" validate:"required,min=3,max=150"`
	ParentPhone    string  `json:"parent_phone" validate:"required,min=8,max=30"`
	ParentEmail    string  `json:"parent_email" validate:"required,email,max=255"`
	Address        string  `json:"address" validate:"required,min=5"`
}

func (r RegisterRequest) ToModel(instansiID uuid.UUID, academicYear string, fee int64) model.PPDBRegistrationModel {
	if r.AcademicYear != nil && strings.TrimSpace(*r.AcademicYear) != "" {
		academicYear = strings.TrimSpace(*r.AcademicYear)
	}
	bd := helper.ParseDatePtr(&r.BirthDate)
	m := model.PPDBRegistrationModel{
		InstansiID:     instansiID,
		AcademicYear:   academicYear,
		StudentName:    strings.TrimSpace(r.StudentName),
		NISN:           r.NISN,
		BirthPlace:     strings.TrimSpace(r.BirthPlace),
		Gender:         r.Gender,
		PreviousSchool: r.PreviousSchool,
		ParentName:     strings.TrimSpace(r.ParentName),
		ParentPhone:    strings.TrimSpace(r.ParentPhone),
		ParentEmail:    strings.ToLower(strings.TrimSpace(r.ParentEmail)),
		Address:        strings.TrimSpace(r.Address),
		FeeAmountIDR:   fee,
	}
	if bd != nil {
		m.BirthDate = *bd
	}
	return m
}

// LookupRequest: identitas pendaftar untuk cek status / bayar tanpa login.
type LookupRequest struct {
	RegistrationNumber string `json:"registration_number" query:"registration_number" validate:"required,max=40"`
	BirthDate          string `json:"birth_date" query:"birth_date" validate:"required,datetime=2006-01-02"`
}

func (r LookupRequest) Matches(m *model.PPDBRegistrationModel) bool {
	bd := helper.ParseDatePtr(&r.BirthDate)
	return bd != nil && m.BirthDate.Format(helper.DateLayout) == bd.Format(helper.DateLayout)
}

// PublicStatus: data minimal yang boleh dilihat tanpa login.
type PublicStatus struct {
	RegistrationNumber string     `json:"registration_number"`
	StudentName        string     `json:"student_name"`
	AcademicYear       string     `json:"academic_year"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	FeeAmountIDR       int64      `json:"fee_amount_idr"`
	PaymentRedirectURL *string    `json:"payment_redirect_url,omitempty"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func ToPublicStatus(m *model.PPDBRegistrationModel) PublicStatus {
	out := PublicStatus{
		RegistrationNumber: m.RegistrationNumber,
		StudentName:        m.StudentName,
		AcademicYear:       m.AcademicYear,
		Status:             m.Status,
		PaymentStatus:      m.PaymentStatus,
		FeeAmountIDR:       m.FeeAmountIDR,
		PaidAt:             m.PaidAt,
		CreatedAt:          m.CreatedAt,
	}
	if m.PaymentStatus == model.PaymentPending {
		out.PaymentRedirectURL = m.PaymentRedirectURL
	}
	return out
}

type TransitionRequest struct {
	Status string  `json:"status" validate:"required,oneof=verified accepted rejected cancelled"`
	Notes  *string `json:"notes"`
}

type ManualPaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=paid waived"`
}
