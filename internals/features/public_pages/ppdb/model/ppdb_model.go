package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	PaymentUnpaid  = "unpaid"
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentExpired = "expired"
	PaymentFailed  = "failed"
	PaymentWaived  = "waived"
)

type PPDBRegistrationModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:ppdb_registration_id" json:"ppdb_registration_id"`
	InstansiID         uuid.UUID `gorm:"type:uuid;not null;index;column:ppdb_registration_instansi_id" json:"ppdb_registration_instansi_id"`
	RegistrationNumber string    `gorm:"size:40;not null;uniqueIndex:uq_ppdb_registration_number;column:ppdb_registration_number" json:"ppdb_registration_number"`
	AcademicYear       string    `gorm:"size:9;not null;index;column:ppdb_registration_academic_year" json:"ppdb_registration_academic_year"`

	StudentName    string    `gorm:"size:150;not null;column:ppdb_registration_student_name" json:"ppdb_registration_student_name"`
	NISN           *string   `gorm:"size:20;index;column:ppdb_registration_nisn" json:"ppdb_registration_nisn,omitempty"`
	BirthPlace     string    `gorm:"size:100;not null;column:ppdb_registration_birth_place" json:"ppdb_registration_birth_place"`
	BirthDate      time.Time `gorm:"type:date;not null;column:ppdb_registration_birth_date" json:"ppdb_registration_birth_date"`
	Gender         string    `gorm:"size:1;not null;column:ppdb_registration_gender" json:"ppdb_registration_gender"`
	PreviousSchool *string   `gorm:"size:150;column:ppdb_registration_previous_school" json:"ppdb_registration_previous_school,omitempty"`
	ParentName     string    `gorm:"size:150;not null;column:ppdb_registration_parent_name" json:"ppdb_registration_parent_name"`
	ParentPhone    string    `gorm:"size:30;not null;column:ppdb_registration_parent_phone" json:"ppdb_registration_parent_phone"`
	ParentEmail    string    `gorm:"size:255;not null;column:ppdb_registration_parent_email" json:"ppdb_registration_parent_email"`
	Address        string    `gorm:"type:text;not null;column:ppdb_registration_address" json:"ppdb_registration_address"`

	Status string  `gorm:"size:20;not null;default:pending;index;column:ppdb_registration_status" json:"ppdb_registration_status"`
	Notes  *string `gorm:"type:text;column:ppdb_registration_notes" json:"ppdb_registration_notes,omitempty"`

	FeeAmountIDR       int64      `gorm:"not null;default:0;column:ppdb_registration_fee_amount_idr" json:"ppdb_registration_fee_amount_idr"`
	PaymentStatus      string     `gorm:"size:20;not null;default:unpaid;index;column:ppdb_registration_payment_status" json:"ppdb_registration_payment_status"`
	PaymentOrderID     *string    `gorm:"size:64;uniqueIndex:uq_ppdb_payment_order;column:ppdb_registration_payment_order_id" json:"ppdb_registration_payment_order_id,omitempty"`
	PaymentToken       *string    `gorm:"size:255;column:ppdb_registration_payment_token" json:"-"`
	PaymentRedirectURL *string    `gorm:"type:text;column:ppdb_registration_payment_redirect_url" json:"ppdb_registration_payment_redirect_url,omitempty"`
	PaymentRequestedAt *time.Time `gorm:"type:timestamptz;column:ppdb_registration_payment_requested_at" json:"ppdb_registration_payment_requested_at,omitempty"`
	PaidAt             *time.Time `gorm:"type:timestamptz;column:ppdb_registration_paid_at" json:"ppdb_registration_paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:ppdb_registration_created_at" json:"ppdb_registration_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:ppdb_registration_updated_at" json:"ppdb_registration_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:ppdb_registration_deleted_at" json:"-"`
}

func (PPDBRegistrationModel) TableName() string { return "ppdb_registrations" }

// PPDBSequenceModel: counter nomor pendaftaran per instansi per tahun.
type PPDBSequenceModel struct {
	InstansiID uuid.UUID `gorm:"type:uuid;primaryKey;column:ppdb_sequence_instansi_id"`
	Year       int       `gorm:"primaryKey;column:ppdb_sequence_year"`
	Last       int       `gorm:"not null;default:0;column:ppdb_sequence_last"`
}

func (PPDBSequenceModel) TableName() string { return "ppdb_sequences" }
