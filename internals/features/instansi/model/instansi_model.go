package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstansiModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:instansi_id" json:"instansi_id"`
	Name       string    `gorm:"size:150;not null;column:instansi_name" json:"instansi_name"`
	Slug       string    `gorm:"size:160;not null;uniqueIndex:uq_instansi_slug;column:instansi_slug" json:"instansi_slug"`
	NPSN       *string   `gorm:"size:20;column:instansi_npsn" json:"instansi_npsn,omitempty"`
	Address    *string   `gorm:"type:text;column:instansi_address" json:"instansi_address,omitempty"`
	Phone      *string   `gorm:"size:30;column:instansi_phone" json:"instansi_phone,omitempty"`
	Email      *string   `gorm:"size:255;column:instansi_email" json:"instansi_email,omitempty"`
	LogoURL    *string   `gorm:"type:text;column:instansi_logo_url" json:"instansi_logo_url,omitempty"`
	IsActive   bool      `gorm:"not null;default:true;column:instansi_is_active" json:"instansi_is_active"`
	PPDBOpen   bool      `gorm:"not null;default:false;column:instansi_ppdb_open" json:"instansi_ppdb_open"`
	PPDBFeeIDR int64     `gorm:"not null;default:0;column:instansi_ppdb_fee_idr" json:"instansi_ppdb_fee_idr"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:instansi_created_at" json:"instansi_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:instansi_updated_at" json:"instansi_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:instansi_deleted_at" json:"-"`
}

func (InstansiModel) TableName() string { return "instansi" }
