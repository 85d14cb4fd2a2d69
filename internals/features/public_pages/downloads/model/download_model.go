package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type DownloadModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:download_id" json:"download_id"`
	InstansiID    uuid.UUID      `gorm:"type:uuid;not null;index;column:download_instansi_id" json:"download_instansi_id"`
	Title         string         `gorm:"size:200;not null;column:download_title" json:"download_title"`
	Slug          string         `gorm:"size:160;not null;index;column:download_slug" json:"download_slug"`
	Description   *string        `gorm:"type:text;column:download_description" json:"download_description,omitempty"`
	Category      *string        `gorm:"size:80;index;column:download_category" json:"download_category,omitempty"`
	FileURL       string         `gorm:"type:text;not null;column:download_file_url" json:"download_file_url"`
	FileName      string         `gorm:"size:255;not null;column:download_file_name" json:"download_file_name"`
	FileSize      int64          `gorm:"not null;default:0;column:download_file_size" json:"download_file_size"`
	MimeType      string         `gorm:"size:120;not null;column:download_mime_type" json:"download_mime_type"`
	Tags          pq.StringArray `gorm:"type:text[];column:download_tags" json:"download_tags"`
	IsPublished   bool           `gorm:"not null;default:false;index;column:download_is_published" json:"download_is_published"`
	DownloadCount int            `gorm:"not null;default:0;column:download_count" json:"download_count"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:download_created_at" json:"download_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:download_updated_at" json:"download_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:download_deleted_at" json:"-"`
}

func (DownloadModel) TableName() string { return "downloads" }
