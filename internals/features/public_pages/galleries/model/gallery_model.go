package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GalleryModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:gallery_id" json:"gallery_id"`
	InstansiID  uuid.UUID      `gorm:"type:uuid;not null;index;column:gallery_instansi_id" json:"gallery_instansi_id"`
	Title       string         `gorm:"size:200;not null;column:gallery_title" json:"gallery_title"`
	Slug        string         `gorm:"size:160;not null;index;column:gallery_slug" json:"gallery_slug"`
	Description *string        `gorm:"type:text;column:gallery_description" json:"gallery_description,omitempty"`
	CoverURL    *string        `gorm:"type:text;column:gallery_cover_url" json:"gallery_cover_url,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[];column:gallery_tags" json:"gallery_tags"`
	EventDate   *time.Time     `gorm:"type:date;column:gallery_event_date" json:"gallery_event_date,omitempty"`
	IsPublished bool           `gorm:"not null;default:false;index;column:gallery_is_published" json:"gallery_is_published"`
	ItemCount   int            `gorm:"not null;default:0;column:gallery_item_count" json:"gallery_item_count"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:gallery_created_at" json:"gallery_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:gallery_updated_at" json:"gallery_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:gallery_deleted_at" json:"-"`

	Items []GalleryItemModel `gorm:"foreignKey:GalleryID;references:ID" json:"items,omitempty"`
}

func (GalleryModel) TableName() string { return "galleries" }

type GalleryItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:gallery_item_id" json:"gallery_item_id"`
	GalleryID    uuid.UUID `gorm:"type:uuid;not null;index;column:gallery_item_gallery_id" json:"gallery_item_gallery_id"`
	InstansiID   uuid.UUID `gorm:"type:uuid;not null;index;column:gallery_item_instansi_id" json:"gallery_item_instansi_id"`
	ImageURL     string    `gorm:"type:text;not null;column:gallery_item_image_url" json:"gallery_item_image_url"`
	ThumbnailURL string    `gorm:"type:text;not null;column:gallery_item_thumbnail_url" json:"gallery_item_thumbnail_url"`
	Caption      *string   `gorm:"size:500;column:gallery_item_caption" json:"gallery_item_caption,omitempty"`
	Order        int       `gorm:"not null;default:0;column:gallery_item_order" json:"gallery_item_order"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:gallery_item_created_at" json:"gallery_item_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:gallery_item_updated_at" json:"gallery_item_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:gallery_item_deleted_at" json:"-"`
}

func (GalleryItemModel) TableName() string { return "gallery_items" }
