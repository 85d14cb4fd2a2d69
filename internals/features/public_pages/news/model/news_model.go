package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	NewsStatusDraft     = "draft"
	NewsStatusPublished = "published"
)

type NewsModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:news_id" json:"news_id"`
	InstansiID  uuid.UUID      `gorm:"type:uuid;not null;index;column:news_instansi_id" json:"news_instansi_id"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;column:news_author_id" json:"news_author_id"`
	Title       string         `gorm:"size:255;not null;column:news_title" json:"news_title"`
	Slug        string         `gorm:"size:160;not null;index;column:news_slug" json:"news_slug"`
	Excerpt     *string        `gorm:"size:500;column:news_excerpt" json:"news_excerpt,omitempty"`
	Content     string         `gorm:"type:text;not null;column:news_content" json:"news_content"`
	CoverURL    *string        `gorm:"type:text;column:news_cover_url" json:"news_cover_url,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[];column:news_tags" json:"news_tags"`
	Status      string         `gorm:"size:20;not null;default:draft;index;column:news_status" json:"news_status"`
	PublishedAt *time.Time     `gorm:"type:timestamptz;index;column:news_published_at" json:"news_published_at,omitempty"`
	ViewCount   int            `gorm:"not null;default:0;column:news_view_count" json:"news_view_count"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:news_created_at" json:"news_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:news_updated_at" json:"news_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:news_deleted_at" json:"-"`
}

func (NewsModel) TableName() string { return "news" }
