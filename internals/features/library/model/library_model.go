package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LibraryBookModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:book_id" json:"book_id"`
	InstansiID  uuid.UUID `gorm:"type:uuid;not null;index;column:book_instansi_id" json:"book_instansi_id"`
	Title       string    `gorm:"size:255;not null;column:book_title" json:"book_title"`
	Slug        string    `gorm:"size:160;not null;index;column:book_slug" json:"book_slug"`
	Author      *string   `gorm:"size:160;column:book_author" json:"book_author,omitempty"`
	Description *string   `gorm:"type:text;column:book_description" json:"book_description,omitempty"`
	Category    *string   `gorm:"size:80;index;column:book_category" json:"book_category,omitempty"`
	FileURL     string    `gorm:"type:text;not null;column:book_file_url" json:"book_file_url"`
	CoverURL    *string   `gorm:"type:text;column:book_cover_url" json:"book_cover_url,omitempty"`
	TotalPages  int       `gorm:"not null;default:0;column:book_total_pages" json:"book_total_pages"`
	IsPublished bool      `gorm:"not null;default:false;index;column:book_is_published" json:"book_is_published"`
	ReaderCount int       `gorm:"not null;default:0;column:book_reader_count" json:"book_reader_count"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:book_created_at" json:"book_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:book_updated_at" json:"book_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:book_deleted_at" json:"-"`
}

func (LibraryBookModel) TableName() string { return "books" }

// ReadingProgressModel: satu baris per (buku, user).
type ReadingProgressModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:reading_progress_id" json:"reading_progress_id"`
	BookID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_reading_book_user;column:reading_progress_book_id" json:"reading_progress_book_id"`
	InstansiID      uuid.UUID  `gorm:"type:uuid;not null;index;column:reading_progress_instansi_id" json:"reading_progress_instansi_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_reading_book_user;column:reading_progress_user_id" json:"reading_progress_user_id"`
	CurrentPage     int        `gorm:"not null;default:1;column:reading_progress_current_page" json:"reading_progress_current_page"`
	FurthestPage    int        `gorm:"not null;default:0;column:reading_progress_furthest_page" json:"reading_progress_furthest_page"`
	TotalPages      int        `gorm:"not null;default:0;column:reading_progress_total_pages" json:"reading_progress_total_pages"`
	Percent         float64    `gorm:"type:numeric(5,2);not null;default:0;column:reading_progress_percent" json:"reading_progress_percent"`
	ReadingSeconds  int64      `gorm:"not null;default:0;column:reading_progress_reading_seconds" json:"reading_progress_reading_seconds"`
	IsCompleted     bool       `gorm:"not null;default:false;column:reading_progress_is_completed" json:"reading_progress_is_completed"`
	CompletedAt     *time.Time `gorm:"type:timestamptz;column:reading_progress_completed_at" json:"reading_progress_completed_at,omitempty"`
	ClientUpdatedAt time.Time  `gorm:"type:timestamptz;not null;column:reading_progress_client_updated_at" json:"reading_progress_client_updated_at"`
	LastReadAt      time.Time  `gorm:"type:timestamptz;not null;column:reading_progress_last_read_at" json:"reading_progress_last_read_at"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:reading_progress_created_at" json:"reading_progress_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:reading_progress_updated_at" json:"reading_progress_updated_at"`
}

func (ReadingProgressModel) TableName() string { return "reading_progress" }

type BookmarkModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:bookmark_id" json:"bookmark_id"`
	BookID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_bookmark_book_user_page;column:bookmark_book_id" json:"bookmark_book_id"`
	InstansiID uuid.UUID `gorm:"type:uuid;not null;index;column:bookmark_instansi_id" json:"bookmark_instansi_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_bookmark_book_user_page;column:bookmark_user_id" json:"bookmark_user_id"`
	Page       int       `gorm:"not null;uniqueIndex:uq_bookmark_book_user_page;column:bookmark_page" json:"bookmark_page"`
	Label      *string   `gorm:"size:120;column:bookmark_label" json:"bookmark_label,omitempty"`
	Note       *string   `gorm:"type:text;column:bookmark_note" json:"bookmark_note,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:bookmark_created_at" json:"bookmark_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:bookmark_updated_at" json:"bookmark_updated_at"`
}

func (BookmarkModel) TableName() string { return "bookmarks" }
