package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForumModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:forum_id" json:"forum_id"`
	InstansiID  uuid.UUID  `gorm:"type:uuid;not null;index;column:forum_instansi_id" json:"forum_instansi_id"`
	CourseID    *uuid.UUID `gorm:"type:uuid;index;column:forum_course_id" json:"forum_course_id,omitempty"`
	Title       string     `gorm:"size:200;not null;column:forum_title" json:"forum_title"`
	Description *string    `gorm:"type:text;column:forum_description" json:"forum_description,omitempty"`
	IsActive    bool       `gorm:"not null;default:true;column:forum_is_active" json:"forum_is_active"`
	ThreadCount int        `gorm:"not null;default:0;column:forum_thread_count" json:"forum_thread_count"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:forum_created_at" json:"forum_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:forum_updated_at" json:"forum_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:forum_deleted_at" json:"-"`
}

func (ForumModel) TableName() string { return "forums" }

type ForumThreadModel struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:forum_thread_id" json:"forum_thread_id"`
	ForumID        uuid.UUID `gorm:"type:uuid;not null;index;column:forum_thread_forum_id" json:"forum_thread_forum_id"`
	InstansiID     uuid.UUID `gorm:"type:uuid;not null;index;column:forum_thread_instansi_id" json:"forum_thread_instansi_id"`
	AuthorID       uuid.UUID `gorm:"type:uuid;not null;index;column:forum_thread_author_id" json:"forum_thread_author_id"`
	Title          string    `gorm:"size:200;not null;column:forum_thread_title" json:"forum_thread_title"`
	Body           string    `gorm:"type:text;not null;column:forum_thread_body" json:"forum_thread_body"`
	IsPinned       bool      `gorm:"not null;default:false;column:forum_thread_is_pinned" json:"forum_thread_is_pinned"`
	IsLocked       bool      `gorm:"not null;default:false;column:forum_thread_is_locked" json:"forum_thread_is_locked"`
	ReplyCount     int       `gorm:"not null;default:0;column:forum_thread_reply_count" json:"forum_thread_reply_count"`
	ViewCount      int       `gorm:"not null;default:0;column:forum_thread_view_count" json:"forum_thread_view_count"`
	LastActivityAt time.Time `gorm:"type:timestamptz;not null;index;column:forum_thread_last_activity_at" json:"forum_thread_last_activity_at"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:forum_thread_created_at" json:"forum_thread_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:forum_thread_updated_at" json:"forum_thread_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:forum_thread_deleted_at" json:"-"`
}

func (ForumThreadModel) TableName() string { return "forum_threads" }

type ForumPostModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:forum_post_id" json:"forum_post_id"`
	ThreadID   uuid.UUID  `gorm:"type:uuid;not null;index;column:forum_post_thread_id" json:"forum_post_thread_id"`
	InstansiID uuid.UUID  `gorm:"type:uuid;not null;index;column:forum_post_instansi_id" json:"forum_post_instansi_id"`
	AuthorID   uuid.UUID  `gorm:"type:uuid;not null;index;column:forum_post_author_id" json:"forum_post_author_id"`
	Body       string     `gorm:"type:text;not null;column:forum_post_body" json:"forum_post_body"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index;column:forum_post_parent_id" json:"forum_post_parent_id,omitempty"`
	EditedAt   *time.Time `gorm:"type:timestamptz;column:forum_post_edited_at" json:"forum_post_edited_at,omitempty"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:forum_post_created_at" json:"forum_post_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:forum_post_updated_at" json:"forum_post_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:forum_post_deleted_at" json:"-"`
}

func (ForumPostModel) TableName() string { return "forum_posts" }
