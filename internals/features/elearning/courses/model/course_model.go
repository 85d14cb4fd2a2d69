package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

type CourseModel struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`
	InstansiID      uuid.UUID `gorm:"type:uuid;not null;index;column:course_instansi_id" json:"course_instansi_id"`
	TeacherID       uuid.UUID `gorm:"type:uuid;not null;index;column:course_teacher_id" json:"course_teacher_id"`
	Title           string    `gorm:"size:200;not null;column:course_title" json:"course_title"`
	Slug            string    `gorm:"size:160;not null;column:course_slug" json:"course_slug"`
	Description     *string   `gorm:"type:text;column:course_description" json:"course_description,omitempty"`
	Status          string    `gorm:"type:varchar(16);not null;default:'draft';index;column:course_status" json:"course_status"`
	EnrollmentCount int       `gorm:"not null;default:0;column:course_enrollment_count" json:"course_enrollment_count"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:course_created_at" json:"course_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:course_updated_at" json:"course_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:course_deleted_at" json:"-"`
}

func (CourseModel) TableName() string { return "courses" }

type CourseLessonModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_lesson_id" json:"course_lesson_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index;column:course_lesson_course_id" json:"course_lesson_course_id"`
	InstansiID  uuid.UUID `gorm:"type:uuid;not null;index;column:course_lesson_instansi_id" json:"course_lesson_instansi_id"`
	Title       string    `gorm:"size:200;not null;column:course_lesson_title" json:"course_lesson_title"`
	Content     *string   `gorm:"type:text;column:course_lesson_content" json:"course_lesson_content,omitempty"`
	Order       int       `gorm:"not null;default:0;column:course_lesson_order" json:"course_lesson_order"`
	IsPublished bool      `gorm:"not null;default:false;column:course_lesson_is_published" json:"course_lesson_is_published"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:course_lesson_created_at" json:"course_lesson_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:course_lesson_updated_at" json:"course_lesson_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:course_lesson_deleted_at" json:"-"`
}

func (CourseLessonModel) TableName() string { return "course_lessons" }
