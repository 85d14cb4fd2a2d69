package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

type CourseEnrollmentModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_enrollment_id" json:"course_enrollment_id"`
	CourseID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment_course_student;column:course_enrollment_course_id" json:"course_enrollment_course_id"`
	InstansiID       uuid.UUID  `gorm:"type:uuid;not null;index;column:course_enrollment_instansi_id" json:"course_enrollment_instansi_id"`
	StudentID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment_course_student;index;column:course_enrollment_student_id" json:"course_enrollment_student_id"`
	Status           string     `gorm:"type:varchar(16);not null;default:'active';column:course_enrollment_status" json:"course_enrollment_status"`
	ProgressPercent  int        `gorm:"not null;default:0;column:course_enrollment_progress_percent" json:"course_enrollment_progress_percent"`
	CompletedLessons int        `gorm:"not null;default:0;column:course_enrollment_completed_lessons" json:"course_enrollment_completed_lessons"`
	TotalLessons     int        `gorm:"not null;default:0;column:course_enrollment_total_lessons" json:"course_enrollment_total_lessons"`
	CompletedAt      *time.Time `gorm:"type:timestamptz;column:course_enrollment_completed_at" json:"course_enrollment_completed_at,omitempty"`
	LastAccessedAt   *time.Time `gorm:"type:timestamptz;column:course_enrollment_last_accessed_at" json:"course_enrollment_last_accessed_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:course_enrollment_created_at" json:"course_enrollment_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:course_enrollment_updated_at" json:"course_enrollment_updated_at"`
}

func (CourseEnrollmentModel) TableName() string { return "course_enrollments" }

type LessonCompletionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:lesson_completion_id" json:"lesson_completion_id"`
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_completion_enrollment_lesson;column:lesson_completion_enrollment_id" json:"lesson_completion_enrollment_id"`
	LessonID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_completion_enrollment_lesson;column:lesson_completion_lesson_id" json:"lesson_completion_lesson_id"`
	CompletedAt  time.Time `gorm:"type:timestamptz;not null;column:lesson_completion_completed_at" json:"lesson_completion_completed_at"`
}

func (LessonCompletionModel) TableName() string { return "lesson_completions" }
