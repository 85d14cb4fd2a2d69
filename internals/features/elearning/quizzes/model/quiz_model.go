package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:quiz_id" json:"quiz_id"`
	InstansiID       uuid.UUID  `gorm:"type:uuid;not null;index;column:quiz_instansi_id" json:"quiz_instansi_id"`
	CourseID         uuid.UUID  `gorm:"type:uuid;not null;index;column:quiz_course_id" json:"quiz_course_id"`
	Title            string     `gorm:"size:200;not null;column:quiz_title" json:"quiz_title"`
	Description      *string    `gorm:"type:text;column:quiz_description" json:"quiz_description,omitempty"`
	TimeLimitMinutes *int       `gorm:"column:quiz_time_limit_minutes" json:"quiz_time_limit_minutes,omitempty"`
	MaxAttempts      int        `gorm:"not null;default:0;column:quiz_max_attempts" json:"quiz_max_attempts"` // 0 = tanpa batas
	PassingScore     float64    `gorm:"type:numeric(5,2);not null;default:0;column:quiz_passing_score" json:"quiz_passing_score"`
	GradingPolicy    string     `gorm:"type:varchar(16);not null;default:'highest';column:quiz_grading_policy" json:"quiz_grading_policy"`
	ShuffleQuestions bool       `gorm:"not null;default:false;column:quiz_shuffle_questions" json:"quiz_shuffle_questions"`
	IsPublished      bool       `gorm:"not null;default:false;index;column:quiz_is_published" json:"quiz_is_published"`
	AvailableFrom    *time.Time `gorm:"type:timestamptz;column:quiz_available_from" json:"quiz_available_from,omitempty"`
	AvailableUntil   *time.Time `gorm:"type:timestamptz;column:quiz_available_until" json:"quiz_available_until,omitempty"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:quiz_created_at" json:"quiz_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:quiz_updated_at" json:"quiz_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:quiz_deleted_at" json:"-"`
}

func (QuizModel) TableName() string { return "quizzes" }

// IsOpenAt: di dalam jendela AvailableFrom..AvailableUntil (batas nil = terbuka).
func (q *QuizModel) IsOpenAt(now time.Time) bool {
	if q.AvailableFrom != nil && now.Before(*q.AvailableFrom) {
		return false
	}
	if q.AvailableUntil != nil && now.After(*q.AvailableUntil) {
		return false
	}
	return true
}
