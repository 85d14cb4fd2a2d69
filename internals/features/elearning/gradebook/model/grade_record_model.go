package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SourceQuiz       = "quiz"
	SourceAssignment = "assignment"
)

type GradeRecordModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_record_id" json:"grade_record_id"`
	InstansiID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_record_instansi_id" json:"grade_record_instansi_id"`
	CourseID   uuid.UUID `gorm:"type:uuid;not null;index;column:grade_record_course_id" json:"grade_record_course_id"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_source_student,priority:3;index;column:grade_record_student_id" json:"grade_record_student_id"`
	SourceType string    `gorm:"type:varchar(16);not null;uniqueIndex:uq_grade_source_student,priority:1;column:grade_record_source_type" json:"grade_record_source_type"`
	SourceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_grade_source_student,priority:2;column:grade_record_source_id" json:"grade_record_source_id"`
	Title      string    `gorm:"size:200;column:grade_record_title" json:"grade_record_title"`
	Score      float64   `gorm:"type:numeric(8,2);not null;default:0;column:grade_record_score" json:"grade_record_score"`
	MaxScore   float64   `gorm:"type:numeric(8,2);not null;default:0;column:grade_record_max_score" json:"grade_record_max_score"`
	Percent    float64   `gorm:"type:numeric(5,2);not null;default:0;column:grade_record_percent" json:"grade_record_percent"`
	GradedAt   time.Time `gorm:"type:timestamptz;not null;column:grade_record_graded_at" json:"grade_record_graded_at"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:grade_record_created_at" json:"grade_record_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:grade_record_updated_at" json:"grade_record_updated_at"`
}

func (GradeRecordModel) TableName() string { return "grade_records" }
