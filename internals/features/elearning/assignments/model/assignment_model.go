package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
	SubmissionReturned  = "returned"
)

type AssignmentModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assignment_id" json:"assignment_id"`
	InstansiID         uuid.UUID  `gorm:"type:uuid;not null;index;column:assignment_instansi_id" json:"assignment_instansi_id"`
	CourseID           uuid.UUID  `gorm:"type:uuid;not null;index;column:assignment_course_id" json:"assignment_course_id"`
	Title              string     `gorm:"size:200;not null;column:assignment_title" json:"assignment_title"`
	Instructions       *string    `gorm:"type:text;column:assignment_instructions" json:"assignment_instructions,omitempty"`
	MaxPoints          float64    `gorm:"type:numeric(8,2);not null;default:100;column:assignment_max_points" json:"assignment_max_points"`
	DueAt              *time.Time `gorm:"type:timestamptz;column:assignment_due_at" json:"assignment_due_at,omitempty"`
	AllowLate          bool       `gorm:"not null;default:false;column:assignment_allow_late" json:"assignment_allow_late"`
	LatePenaltyPercent float64    `gorm:"type:numeric(5,2);not null;default:0;column:assignment_late_penalty_percent" json:"assignment_late_penalty_percent"`
	AttachmentURL      *string    `gorm:"type:text;column:assignment_attachment_url" json:"assignment_attachment_url,omitempty"`
	IsPublished        bool       `gorm:"not null;default:false;index;column:assignment_is_published" json:"assignment_is_published"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:assignment_created_at" json:"assignment_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:assignment_updated_at" json:"assignment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:assignment_deleted_at" json:"-"`
}

func (AssignmentModel) TableName() string { return "assignments" }

type AssignmentSubmissionModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assignment_submission_id" json:"assignment_submission_id"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_submission_assignment_student;column:assignment_submission_assignment_id" json:"assignment_submission_assignment_id"`
	InstansiID   uuid.UUID  `gorm:"type:uuid;not null;index;column:assignment_submission_instansi_id" json:"assignment_submission_instansi_id"`
	StudentID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_submission_assignment_student;index;column:assignment_submission_student_id" json:"assignment_submission_student_id"`
	Content      *string    `gorm:"type:text;column:assignment_submission_content" json:"assignment_submission_content,omitempty"`
	FileURL      *string    `gorm:"type:text;column:assignment_submission_file_url" json:"assignment_submission_file_url,omitempty"`
	Status       string     `gorm:"type:varchar(16);not null;default:'submitted';index;column:assignment_submission_status" json:"assignment_submission_status"`
	SubmittedAt  time.Time  `gorm:"type:timestamptz;not null;column:assignment_submission_submitted_at" json:"assignment_submission_submitted_at"`
	IsLate       bool       `gorm:"not null;default:false;column:assignment_submission_is_late" json:"assignment_submission_is_late"`
	Score        *float64   `gorm:"type:numeric(8,2);column:assignment_submission_score" json:"assignment_submission_score,omitempty"`
	FinalScore   *float64   `gorm:"type:numeric(8,2);column:assignment_submission_final_score" json:"assignment_submission_final_score,omitempty"`
	Feedback     *string    `gorm:"type:text;column:assignment_submission_feedback" json:"assignment_submission_feedback,omitempty"`
	GradedAt     *time.Time `gorm:"type:timestamptz;column:assignment_submission_graded_at" json:"assignment_submission_graded_at,omitempty"`
	GradedBy     *uuid.UUID `gorm:"type:uuid;column:assignment_submission_graded_by" json:"assignment_submission_graded_by,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:assignment_submission_created_at" json:"assignment_submission_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:assignment_submission_updated_at" json:"assignment_submission_updated_at"`
}

func (AssignmentSubmissionModel) TableName() string { return "assignment_submissions" }
