package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	AttemptInProgress   = "in_progress"
	AttemptSubmitted    = "submitted"
	AttemptNeedsGrading = "needs_grading"
	AttemptGraded       = "graded"
	AttemptExpired      = "expired"
)

// AnswerItem: jawaban satu soal + hasil koreksi.
type AnswerItem struct {
	Values       []string `json:"values,omitempty"`
	Text         *string  `json:"text,omitempty"`
	IsCorrect    *bool    `json:"is_correct,omitempty"`
	PointsEarned *float64 `json:"points_earned,omitempty"`
	Graded       bool     `json:"graded"` // essay sudah dinilai manual
	Feedback     *string  `json:"feedback,omitempty"`
}

// Answers: key = quiz_question_id
type Answers map[string]AnswerItem

type QuizAttemptModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:quiz_attempt_id" json:"quiz_attempt_id"`
	QuizID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attempt_quiz_student_no;column:quiz_attempt_quiz_id" json:"quiz_attempt_quiz_id"`
	InstansiID   uuid.UUID      `gorm:"type:uuid;not null;index;column:quiz_attempt_instansi_id" json:"quiz_attempt_instansi_id"`
	StudentID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attempt_quiz_student_no;index;column:quiz_attempt_student_id" json:"quiz_attempt_student_id"`
	AttemptNo    int            `gorm:"not null;uniqueIndex:uq_attempt_quiz_student_no;column:quiz_attempt_no" json:"quiz_attempt_no"`
	Status       string         `gorm:"type:varchar(16);not null;default:'in_progress';index;column:quiz_attempt_status" json:"quiz_attempt_status"`
	StartedAt    time.Time      `gorm:"type:timestamptz;not null;column:quiz_attempt_started_at" json:"quiz_attempt_started_at"`
	SubmittedAt  *time.Time     `gorm:"type:timestamptz;column:quiz_attempt_submitted_at" json:"quiz_attempt_submitted_at,omitempty"`
	ExpiresAt    *time.Time     `gorm:"type:timestamptz;column:quiz_attempt_expires_at" json:"quiz_attempt_expires_at,omitempty"`
	Answers      datatypes.JSON `gorm:"type:jsonb;not null;default:'{}';column:quiz_attempt_answers" json:"quiz_attempt_answers"`
	Score        *float64       `gorm:"type:numeric(5,2);column:quiz_attempt_score" json:"quiz_attempt_score,omitempty"`
	EarnedPoints float64        `gorm:"type:numeric(8,2);not null;default:0;column:quiz_attempt_earned_points" json:"quiz_attempt_earned_points"`
	TotalPoints  float64        `gorm:"type:numeric(8,2);not null;default:0;column:quiz_attempt_total_points" json:"quiz_attempt_total_points"`
	IsPassed     *bool          `gorm:"column:quiz_attempt_is_passed" json:"quiz_attempt_is_passed,omitempty"`
	IsLate       bool           `gorm:"not null;default:false;column:quiz_attempt_is_late" json:"quiz_attempt_is_late"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;column:quiz_attempt_created_at" json:"quiz_attempt_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:quiz_attempt_updated_at" json:"quiz_attempt_updated_at"`
}

func (QuizAttemptModel) TableName() string { return "quiz_attempts" }

func (m *QuizAttemptModel) DecodeAnswers() Answers {
	out := Answers{}
	if len(m.Answers) == 0 {
		return out
	}
	_ = json.Unmarshal(m.Answers, &out)
	return out
}

func (m *QuizAttemptModel) EncodeAnswers(a Answers) {
	if a == nil {
		a = Answers{}
	}
	b, _ := json.Marshal(a)
	m.Answers = datatypes.JSON(b)
}
