package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionSingle      QuestionType = "single"
	QuestionMultiple    QuestionType = "multiple"
	QuestionTrueFalse   QuestionType = "true_false"
	QuestionShortAnswer QuestionType = "short_answer"
	QuestionEssay       QuestionType = "essay"
)

func IsValidQuestionType(t string) bool {
	switch QuestionType(t) {
	case QuestionSingle, QuestionMultiple, QuestionTrueFalse, QuestionShortAnswer, QuestionEssay:
		return true
	}
	return false
}

type QuestionOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type QuizQuestionModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:quiz_question_id" json:"quiz_question_id"`
	QuizID         uuid.UUID      `gorm:"type:uuid;not null;index;column:quiz_question_quiz_id" json:"quiz_question_quiz_id"`
	InstansiID     uuid.UUID      `gorm:"type:uuid;not null;index;column:quiz_question_instansi_id" json:"quiz_question_instansi_id"`
	Type           QuestionType   `gorm:"type:varchar(16);not null;column:quiz_question_type" json:"quiz_question_type"`
	Text           string         `gorm:"type:text;not null;column:quiz_question_text" json:"quiz_question_text"`
	Points         float64        `gorm:"type:numeric(6,2);not null;default:1;column:quiz_question_points" json:"quiz_question_points"`
	Options        datatypes.JSON `gorm:"type:jsonb;column:quiz_question_options" json:"quiz_question_options,omitempty"`
	CorrectAnswers datatypes.JSON `gorm:"type:jsonb;column:quiz_question_correct_answers" json:"quiz_question_correct_answers,omitempty"`
	Order          int            `gorm:"not null;default:0;column:quiz_question_order" json:"quiz_question_order"`
	Explanation    *string        `gorm:"type:text;column:quiz_question_explanation" json:"quiz_question_explanation,omitempty"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:quiz_question_created_at" json:"quiz_question_created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:quiz_question_updated_at" json:"quiz_question_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:quiz_question_deleted_at" json:"-"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }

func (m *QuizQuestionModel) IsEssay() bool { return m.Type == QuestionEssay }

func (m *QuizQuestionModel) OptionList() []QuestionOption {
	var out []QuestionOption
	if len(m.Options) == 0 {
		return out
	}
	_ = json.Unmarshal(m.Options, &out)
	return out
}

func (m *QuizQuestionModel) CorrectList() []string {
	var out []string
	if len(m.CorrectAnswers) == 0 {
		return out
	}
	_ = json.Unmarshal(m.CorrectAnswers, &out)
	return out
}

func (m *QuizQuestionModel) SetOptions(opts []QuestionOption) {
	for i := range opts {
		opts[i].Key = strings.TrimSpace(opts[i].Key)
	}
	b, _ := json.Marshal(opts)
	m.Options = datatypes.JSON(b)
}

func (m *QuizQuestionModel) SetCorrect(ans []string) {
	clean := make([]string, 0, len(ans))
	for _, a := range ans {
		if a = strings.TrimSpace(a); a != "" {
			clean = append(clean, a)
		}
	}
	b, _ := json.Marshal(clean)
	m.CorrectAnswers = datatypes.JSON(b)
}
