package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/elearning/quizzes/model"
)

func opts(keys ...string) []model.QuestionOption {
	out := make([]model.QuestionOption, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.QuestionOption{Key: k, Text: "opsi " + k})
	}
	return out
}

func TestQuestionRequestCheck(t *testing.T) {
	tests := []struct {
		name  string
		req   QuestionRequest
		valid bool
	}{
		{"single ok", QuestionRequest{Type: "single", Options: opts("A", "B"), CorrectAnswers: []string{"a"}}, true},
		{"single two keys", QuestionRequest{Type: "single", Options: opts("A", "B"), CorrectAnswers: []string{"A", "B"}}, false},
		{"single one option", QuestionRequest{Type: "single", Options: opts("A"), CorrectAnswers: []string{"A"}}, false},
		{"single key missing", QuestionRequest{Type: "single", Options: opts("A", "B"), CorrectAnswers: []string{"C"}}, false},
		{"duplicate option", QuestionRequest{Type: "multiple", Options: opts("A", "a"), CorrectAnswers: []string{"A"}}, false},
		{"multiple ok", QuestionRequest{Type: "multiple", Options: opts("A", "B", "C"), CorrectAnswers: []string{"A", "C"}}, true},
		{"true_false ok", QuestionRequest{Type: "true_false", CorrectAnswers: []string{"False"}}, true},
		{"true_false bad", QuestionRequest{Type: "true_false", CorrectAnswers: []string{"ya"}}, false},
		{"short needs answer", QuestionRequest{Type: "short_answer"}, false},
		{"short ok", QuestionRequest{Type: "short_answer", CorrectAnswers: []string{"Jakarta"}}, true},
		{"essay ok", QuestionRequest{Type: "essay"}, true},
		{"essay with key", QuestionRequest{Type: "essay", CorrectAnswers: []string{"x"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.req.Check() == "", tt.req.Check())
		})
	}
}

func TestQuestionToModelTrueFalseOptions(t *testing.T) {
	quiz := model.QuizModel{ID: uuid.New(), InstansiID: uuid.New()}
	q := QuestionRequest{Type: "true_false", Text: " Bumi bulat? ", CorrectAnswers: []string{"true"}}.ToModel(quiz, 3)

	assert.Equal(t, 3, q.Order)
	assert.Equal(t, 1.0, q.Points)
	assert.Equal(t, "Bumi bulat?", q.Text)
	assert.Len(t, q.OptionList(), 2)
	assert.Equal(t, []string{"true"}, q.CorrectList())
}

func TestToStudentQuestionsHidesKey(t *testing.T) {
	q := model.QuizQuestionModel{ID: uuid.New(), Type: model.QuestionSingle}
	q.SetOptions(opts("A", "B"))
	q.SetCorrect([]string{"A"})

	hidden := ToStudentQuestions([]model.QuizQuestionModel{q}, false)
	assert.Empty(t, hidden[0].Correct)
	assert.Len(t, hidden[0].Options, 2)

	shown := ToStudentQuestions([]model.QuizQuestionModel{q}, true)
	assert.Equal(t, []string{"A"}, shown[0].Correct)
}

func TestUpdateQuizApply(t *testing.T) {
	zero := 0
	policy := "latest"
	m, policyChanged := UpdateQuizRequest{TimeLimitMinutes: &zero, GradingPolicy: &policy}.Apply()
	assert.True(t, policyChanged)
	assert.Nil(t, m["quiz_time_limit_minutes"])
	_, has := m["quiz_time_limit_minutes"]
	assert.True(t, has)
	assert.Equal(t, "latest", m["quiz_grading_policy"])
}
