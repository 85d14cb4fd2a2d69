package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/elearning/quizzes/model"
)

func question(t model.QuestionType, points float64, correct ...string) model.QuizQuestionModel {
	q := model.QuizQuestionModel{ID: uuid.New(), Type: t, Points: points}
	q.SetCorrect(correct)
	return q
}

func strp(s string) *string { return &s }
func f64p(v float64) *float64 { return &v }

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name string
		q    model.QuizQuestionModel
		a    model.AnswerItem
		want bool
	}{
		{"single match case-insensitive", question(model.QuestionSingle, 1, "B"), model.AnswerItem{Values: []string{" b "}}, true},
		{"single wrong", question(model.QuestionSingle, 1, "B"), model.AnswerItem{Values: []string{"C"}}, false},
		{"single empty", question(model.QuestionSingle, 1, "B"), model.AnswerItem{}, false},
		{"true_false", question(model.QuestionTrueFalse, 1, "true"), model.AnswerItem{Values: []string{"TRUE"}}, true},
		{"multiple exact set", question(model.QuestionMultiple, 2, "A", "C"), model.AnswerItem{Values: []string{"c", "a"}}, true},
		{"multiple duplicate ok", question(model.QuestionMultiple, 2, "A", "C"), model.AnswerItem{Values: []string{"A", "C", "a"}}, true},
		{"multiple partial", question(model.QuestionMultiple, 2, "A", "C"), model.AnswerItem{Values: []string{"A"}}, false},
		{"multiple extra", question(model.QuestionMultiple, 2, "A", "C"), model.AnswerItem{Values: []string{"A", "B", "C"}}, false},
		{"multiple empty both", question(model.QuestionMultiple, 2), model.AnswerItem{}, false},
		{"short any accepted", question(model.QuestionShortAnswer, 1, "Jakarta", "DKI Jakarta"), model.AnswerItem{Text: strp("  dki jakarta ")}, true},
		{"short wrong", question(model.QuestionShortAnswer, 1, "Jakarta"), model.AnswerItem{Text: strp("Bandung")}, false},
		{"essay never auto", question(model.QuestionEssay, 5), model.AnswerItem{Text: strp("panjang")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(tt.q, tt.a))
		})
	}
}

func TestCalculateScoreWeighted(t *testing.T) {
	q1 := question(model.QuestionSingle, 2, "A")
	q2 := question(model.QuestionMultiple, 3, "A", "B")
	q3 := question(model.QuestionShortAnswer, 5, "fotosintesis")

	res := CalculateScore([]model.QuizQuestionModel{q1, q2, q3}, model.Answers{
		q1.ID.String(): {Values: []string{"A"}},
		q2.ID.String(): {Values: []string{"A"}},
		q3.ID.String(): {Text: strp("Fotosintesis")},
	})

	assert.Equal(t, 7.0, res.Earned)
	assert.Equal(t, 10.0, res.Total)
	assert.Equal(t, 70.0, res.Score)
	assert.False(t, res.NeedsGrading)

	item := res.Answers[q2.ID.String()]
	require.NotNil(t, item.IsCorrect)
	assert.False(t, *item.IsCorrect)
	assert.Equal(t, 0.0, *item.PointsEarned)
}

func TestCalculateScoreNoQuestions(t *testing.T) {
	res := CalculateScore(nil, model.Answers{})
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 0.0, res.Total)
}

func TestCalculateScoreZeroPoints(t *testing.T) {
	q := question(model.QuestionSingle, 0, "A")
	res := CalculateScore([]model.QuizQuestionModel{q}, model.Answers{q.ID.String(): {Values: []string{"A"}}})
	assert.Equal(t, 0.0, res.Score)
}

func TestCalculateScoreEssayPending(t *testing.T) {
	q1 := question(model.QuestionSingle, 1, "A")
	essay := question(model.QuestionEssay, 4)

	res := CalculateScore([]model.QuizQuestionModel{q1, essay}, model.Answers{
		q1.ID.String():    {Values: []string{"A"}},
		essay.ID.String(): {Text: strp("jawaban")},
	})
	assert.True(t, res.NeedsGrading)
	assert.Equal(t, 20.0, res.Score)
	assert.Nil(t, res.Answers[essay.ID.String()].PointsEarned)
}

func TestCalculateScoreEssayGradedClamped(t *testing.T) {
	essay := question(model.QuestionEssay, 4)
	res := CalculateScore([]model.QuizQuestionModel{essay}, model.Answers{
		essay.ID.String(): {Text: strp("jawaban"), Graded: true, PointsEarned: f64p(9)},
	})
	assert.False(t, res.NeedsGrading)
	assert.Equal(t, 4.0, res.Earned)
	assert.Equal(t, 100.0, res.Score)
}

func TestCalculateScoreRounding(t *testing.T) {
	a := question(model.QuestionSingle, 1, "A")
	b := question(model.QuestionSingle, 1, "A")
	c := question(model.QuestionSingle, 1, "A")
	res := CalculateScore([]model.QuizQuestionModel{a, b, c}, model.Answers{
		a.ID.String(): {Values: []string{"A"}},
		b.ID.String(): {Values: []string{"A"}},
	})
	assert.Equal(t, 66.67, res.Score)
}
