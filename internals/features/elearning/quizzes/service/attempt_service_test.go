package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/elearning/quizzes/model"
)

func TestIsLate(t *testing.T) {
	exp := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		exp  *time.Time
		at   time.Time
		want bool
	}{
		{"no time limit", nil, exp.Add(24 * time.Hour), false},
		{"before expiry", &exp, exp.Add(-time.Minute), false},
		{"inside grace", &exp, exp.Add(29 * time.Second), false},
		{"exactly grace", &exp, exp.Add(SubmitGrace), false},
		{"after grace", &exp, exp.Add(31 * time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLate(tt.exp, tt.at))
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Hour), now.Add(time.Hour)

	tests := []struct {
		name string
		quiz model.QuizModel
		ok   bool
	}{
		{"draft", model.QuizModel{IsPublished: false}, false},
		{"open no window", model.QuizModel{IsPublished: true}, true},
		{"not yet", model.QuizModel{IsPublished: true, AvailableFrom: &future}, false},
		{"closed", model.QuizModel{IsPublished: true, AvailableUntil: &past}, false},
		{"inside window", model.QuizModel{IsPublished: true, AvailableFrom: &past, AvailableUntil: &future}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailability(&tt.quiz, now)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrQuizNotAvailable)
			}
		})
	}
}

func TestShuffleForStable(t *testing.T) {
	qs := make([]model.QuizQuestionModel, 10)
	for i := range qs {
		qs[i] = model.QuizQuestionModel{ID: uuid.New(), Order: i}
	}
	attempt := uuid.New()

	a := ShuffleFor(attempt, qs)
	b := ShuffleFor(attempt, qs)
	require.Len(t, a, len(qs))
	assert.Equal(t, a, b)
	assert.Equal(t, 0, qs[0].Order, "slice asal tidak boleh berubah")
	assert.ElementsMatch(t, qs, a)
}

func TestMergeAnswers(t *testing.T) {
	q1, q2, stray := uuid.NewString(), uuid.NewString(), uuid.NewString()
	pts := 3.0
	existing := model.Answers{q1: {Text: strp("lama"), Graded: true, PointsEarned: &pts}}
	incoming := model.Answers{
		q1:    {Text: strp("baru"), Graded: true},
		q2:    {Values: []string{"A"}},
		stray: {Values: []string{"X"}},
	}

	out := MergeAnswers(existing, incoming, map[string]bool{q1: true, q2: true})
	require.Len(t, out, 2)
	assert.Equal(t, "baru", *out[q1].Text)
	assert.False(t, out[q1].Graded)
	assert.Nil(t, out[q1].PointsEarned)
	assert.Equal(t, []string{"A"}, out[q2].Values)
}

func TestApplyResult(t *testing.T) {
	quiz := &model.QuizModel{PassingScore: 70}

	a := &model.QuizAttemptModel{}
	ApplyResult(a, quiz, ScoreResult{Earned: 8, Total: 10, Score: 80, Answers: model.Answers{}})
	assert.Equal(t, model.AttemptGraded, a.Status)
	require.NotNil(t, a.IsPassed)
	assert.True(t, *a.IsPassed)

	ApplyResult(a, quiz, ScoreResult{Earned: 5, Total: 10, Score: 50, Answers: model.Answers{}})
	assert.False(t, *a.IsPassed)

	ApplyResult(a, quiz, ScoreResult{Earned: 9, Total: 10, Score: 90, NeedsGrading: true, Answers: model.Answers{}})
	assert.Equal(t, model.AttemptNeedsGrading, a.Status)
	assert.Nil(t, a.IsPassed)
	require.NotNil(t, a.Score)
	assert.Equal(t, 90.0, *a.Score)
}

func TestPlanStart(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	running := now.Add(10 * time.Minute)
	gone := now.Add(-time.Hour)

	attempt := func(no int, status string, exp *time.Time) model.QuizAttemptModel {
		return model.QuizAttemptModel{ID: uuid.New(), AttemptNo: no, Status: status, ExpiresAt: exp}
	}

	tests := []struct {
		name     string
		attempts []model.QuizAttemptModel
		max      int
		resumeNo int
		expired  []int
		nextNo   int
		err      error
	}{
		{name: "first attempt", nextNo: 1},
		{name: "resume running", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptGraded, nil),
			attempt(2, model.AttemptInProgress, &running),
		}, max: 2, resumeNo: 2},
		{name: "resume without time limit", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptInProgress, nil),
		}, max: 1, resumeNo: 1},
		{name: "expired closed then new", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptInProgress, &gone),
		}, max: 3, expired: []int{1}, nextNo: 2},
		{name: "expired counts toward max", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptGraded, nil),
			attempt(2, model.AttemptInProgress, &gone),
		}, max: 2, expired: []int{2}, err: ErrMaxAttemptsReached},
		{name: "max reached", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptGraded, nil),
		}, max: 1, err: ErrMaxAttemptsReached},
		{name: "unlimited", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptGraded, nil),
			attempt(2, model.AttemptExpired, nil),
			attempt(3, model.AttemptGraded, nil),
		}, nextNo: 4},
		{name: "gap in numbering", attempts: []model.QuizAttemptModel{
			attempt(1, model.AttemptGraded, nil),
			attempt(4, model.AttemptGraded, nil),
		}, max: 5, nextNo: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := planStart(tt.attempts, &model.QuizModel{MaxAttempts: tt.max}, now)

			var expired []int
			for _, a := range plan.Expired {
				expired = append(expired, a.AttemptNo)
			}
			assert.Equal(t, tt.expired, expired)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			if tt.resumeNo > 0 {
				require.NotNil(t, plan.Resume)
				assert.Equal(t, tt.resumeNo, plan.Resume.AttemptNo)
				return
			}
			assert.Nil(t, plan.Resume)
			assert.Equal(t, tt.nextNo, plan.NextNo)
		})
	}
}
