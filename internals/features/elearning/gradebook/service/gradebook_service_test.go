package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/elearning/gradebook/model"
)

func TestApplyPolicy(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	attempts := []GradedAttempt{
		{AttemptNo: 1, EarnedPoints: 6, TotalPoints: 10, Score: 60, SubmittedAt: base},
		{AttemptNo: 2, EarnedPoints: 9, TotalPoints: 10, Score: 90, SubmittedAt: base.Add(time.Hour)},
		{AttemptNo: 3, EarnedPoints: 7.5, TotalPoints: 10, Score: 75, SubmittedAt: base.Add(2 * time.Hour)},
	}

	tests := []struct {
		policy  string
		percent float64
		score   float64
		at      time.Time
	}{
		{PolicyHighest, 90, 9, base.Add(time.Hour)},
		{PolicyLatest, 75, 7.5, base.Add(2 * time.Hour)},
		{PolicyAverage, 75, 7.5, base.Add(2 * time.Hour)},
		{"", 90, 9, base.Add(time.Hour)},
	}
	for _, tt := range tests {
		t.Run("policy "+tt.policy, func(t *testing.T) {
			res, ok := ApplyPolicy(tt.policy, attempts)
			require.True(t, ok)
			assert.InDelta(t, tt.percent, res.Percent, 0.001)
			assert.InDelta(t, tt.score, res.Score, 0.001)
			assert.Equal(t, 10.0, res.MaxScore)
			assert.True(t, tt.at.Equal(res.GradedAt))
		})
	}
}

func TestApplyPolicyNoAttempts(t *testing.T) {
	_, ok := ApplyPolicy(PolicyHighest, nil)
	assert.False(t, ok)
}

func TestApplyPolicyHighestTiePrefersLater(t *testing.T) {
	base := time.Now()
	res, ok := ApplyPolicy(PolicyHighest, []GradedAttempt{
		{AttemptNo: 2, Score: 80, EarnedPoints: 8, TotalPoints: 10, SubmittedAt: base.Add(time.Minute)},
		{AttemptNo: 1, Score: 80, EarnedPoints: 8, TotalPoints: 10, SubmittedAt: base},
	})
	require.True(t, ok)
	assert.True(t, base.Add(time.Minute).Equal(res.GradedAt))
}

func TestApplyPolicyAverageRounds(t *testing.T) {
	now := time.Now()
	res, _ := ApplyPolicy(PolicyAverage, []GradedAttempt{
		{AttemptNo: 1, Score: 100, EarnedPoints: 3, TotalPoints: 3, SubmittedAt: now},
		{AttemptNo: 2, Score: 33.33, EarnedPoints: 1, TotalPoints: 3, SubmittedAt: now.Add(time.Second)},
		{AttemptNo: 3, Score: 66.67, EarnedPoints: 2, TotalPoints: 3, SubmittedAt: now.Add(2 * time.Second)},
	})
	assert.Equal(t, 66.67, res.Percent)
	assert.Equal(t, 2.0, res.Score)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 85.0, Percent(85, 100))
	assert.Equal(t, 66.67, Percent(2, 3))
}

func TestSummarize(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	out := Summarize([]model.GradeRecordModel{
		{StudentID: a, SourceType: model.SourceQuiz, Percent: 80},
		{StudentID: a, SourceType: model.SourceAssignment, Percent: 60},
		{StudentID: b, SourceType: model.SourceQuiz, Percent: 95},
	})
	require.Len(t, out, 2)

	assert.Equal(t, b, out[0].StudentID)
	assert.Equal(t, 95.0, out[0].AveragePercent)
	assert.Nil(t, out[0].TaskAverage)

	assert.Equal(t, a, out[1].StudentID)
	assert.Equal(t, 2, out[1].Items)
	assert.Equal(t, 70.0, out[1].AveragePercent)
	require.NotNil(t, out[1].QuizAverage)
	assert.Equal(t, 80.0, *out[1].QuizAverage)
	require.NotNil(t, out[1].TaskAverage)
	assert.Equal(t, 60.0, *out[1].TaskAverage)
}

func TestIsValidPolicy(t *testing.T) {
	assert.True(t, IsValidPolicy("average"))
	assert.False(t, IsValidPolicy("best"))
}
