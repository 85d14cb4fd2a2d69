package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/elearning/courses/model"
)

func TestComputePercent(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		want             int
	}{
		{"no lessons", 0, 0, 0},
		{"no lessons but completions", 3, 0, 0},
		{"none done", 0, 4, 0},
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
		{"half", 1, 2, 50},
		{"all", 5, 5, 100},
		{"more than total", 6, 5, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputePercent(tt.completed, tt.total))
		})
	}
}

func TestApplyProgressCompletesOnce(t *testing.T) {
	first := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	e := &model.CourseEnrollmentModel{Status: model.EnrollmentActive}

	ApplyProgress(e, 3, 3, first)
	assert.Equal(t, model.EnrollmentCompleted, e.Status)
	require.NotNil(t, e.CompletedAt)
	assert.True(t, first.Equal(*e.CompletedAt))

	ApplyProgress(e, 3, 3, first.Add(time.Hour))
	assert.True(t, first.Equal(*e.CompletedAt), "completed_at tidak boleh berubah")
}

func TestApplyProgressRevertsWhenLessonAdded(t *testing.T) {
	now := time.Now()
	e := &model.CourseEnrollmentModel{Status: model.EnrollmentCompleted, CompletedAt: &now}

	ApplyProgress(e, 3, 4, now)
	assert.Equal(t, model.EnrollmentActive, e.Status)
	assert.Nil(t, e.CompletedAt)
	assert.Equal(t, 75, e.ProgressPercent)
	assert.Equal(t, 3, e.CompletedLessons)
	assert.Equal(t, 4, e.TotalLessons)
}

func TestApplyProgressKeepsDropped(t *testing.T) {
	e := &model.CourseEnrollmentModel{Status: model.EnrollmentDropped}
	ApplyProgress(e, 2, 2, time.Now())
	assert.Equal(t, model.EnrollmentDropped, e.Status)
	assert.Equal(t, 100, e.ProgressPercent)
	assert.Nil(t, e.CompletedAt)
}

func TestApplyProgressEmptyCourse(t *testing.T) {
	e := &model.CourseEnrollmentModel{Status: model.EnrollmentActive}
	ApplyProgress(e, 0, 0, time.Now())
	assert.Equal(t, 0, e.ProgressPercent)
	assert.Equal(t, model.EnrollmentActive, e.Status)
}
