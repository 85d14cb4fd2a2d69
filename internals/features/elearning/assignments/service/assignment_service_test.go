package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/elearning/assignments/model"
)

func TestComputeFinalScore(t *testing.T) {
	tests := []struct {
		name           string
		score, max     float64
		penalty        float64
		late           bool
		clamped, final float64
	}{
		{"on time", 80, 100, 20, false, 80, 80},
		{"late with penalty", 80, 100, 20, true, 80, 64},
		{"clamped above max", 120, 100, 0, false, 100, 100},
		{"clamped below zero", -5, 100, 10, true, 0, 0},
		{"penalty over 100", 50, 100, 150, true, 50, 0},
		{"late no penalty", 70, 100, 0, true, 70, 70},
		{"rounding", 33.333, 50, 10, true, 33.33, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, f := ComputeFinalScore(tt.score, tt.max, tt.penalty, tt.late)
			assert.InDelta(t, tt.clamped, c, 0.001)
			assert.InDelta(t, tt.final, f, 0.001)
		})
	}
}

func TestCheckSubmit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		a        model.AssignmentModel
		existing *model.AssignmentSubmissionModel
		late     bool
		err      error
	}{
		{"draft", model.AssignmentModel{}, nil, false, ErrAssignmentClosed},
		{"no due date", model.AssignmentModel{IsPublished: true}, nil, false, nil},
		{"before due", model.AssignmentModel{IsPublished: true, DueAt: &future}, nil, false, nil},
		{"late rejected", model.AssignmentModel{IsPublished: true, DueAt: &past}, nil, true, ErrPastDue},
		{"late allowed", model.AssignmentModel{IsPublished: true, DueAt: &past, AllowLate: true}, nil, true, nil},
		{"graded locks", model.AssignmentModel{IsPublished: true}, &model.AssignmentSubmissionModel{Status: model.SubmissionGraded}, false, ErrAlreadyGraded},
		{"returned resubmits", model.AssignmentModel{IsPublished: true}, &model.AssignmentSubmissionModel{Status: model.SubmissionReturned}, false, nil},
		{"returned past due", model.AssignmentModel{IsPublished: true, DueAt: &past}, &model.AssignmentSubmissionModel{Status: model.SubmissionReturned}, false, nil},
		{"returned keeps late flag", model.AssignmentModel{IsPublished: true, DueAt: &past, AllowLate: true}, &model.AssignmentSubmissionModel{Status: model.SubmissionReturned, IsLate: true}, true, nil},
		{"returned on time stays on time", model.AssignmentModel{IsPublished: true, DueAt: &past, AllowLate: true}, &model.AssignmentSubmissionModel{Status: model.SubmissionReturned}, false, nil},
		{"replace while submitted", model.AssignmentModel{IsPublished: true}, &model.AssignmentSubmissionModel{Status: model.SubmissionSubmitted}, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			late, err := CheckSubmit(&tt.a, tt.existing, now)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.late, late)
		})
	}
}
