package dto

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateAssignmentDefaults(t *testing.T) {
	m := CreateAssignmentRequest{CourseID: uuid.New(), Title: " Esai Sejarah "}.ToModel(uuid.New())
	assert.Equal(t, 100.0, m.MaxPoints)
	assert.Equal(t, "Esai Sejarah", m.Title)
}

func TestCreateAssignmentValidation(t *testing.T) {
	v := validator.New()
	assert.Error(t, v.Struct(CreateAssignmentRequest{CourseID: uuid.New(), Title: "Tugas", LatePenaltyPercent: 120}))
	assert.Error(t, v.Struct(CreateAssignmentRequest{Title: "Tugas"}))
	assert.NoError(t, v.Struct(CreateAssignmentRequest{CourseID: uuid.New(), Title: "Tugas", LatePenaltyPercent: 10}))
}

func TestUpdateAssignmentClearDue(t *testing.T) {
	due := time.Now()
	m := UpdateAssignmentRequest{DueAt: &due, ClearDueAt: true}.Apply()
	v, ok := m["assignment_due_at"]
	assert.True(t, ok)
	assert.Nil(t, v)
}
