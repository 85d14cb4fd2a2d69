package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/databases/dbtest"
	"sekolahku_backend/internals/features/elearning/courses/model"
)

func TestPlanEnroll(t *testing.T) {
	tests := []struct {
		name       string
		inserted   bool
		status     string
		reactivate bool
		bump       bool
	}{
		{"new row", true, model.EnrollmentActive, false, true},
		{"already active", false, model.EnrollmentActive, false, false},
		{"already completed", false, model.EnrollmentCompleted, false, false},
		{"dropped comes back", false, model.EnrollmentDropped, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reactivate, bump := planEnroll(tt.inserted, tt.status)
			assert.Equal(t, tt.reactivate, reactivate)
			assert.Equal(t, tt.bump, bump)
		})
	}
}

func TestEnrollCountsActiveEnrollmentsOnce(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	course := model.CourseModel{
		InstansiID: uuid.New(),
		TeacherID:  uuid.New(),
		Title:      "Matematika Dasar",
		Slug:       "matematika-dasar",
		Status:     model.CourseStatusPublished,
	}
	require.NoError(t, db.Create(&course).Error)
	student := uuid.New()

	count := func() int {
		var c model.CourseModel
		require.NoError(t, db.First(&c, "course_id = ?", course.ID).Error)
		return c.EnrollmentCount
	}

	_, created, err := Enroll(ctx, db, &course, student)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, count())

	e, created, err := Enroll(ctx, db, &course, student)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, model.EnrollmentActive, e.Status)
	assert.Equal(t, 1, count())

	require.NoError(t, Unenroll(ctx, db, course.ID, student))
	require.NoError(t, Unenroll(ctx, db, course.ID, student))
	assert.Equal(t, 0, count())

	_, created, err = Enroll(ctx, db, &course, student)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, count())
}

func TestEnrollRejectsDraftCourse(t *testing.T) {
	_, _, err := Enroll(context.Background(), nil, &model.CourseModel{Status: "draft"}, uuid.New())
	assert.ErrorIs(t, err, ErrCourseNotPublished)
}
