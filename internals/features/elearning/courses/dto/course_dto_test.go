package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/elearning/courses/model"
)

func TestCreateLessonOrderDefault(t *testing.T) {
	course := model.CourseModel{ID: uuid.New(), InstansiID: uuid.New()}

	l := CreateLessonRequest{Title: " Bab 1 "}.ToModel(course, 4)
	assert.Equal(t, 4, l.Order)
	assert.Equal(t, "Bab 1", l.Title)
	assert.Equal(t, course.InstansiID, l.InstansiID)

	seven := 7
	l = CreateLessonRequest{Title: "Bab 2", Order: &seven}.ToModel(course, 4)
	assert.Equal(t, 7, l.Order)
}

func TestUpdateLessonApply(t *testing.T) {
	pub := false
	m, publishChanged := UpdateLessonRequest{IsPublished: &pub}.Apply()
	assert.True(t, publishChanged)
	assert.Equal(t, false, m["course_lesson_is_published"])

	title := "Baru"
	m, publishChanged = UpdateLessonRequest{Title: &title}.Apply()
	assert.False(t, publishChanged)
	assert.Len(t, m, 1)
}

func TestCreateCourseValidation(t *testing.T) {
	v := validator.New()
	assert.Error(t, v.Struct(CreateCourseRequest{Title: "ab"}))
	assert.NoError(t, v.Struct(CreateCourseRequest{Title: "Matematika Dasar"}))
}
