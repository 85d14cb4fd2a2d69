package dto

import (
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/elearning/courses/model"
)

type CreateCourseRequest struct {
	Title       string     `json:"course_title" validate:"required,min=3,max=200"`
	Slug        *string    `json:"course_slug" validate:"omitempty,max=160"`
	Description *string    `json:"course_description"`
	TeacherID   *uuid.UUID `json:"course_teacher_id"` // admin boleh menunjuk guru; guru = dirinya sendiri
}

func (r CreateCourseRequest) ToModel(instansiID, teacherID uuid.UUID, slug string) model.CourseModel {
	return model.CourseModel{
		InstansiID:  instansiID,
		TeacherID:   teacherID,
		Title:       strings.TrimSpace(r.Title),
		Slug:        slug,
		Description: r.Description,
		Status:      model.CourseStatusDraft,
	}
}

type UpdateCourseRequest struct {
	Title       *string    `json:"course_title" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"course_description"`
	TeacherID   *uuid.UUID `json:"course_teacher_id"`
}

func (r UpdateCourseRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["course_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m["course_description"] = r.Description
	}
	if r.TeacherID != nil {
		m["course_teacher_id"] = *r.TeacherID
	}
	return m
}

/* ===== Lesson ===== */

type CreateLessonRequest struct {
	Title       string  `json:"course_lesson_title" validate:"required,min=2,max=200"`
	Content     *string `json:"course_lesson_content"`
	Order       *int    `json:"course_lesson_order" validate:"omitempty,min=0"`
	IsPublished bool    `json:"course_lesson_is_published"`
}

func (r CreateLessonRequest) ToModel(course model.CourseModel, nextOrder int) model.CourseLessonModel {
	order := nextOrder
	if r.Order != nil {
		order = *r.Order
	}
	return model.CourseLessonModel{
		CourseID:    course.ID,
		InstansiID:  course.InstansiID,
		Title:       strings.TrimSpace(r.Title),
		Content:     r.Content,
		Order:       order,
		IsPublished: r.IsPublished,
	}
}

type UpdateLessonRequest struct {
	Title       *string `json:"course_lesson_title" validate:"omitempty,min=2,max=200"`
	Content     *string `json:"course_lesson_content"`
	Order       *int    `json:"course_lesson_order" validate:"omitempty,min=0"`
	IsPublished *bool   `json:"course_lesson_is_published"`
}

// Apply mengembalikan kolom yang berubah + apakah status publish ikut berubah.
func (r UpdateLessonRequest) Apply() (map[string]any, bool) {
	m := map[string]any{}
	if r.Title != nil {
		m["course_lesson_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		m["course_lesson_content"] = r.Content
	}
	if r.Order != nil {
		m["course_lesson_order"] = *r.Order
	}
	if r.IsPublished != nil {
		m["course_lesson_is_published"] = *r.IsPublished
	}
	return m, r.IsPublished != nil
}

/* ===== Enrollment (response) ===== */

type EnrollmentResponse struct {
	model.CourseEnrollmentModel
	CourseTitle string `json:"course_title,omitempty"`
	CourseSlug  string `json:"course_slug,omitempty"`
}
