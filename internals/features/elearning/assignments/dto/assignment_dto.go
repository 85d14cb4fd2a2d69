package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/elearning/assignments/model"
)

type CreateAssignmentRequest struct {
	CourseID           uuid.UUID  `json:"assignment_course_id" validate:"required"`
	Title              string     `json:"assignment_title" validate:"required,min=3,max=200"`
	Instructions       *string    `json:"assignment_instructions"`
	MaxPoints          *float64   `json:"assignment_max_points" validate:"omitempty,gt=0,max=1000"`
	DueAt              *time.Time `json:"assignment_due_at"`
	AllowLate          bool       `json:"assignment_allow_late"`
	LatePenaltyPercent float64    `json:"assignment_late_penalty_percent" validate:"min=0,max=100"`
	IsPublished        bool       `json:"assignment_is_published"`
}

func (r CreateAssignmentRequest) ToModel(instansiID uuid.UUID) model.AssignmentModel {
	maxPts := 100.0
	if r.MaxPoints != nil {
		maxPts = *r.MaxPoints
	}
	return model.AssignmentModel{
		InstansiID:         instansiID,
		CourseID:           r.CourseID,
		Title:              strings.TrimSpace(r.Title),
		Instructions:       r.Instructions,
		MaxPoints:          maxPts,
		DueAt:              r.DueAt,
		AllowLate:          r.AllowLate,
		LatePenaltyPercent: r.LatePenaltyPercent,
		IsPublished:        r.IsPublished,
	}
}

type UpdateAssignmentRequest struct {
	Title              *string    `json:"assignment_title" validate:"omitempty,min=3,max=200"`
	Instructions       *string    `json:"assignment_instructions"`
	MaxPoints          *float64   `json:"assignment_max_points" validate:"omitempty,gt=0,max=1000"`
	DueAt              *time.Time `json:"assignment_due_at"`
	ClearDueAt         bool       `json:"clear_due_at"`
	AllowLate          *bool      `json:"assignment_allow_late"`
	LatePenaltyPercent *float64   `json:"assignment_late_penalty_percent" validate:"omitempty,min=0,max=100"`
	IsPublished        *bool      `json:"assignment_is_published"`
}

func (r UpdateAssignmentRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["assignment_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Instructions != nil {
		m["assignment_instructions"] = r.Instructions
	}
	if r.MaxPoints != nil {
		m["assignment_max_points"] = *r.MaxPoints
	}
	if r.ClearDueAt {
		m["assignment_due_at"] = nil
	} else if r.DueAt != nil {
		m["assignment_due_at"] = r.DueAt
	}
	if r.AllowLate != nil {
		m["assignment_allow_late"] = *r.AllowLate
	}
	if r.LatePenaltyPercent != nil {
		m["assignment_late_penalty_percent"] = *r.LatePenaltyPercent
	}
	if r.IsPublished != nil {
		m["assignment_is_published"] = *r.IsPublished
	}
	return m
}

type SubmitRequest struct {
	Content *string `json:"content" form:"content"`
}

type GradeRequest struct {
	Score    *float64 `json:"score" validate:"required"`
	Feedback *string  `json:"feedback"`
}

type ReturnRequest struct {
	Feedback *string `json:"feedback"`
}
