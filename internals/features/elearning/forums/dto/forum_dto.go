package dto

import (
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/elearning/forums/model"
)

type CreateForumRequest struct {
	CourseID    *uuid.UUID `json:"forum_course_id"`
	Title       string     `json:"forum_title" validate:"required,min=3,max=200"`
	Description *string    `json:"forum_description"`
}

func (r CreateForumRequest) ToModel(instansiID uuid.UUID) model.ForumModel {
	return model.ForumModel{
		InstansiID:  instansiID,
		CourseID:    r.CourseID,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		IsActive:    true,
	}
}

type UpdateForumRequest struct {
	Title       *string `json:"forum_title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"forum_description"`
	IsActive    *bool   `json:"forum_is_active"`
}

func (r UpdateForumRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["forum_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m["forum_description"] = r.Description
	}
	if r.IsActive != nil {
		m["forum_is_active"] = *r.IsActive
	}
	return m
}

type CreateThreadRequest struct {
	Title string `json:"forum_thread_title" validate:"required,min=3,max=200"`
	Body  string `json:"forum_thread_body" validate:"required"`
}

type UpdateThreadRequest struct {
	Title *string `json:"forum_thread_title" validate:"omitempty,min=3,max=200"`
	Body  *string `json:"forum_thread_body" validate:"omitempty,min=1"`
}

type ModerateThreadRequest struct {
	IsPinned *bool `json:"forum_thread_is_pinned"`
	IsLocked *bool `json:"forum_thread_is_locked"`
}

func (r ModerateThreadRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.IsPinned != nil {
		m["forum_thread_is_pinned"] = *r.IsPinned
	}
	if r.IsLocked != nil {
		m["forum_thread_is_locked"] = *r.IsLocked
	}
	return m
}

type ReplyRequest struct {
	Body     string     `json:"forum_post_body" validate:"required"`
	ParentID *uuid.UUID `json:"forum_post_parent_id"`
}

type EditPostRequest struct {
	Body string `json:"forum_post_body" validate:"required"`
}
