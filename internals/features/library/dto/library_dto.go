package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/library/model"
)

/* ===== Buku ===== */

// CreateBookRequest dikirim sebagai multipart (file PDF wajib, cover opsional).
type CreateBookRequest struct {
	Title       string  `form:"book_title" json:"book_title" validate:"required,min=2,max=255"`
	Slug        *string `form:"book_slug" json:"book_slug" validate:"omitempty,max=160"`
	Author      *string `form:"book_author" json:"book_author" validate:"omitempty,max=160"`
	Description *string `form:"book_description" json:"book_description"`
	Category    *string `form:"book_category" json:"book_category" validate:"omitempty,max=80"`
	TotalPages  int     `form:"book_total_pages" json:"book_total_pages" validate:"gte=0"`
	IsPublished bool    `form:"book_is_published" json:"book_is_published"`
}

func (r CreateBookRequest) ToModel(instansiID uuid.UUID, slug, fileURL string) model.LibraryBookModel {
	return model.LibraryBookModel{
		InstansiID:  instansiID,
		Title:       strings.TrimSpace(r.Title),
		Slug:        slug,
		Author:      trimPtr(r.Author),
		Description: r.Description,
		Category:    trimPtr(r.Category),
		FileURL:     fileURL,
		TotalPages:  r.TotalPages,
		IsPublished: r.IsPublished,
	}
}

type UpdateBookRequest struct {
	Title       *string `json:"book_title" validate:"omitempty,min=2,max=255"`
	Author      *string `json:"book_author" validate:"omitempty,max=160"`
	Description *string `json:"book_description"`
	Category    *string `json:"book_category" validate:"omitempty,max=80"`
	TotalPages  *int    `json:"book_total_pages" validate:"omitempty,gte=0"`
	IsPublished *bool   `json:"book_is_published"`
}

func (r UpdateBookRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["book_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Author != nil {
		m["book_author"] = trimPtr(r.Author)
	}
	if r.Description != nil {
		m["book_description"] = r.Description
	}
	if r.Category != nil {
		m["book_category"] = trimPtr(r.Category)
	}
	if r.TotalPages != nil {
		m["book_total_pages"] = *r.TotalPages
	}
	if r.IsPublished != nil {
		m["book_is_published"] = *r.IsPublished
	}
	return m
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* ===== Progress ===== */

type SyncProgressRequest struct {
	CurrentPage    int        `json:"current_page" validate:"required,gte=1"`
	TotalPages     int        `json:"total_pages" validate:"gte=0"`
	ElapsedSeconds int        `json:"elapsed_seconds" validate:"gte=0"`
	ClientTime     *time.Time `json:"client_time"`
}

type SyncProgressResponse struct {
	Applied  bool                        `json:"applied"`
	Progress *model.ReadingProgressModel `json:"progress"`
}

/* ===== Bookmark ===== */

type CreateBookmarkRequest struct {
	Page  int     `json:"bookmark_page" validate:"required,gte=1"`
	Label *string `json:"bookmark_label" validate:"omitempty,max=120"`
	Note  *string `json:"bookmark_note"`
}

type UpdateBookmarkRequest struct {
	Label *string `json:"bookmark_label" validate:"omitempty,max=120"`
	Note  *string `json:"bookmark_note"`
}

func (r UpdateBookmarkRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Label != nil {
		m["bookmark_label"] = trimPtr(r.Label)
	}
	if r.Note != nil {
		m["bookmark_note"] = r.Note
	}
	return m
}
