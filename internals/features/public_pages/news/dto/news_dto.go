package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/public_pages/news/model"
	helper "sekolahku_backend/internals/helpers"
)

type CreateNewsRequest struct {
	Title   string   `json:"news_title" validate:"required,min=3,max=255"`
	Slug    *string  `json:"news_slug" validate:"omitempty,max=160"`
	Excerpt *string  `json:"news_excerpt" validate:"omitempty,max=500"`
	Content string   `json:"news_content" validate:"required"`
	Tags    []string `json:"news_tags"`
	Status  string   `json:"news_status" validate:"omitempty,oneof=draft published"`
}

func (r CreateNewsRequest) ToModel(instansiID, authorID uuid.UUID, slug string, now time.Time) model.NewsModel {
	m := model.NewsModel{
		InstansiID: instansiID,
		AuthorID:   authorID,
		Title:      strings.TrimSpace(r.Title),
		Slug:       slug,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		Tags:       helper.NormalizeTags(r.Tags),
		Status:     model.NewsStatusDraft,
	}
	ApplyStatus(&m, r.Status, now)
	return m
}

// ApplyStatus: PublishedAt hanya diisi saat pertama kali terbit.
func ApplyStatus(m *model.NewsModel, status string, now time.Time) bool {
	if status == "" || status == m.Status {
		return false
	}
	m.Status = status
	if status == model.NewsStatusPublished && m.PublishedAt == nil {
		t := now
		m.PublishedAt = &t
	}
	return true
}

type UpdateNewsRequest struct {
	Title   *string   `json:"news_title" validate:"omitempty,min=3,max=255"`
	Excerpt *string   `json:"news_excerpt" validate:"omitempty,max=500"`
	Content *string   `json:"news_content" validate:"omitempty,min=1"`
	Tags    *[]string `json:"news_tags"`
	Status  *string   `json:"news_status" validate:"omitempty,oneof=draft published"`
}

// Apply mengubah m langsung; dipakai bersama db.Save.
func (r UpdateNewsRequest) Apply(m *model.NewsModel, now time.Time) bool {
	changed := false
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
		changed = true
	}
	if r.Excerpt != nil {
		m.Excerpt = r.Excerpt
		changed = true
	}
	if r.Content != nil {
		m.Content = *r.Content
		changed = true
	}
	if r.Tags != nil {
		m.Tags = helper.NormalizeTags(*r.Tags)
		changed = true
	}
	if r.Status != nil && ApplyStatus(m, *r.Status, now) {
		changed = true
	}
	return changed
}
