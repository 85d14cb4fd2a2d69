package dto

import (
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/public_pages/galleries/model"
	helper "sekolahku_backend/internals/helpers"
)

const ThumbSize = 400

type CreateGalleryRequest struct {
	Title       string   `json:"gallery_title" validate:"required,min=3,max=200"`
	Slug        *string  `json:"gallery_slug" validate:"omitempty,max=160"`
	Description *string  `json:"gallery_description"`
	Tags        []string `json:"gallery_tags"`
	EventDate   *string  `json:"gallery_event_date" validate:"omitempty,datetime=2006-01-02"`
	IsPublished bool     `json:"gallery_is_published"`
}

func (r CreateGalleryRequest) ToModel(instansiID uuid.UUID, slug string) model.GalleryModel {
	return model.GalleryModel{
		InstansiID:  instansiID,
		Title:       strings.TrimSpace(r.Title),
		Slug:        slug,
		Description: r.Description,
		Tags:        helper.NormalizeTags(r.Tags),
		EventDate:   helper.ParseDatePtr(r.EventDate),
		IsPublished: r.IsPublished,
	}
}

type UpdateGalleryRequest struct {
	Title       *string   `json:"gallery_title" validate:"omitempty,min=3,max=200"`
	Description *string   `json:"gallery_description"`
	Tags        *[]string `json:"gallery_tags"`
	EventDate   *string   `json:"gallery_event_date" validate:"omitempty,datetime=2006-01-02"`
	IsPublished *bool     `json:"gallery_is_published"`
}

func (r UpdateGalleryRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["gallery_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m["gallery_description"] = r.Description
	}
	if r.Tags != nil {
		m["gallery_tags"] = helper.NormalizeTags(*r.Tags)
	}
	if r.EventDate != nil {
		m["gallery_event_date"] = helper.ParseDatePtr(r.EventDate)
	}
	if r.IsPublished != nil {
		m["gallery_is_published"] = *r.IsPublished
	}
	return m
}

type UpdateItemRequest struct {
	Caption *string `json:"gallery_item_caption" validate:"omitempty,max=500"`
	Order   *int    `json:"gallery_item_order" validate:"omitempty,gte=0"`
}

func (r UpdateItemRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Caption != nil {
		m["gallery_item_caption"] = r.Caption
	}
	if r.Order != nil {
		m["gallery_item_order"] = *r.Order
	}
	return m
}
