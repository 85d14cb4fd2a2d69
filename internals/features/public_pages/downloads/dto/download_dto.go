package dto

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/public_pages/downloads/model"
	helper "sekolahku_backend/internals/helpers"
	helperOSS "sekolahku_backend/internals/helpers/oss"
)

var AllowedExt = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".zip", ".jpg", ".jpeg", ".png"}

// CreateDownloadRequest: multipart (file wajib). Tag dipisah koma.
type CreateDownloadRequest struct {
	Title       string  `form:"download_title" validate:"required,min=3,max=200"`
	Slug        *string `form:"download_slug" validate:"omitempty,max=160"`
	Description *string `form:"download_description"`
	Category    *string `form:"download_category" validate:"omitempty,max=80"`
	Tags        string  `form:"download_tags"`
	IsPublished bool    `form:"download_is_published"`
}

func (r CreateDownloadRequest) ToModel(instansiID uuid.UUID, slug, fileName string, up helperOSS.Uploaded) model.DownloadModel {
	category := r.Category
	if category == nil || strings.TrimSpace(*category) == "" {
		kind := constants.FileKindFromExt(fileName)
		category = &kind
	}
	return model.DownloadModel{
		InstansiID:  instansiID,
		Title:       strings.TrimSpace(r.Title),
		Slug:        slug,
		Description: r.Description,
		Category:    category,
		FileURL:     up.URL,
		FileName:    CleanFileName(fileName),
		FileSize:    up.Size,
		MimeType:    up.ContentType,
		Tags:        helper.SplitTags(r.Tags),
		IsPublished: r.IsPublished,
	}
}

// CleanFileName: nama asli tanpa path, untuk Content-Disposition.
func CleanFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r == '"' || r < 0x20 {
			return -1
		}
		return r
	}, name)
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

type UpdateDownloadRequest struct {
	Title       *string   `json:"download_title" validate:"omitempty,min=3,max=200"`
	Description *string   `json:"download_description"`
	Category    *string   `json:"download_category" validate:"omitempty,max=80"`
	Tags        *[]string `json:"download_tags"`
	IsPublished *bool     `json:"download_is_published"`
}

func (r UpdateDownloadRequest) Apply() map[string]any {
	m := map[string]any{}
	if r.Title != nil {
		m["download_title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m["download_description"] = r.Description
	}
	if r.Category != nil {
		m["download_category"] = r.Category
	}
	if r.Tags != nil {
		m["download_tags"] = helper.NormalizeTags(*r.Tags)
	}
	if r.IsPublished != nil {
		m["download_is_published"] = *r.IsPublished
	}
	return m
}
