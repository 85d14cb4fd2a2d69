package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/public_pages/news/model"
)

func TestApplyStatusPublishedAtOnce(t *testing.T) {
	first := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)
	m := model.NewsModel{Status: model.NewsStatusDraft}

	assert.True(t, ApplyStatus(&m, model.NewsStatusPublished, first))
	require.NotNil(t, m.PublishedAt)
	assert.Equal(t, first, *m.PublishedAt)

	assert.True(t, ApplyStatus(&m, model.NewsStatusDraft, later))
	assert.True(t, ApplyStatus(&m, model.NewsStatusPublished, later))
	assert.Equal(t, first, *m.PublishedAt)

	assert.False(t, ApplyStatus(&m, model.NewsStatusPublished, later))
	assert.False(t, ApplyStatus(&m, "", later))
}

func TestCreateNewsToModel(t *testing.T) {
	now := time.Now()
	req := CreateNewsRequest{Title: " Juara OSN ", Content: "isi", Tags: []string{"Prestasi", "prestasi"}}
	m := req.ToModel(uuid.New(), uuid.New(), "juara-osn", now)

	assert.Equal(t, "Juara OSN", m.Title)
	assert.Equal(t, model.NewsStatusDraft, m.Status)
	assert.Nil(t, m.PublishedAt)
	assert.Equal(t, []string{"prestasi"}, []string(m.Tags))

	req.Status = model.NewsStatusPublished
	m = req.ToModel(uuid.New(), uuid.New(), "juara-osn", now)
	require.NotNil(t, m.PublishedAt)
}

func TestUpdateNewsApply(t *testing.T) {
	m := model.NewsModel{Title: "a", Status: model.NewsStatusDraft}
	assert.False(t, UpdateNewsRequest{}.Apply(&m, time.Now()))

	title := "  Baru "
	status := model.NewsStatusPublished
	assert.True(t, UpdateNewsRequest{Title: &title, Status: &status}.Apply(&m, time.Now()))
	assert.Equal(t, "Baru", m.Title)
	assert.NotNil(t, m.PublishedAt)
}
