package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGalleryToModel(t *testing.T) {
	date := "2025-08-17"
	req := CreateGalleryRequest{Title: " Upacara 17an ", EventDate: &date, Tags: []string{"HUT RI", " hut ri"}}
	m := req.ToModel(uuid.New(), "upacara-17an")

	assert.Equal(t, "Upacara 17an", m.Title)
	require.NotNil(t, m.EventDate)
	assert.Equal(t, 8, int(m.EventDate.Month()))
	assert.Equal(t, []string{"hut ri"}, []string(m.Tags))
	assert.False(t, m.IsPublished)
}

func TestUpdateItemApply(t *testing.T) {
	order := 3
	assert.Equal(t, map[string]any{"gallery_item_order": 3}, UpdateItemRequest{Order: &order}.Apply())
	assert.Empty(t, UpdateItemRequest{}.Apply())
}
