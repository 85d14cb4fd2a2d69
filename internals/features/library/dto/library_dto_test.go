package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateBookRequestToModel(t *testing.T) {
	author := "  Tere Liye "
	blank := "   "
	req := CreateBookRequest{Title: " Bumi ", Author: &author, Category: &blank, TotalPages: 440}
	iid := uuid.New()

	m := req.ToModel(iid, "bumi", "https://cdn/x.pdf")
	assert.Equal(t, "Bumi", m.Title)
	assert.Equal(t, "Tere Liye", *m.Author)
	assert.Nil(t, m.Category)
	assert.Equal(t, iid, m.InstansiID)
	assert.Equal(t, 440, m.TotalPages)
	assert.False(t, m.IsPublished)
}

func TestUpdateBookRequestApply(t *testing.T) {
	pages := 120
	pub := true
	got := UpdateBookRequest{TotalPages: &pages, IsPublished: &pub}.Apply()
	assert.Equal(t, map[string]any{"book_total_pages": 120, "book_is_published": true}, got)
	assert.Empty(t, UpdateBookRequest{}.Apply())
}

func TestUpdateBookmarkApply(t *testing.T) {
	label := " Bab 2 "
	got := UpdateBookmarkRequest{Label: &label}.Apply()
	if assert.Contains(t, got, "bookmark_label") {
		assert.Equal(t, "Bab 2", *(got["bookmark_label"].(*string)))
	}
}
