package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	helperOSS "sekolahku_backend/internals/helpers/oss"
)

func TestCleanFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Brosur PPDB 2025.pdf", "Brosur PPDB 2025.pdf"},
		{`C:\Users\tu\Kalender "Akademik".xlsx`, "Kalender Akademik.xlsx"},
		{"../../etc/passwd", "passwd"},
		{"", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanFileName(tt.in))
		})
	}
}

func TestCreateDownloadToModel(t *testing.T) {
	up := helperOSS.Uploaded{URL: "https://cdn/x.pdf", ContentType: "application/pdf", Size: 2048}
	m := CreateDownloadRequest{Title: " Brosur ", Tags: "ppdb, Brosur"}.ToModel(uuid.New(), "brosur", "brosur.pdf", up)

	assert.Equal(t, "Brosur", m.Title)
	assert.Equal(t, int64(2048), m.FileSize)
	assert.Equal(t, "application/pdf", m.MimeType)
	assert.Equal(t, []string{"ppdb", "brosur"}, []string(m.Tags))
	if assert.NotNil(t, m.Category) {
		assert.Equal(t, "pdf", *m.Category)
	}
}
