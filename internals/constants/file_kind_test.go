package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileKindFromExt(t *testing.T) {
	tests := map[string]string{
		"Brosur.PDF":        FileKindPDF,
		"surat edaran.docx": FileKindDocument,
		"jadwal.xlsx":       FileKindSpreadsheet,
		"materi.pptx":       FileKindPresentation,
		"denah.jpeg":        FileKindImage,
		"arsip-2024.zip":    FileKindArchive,
		"tanpa-ekstensi":    FileKindOther,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, FileKindFromExt(name))
		})
	}
}
