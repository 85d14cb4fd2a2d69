package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindPDF          = "pdf"
	FileKindDocument     = "dokumen"
	FileKindSpreadsheet  = "spreadsheet"
	FileKindPresentation = "presentasi"
	FileKindImage        = "gambar"
	FileKindArchive      = "arsip"
	FileKindOther        = "lainnya"
)

// FileKindFromExt: kategori default file unduhan kalau admin tidak mengisi.
func FileKindFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FileKindPDF
	case ".doc", ".docx", ".odt", ".rtf", ".txt":
		return FileKindDocument
	case ".xls", ".xlsx", ".ods", ".csv":
		return FileKindSpreadsheet
	case ".ppt", ".pptx", ".odp":
		return FileKindPresentation
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	case ".zip", ".rar", ".7z":
		return FileKindArchive
	default:
		return FileKindOther
	}
}
