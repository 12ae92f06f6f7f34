package constants

import (
	"path/filepath"
	"strings"
)

const (
	UploadKindPDF     = "pdf"
	UploadKindImage   = "image"
	UploadKindUnknown = "unknown"
)

// DetectUploadKind classifies an uploaded file by extension, with the
// MIME type as fallback when the extension is missing.
func DetectUploadKind(filename, contentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return UploadKindPDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return UploadKindImage
	}

	ct := strings.ToLower(contentType)
	switch {
	case ct == "application/pdf":
		return UploadKindPDF
	case strings.HasPrefix(ct, "image/"):
		return UploadKindImage
	}
	return UploadKindUnknown
}
