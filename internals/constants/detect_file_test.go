package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectUploadKind(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        string
	}{
		{"edisi-senin.pdf", "", UploadKindPDF},
		{"EDISI.PDF", "", UploadKindPDF},
		{"page1.png", "", UploadKindImage},
		{"page1.jpeg", "", UploadKindImage},
		{"scan.webp", "", UploadKindImage},
		// no usable extension → MIME fallback
		{"upload", "application/pdf", UploadKindPDF},
		{"upload", "image/png", UploadKindImage},
		{"upload.bin", "image/jpeg", UploadKindImage},
		{"notes.txt", "text/plain", UploadKindUnknown},
		{"", "", UploadKindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectUploadKind(tt.filename, tt.contentType),
			"%s / %s", tt.filename, tt.contentType)
	}
}
