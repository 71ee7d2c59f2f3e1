package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int64
		wantErr error
	}{
		{"pdf", "report.pdf", 1024, nil},
		{"txt upper case", "NOTES.TXT", 2 * 1024 * 1024, nil},
		{"docx at limit", "essay.docx", MaxUploadSize, nil},
		{"over limit", "essay.docx", MaxUploadSize + 1, ErrFileTooLarge},
		{"empty", "empty.txt", 0, ErrEmptyFile},
		{"unsupported", "sheet.xlsx", 10, ErrUnsupportedFileType},
		{"no extension", "README", 10, ErrUnsupportedFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.file, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestMIMETypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", MIMETypeFor("a.PDF"))
	assert.Equal(t, "text/plain", MIMETypeFor("/tmp/a.txt"))
	assert.Empty(t, MIMETypeFor("a.png"))
	assert.Equal(t, []string{".pdf", ".txt", ".docx"}, AcceptedExtensions())
}
