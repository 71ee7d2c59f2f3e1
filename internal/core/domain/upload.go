package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadSize is the largest accepted upload, 10 MiB.
const MaxUploadSize int64 = 10 * 1024 * 1024

// acceptedExtensions maps accepted upload extensions to their MIME types.
var acceptedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// AcceptedExtensions returns the accepted upload extensions in display order.
func AcceptedExtensions() []string {
	return []string{".pdf", ".txt", ".docx"}
}

// IsAcceptedFile reports whether name has an accepted extension.
func IsAcceptedFile(name string) bool {
	_, ok := acceptedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MIMETypeFor returns the declared MIME type for an accepted file name.
func MIMETypeFor(name string) string {
	return acceptedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ValidateUpload checks a file before it is sent.
func ValidateUpload(name string, size int64) error {
	if !IsAcceptedFile(name) {
		return fmt.Errorf("%w: %s (accepted: %s)",
			ErrUnsupportedFileType, filepath.Base(name), strings.Join(AcceptedExtensions(), ", "))
	}
	if size <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, filepath.Base(name))
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: %s is %d bytes (max %d)",
			ErrFileTooLarge, filepath.Base(name), size, MaxUploadSize)
	}
	return nil
}
