package driven

import (
	"io"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// FileSource opens local files for upload.
type FileSource interface {
	// Open returns the file ready for upload with its sniffed content type.
	// The caller must close the returned Closer.
	Open(path string) (*domain.UploadFile, io.Closer, error)
}

// TextExtractor reads the plain text of a local document.
type TextExtractor interface {
	// ExtractText returns the text content of a TXT or DOCX file.
	ExtractText(path string) (string, error)
}
