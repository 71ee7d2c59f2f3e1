// Package files opens local documents for upload.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// Source opens files from the local filesystem.
type Source struct{}

// NewSource creates a new file source.
func NewSource() *Source {
	return &Source{}
}

// Open opens path and sniffs its content type.
// When the sniffed type agrees with the extension the declared type is used,
// otherwise the sniffed type is sent so the backend can reject it.
func (s *Source) Open(path string) (*domain.UploadFile, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("detect type of %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("rewind %s: %w", path, err)
	}

	name := filepath.Base(path)
	contentType := detected.String()
	if declared := domain.MIMETypeFor(name); declared != "" {
		if detected.Is(declared) {
			contentType = declared
		} else {
			logger.Warn("%s: content looks like %s, not %s", name, detected.String(), declared)
		}
	}

	return &domain.UploadFile{
		Name:        name,
		Size:        info.Size(),
		ContentType: contentType,
		Content:     f,
	}, f, nil
}
