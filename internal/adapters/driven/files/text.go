package files

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.TextExtractor = (*Source)(nil)

const docxType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ExtractText reads the text of a TXT or DOCX file.
// PDF is accepted for upload but only the backend can read it.
func (s *Source) ExtractText(path string) (string, error) {
	data, err := readLimited(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrEmptyFile, path)
	}

	detected := mimetype.Detect(data)
	switch {
	case detected.Is(docxType) || (detected.Is("application/zip") && domain.MIMETypeFor(path) == docxType):
		return docxText(data)
	case detected.Is("text/plain"):
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not UTF-8 text", domain.ErrInvalidInput, path)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("%w: cannot read text from %s (%s)", domain.ErrUnsupportedFileType, path, detected.String())
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > domain.MaxUploadSize {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileTooLarge, path)
	}
	return data, nil
}

// docxText extracts the paragraphs of word/document.xml, one per line.
func docxText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: not a DOCX archive", domain.ErrInvalidInput)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("%w: DOCX has no word/document.xml", domain.ErrInvalidInput)
}

type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []struct {
		Content string `xml:",chardata"`
	} `xml:"t"`
}

func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var b strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				b.WriteString(t.Content)
			}
		}
	}

	return strings.TrimSpace(b.String()), nil
}
