package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestSource_OpenText(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("The chairman said all engineers are men."))

	file, closer, err := NewSource().Open(path)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, "notes.txt", file.Name)
	assert.Equal(t, int64(40), file.Size)
	assert.Equal(t, "text/plain", file.ContentType)

	data, err := io.ReadAll(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "The chairman said all engineers are men.", string(data))
}

func TestSource_OpenPDF(t *testing.T) {
	path := writeFile(t, "report.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n"))

	file, closer, err := NewSource().Open(path)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, "application/pdf", file.ContentType)
}

func TestSource_OpenMismatchedContent(t *testing.T) {
	path := writeFile(t, "fake.pdf", []byte("just some text"))

	file, closer, err := NewSource().Open(path)
	require.NoError(t, err)
	defer closer.Close()

	assert.NotEqual(t, "application/pdf", file.ContentType)
}

func TestSource_OpenMissing(t *testing.T) {
	_, _, err := NewSource().Open(filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSource_OpenDirectory(t *testing.T) {
	_, _, err := NewSource().Open(t.TempDir())

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
