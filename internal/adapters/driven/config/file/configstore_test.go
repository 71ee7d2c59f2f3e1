package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".biasctl", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.url", "http://bias.internal:8000"))

	val, ok := store.Get("api.url")
	assert.True(t, ok)
	assert.Equal(t, "http://bias.internal:8000", val)
	assert.Equal(t, "http://bias.internal:8000", store.GetString("api.url"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("history.concurrency", 4))
	require.NoError(t, store.Set("api.requests_per_second", 2.5))
	require.NoError(t, store.Set("search.rag", true))
	require.NoError(t, store.Set("analysis.bias_types", []string{"gender", "political"}))

	assert.Equal(t, 4, store.GetInt("history.concurrency"))
	assert.Equal(t, 4.0, store.GetFloat("history.concurrency"))
	assert.Equal(t, 2.5, store.GetFloat("api.requests_per_second"))
	assert.Zero(t, store.GetInt("api.requests_per_second"))
	assert.True(t, store.GetBool("search.rag"))
	assert.Equal(t, []string{"gender", "political"}, store.GetStringSlice("analysis.bias_types"))
}

func TestConfigStore_PersistenceAsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("api.url", "http://localhost:9000"))
	require.NoError(t, store1.Set("api.timeout_seconds", 60))
	require.NoError(t, store1.Set("rag.top_k", 3))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[api]")
	assert.Contains(t, string(raw), "[rag]")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", store2.GetString("api.url"))
	assert.Equal(t, 60, store2.GetInt("api.timeout_seconds"))
	assert.Equal(t, 3, store2.GetInt("rag.top_k"))
	assert.Equal(t, []string{"api.timeout_seconds", "api.url", "rag.top_k"}, store2.Keys())
}

func TestConfigStore_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[api]\nurl = \"http://example.com\"\nrequests_per_second = 5\n\n[history]\nlimit = 50\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com", store.GetString("api.url"))
	assert.Equal(t, 5.0, store.GetFloat("api.requests_per_second"))
	assert.Equal(t, 50, store.GetInt("history.limit"))
}

func TestConfigStore_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.url", "http://a"))
	err = store.Set("api", "flat")

	require.Error(t, err)
	_, ok := store.Get("api")
	assert.False(t, ok, "failed write must not leave the value behind")
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("invalid toml ][}{"), 0600))

	_, err := NewConfigStore(tmpDir)

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "config.toml"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("api.url", "http://x"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = store.Set("history.limit", id)
			_ = store.GetInt("history.limit")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("history.limit")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested, err := nestMap(map[string]any{"a.b": 1, "a.c": "x", "d": true})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": 1, "c": "x"}, "d": true}, nested)
	assert.Equal(t, map[string]any{"a.b": 1, "a.c": "x", "d": true}, flattenMap(nested, ""))
}
