package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClientSettings(t *testing.T) {
	s := DefaultClientSettings()

	assert.Equal(t, "http://localhost:8000", s.APIURL)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Zero(t, s.RequestsPerSecond)
	assert.Equal(t, 8, s.HistoryConcurrency)
	assert.Equal(t, 20, s.HistoryLimit)
	assert.Equal(t, 10, s.SearchTopK)
	assert.Equal(t, 5, s.RAGTopK)
}
