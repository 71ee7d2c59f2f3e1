package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOutcome_EmptyMessage(t *testing.T) {
	outcome := SearchOutcome{Query: "gender bias in hiring"}

	assert.True(t, outcome.Empty())
	assert.Equal(t, `No results found for "gender bias in hiring"`, outcome.EmptyMessage())
	assert.Contains(t, outcome.EmptyMessage(), outcome.Query)
}

func TestSearchOutcome_NotEmpty(t *testing.T) {
	outcome := SearchOutcome{Query: "q", Results: []SearchResult{{DocumentID: "doc-1"}}}
	assert.False(t, outcome.Empty())
}

func TestSearchQuery_OmitsZeroTopK(t *testing.T) {
	data, err := json.Marshal(SearchQuery{Query: "bias"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"bias"}`, string(data))
}

func TestSearchStats_TotalVectors(t *testing.T) {
	var stats SearchStats
	require.NoError(t, json.Unmarshal([]byte(`{"table_name":"chunks","total_vectors":128}`), &stats))
	assert.Equal(t, 128, stats.TotalVectors())

	assert.Equal(t, 0, SearchStats{}.TotalVectors())
}
