package search

import (
	"context"
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(ctx context.Context, query string, topK int) (*domain.SearchOutcome, error)
	queries    []string
}

func (m *MockSearchService) Search(ctx context.Context, query string, topK int) (*domain.SearchOutcome, error) {
	m.queries = append(m.queries, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, topK)
	}
	return &domain.SearchOutcome{Query: query, Results: testSearchResults()}, nil
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	LatestAnalysisFunc func(ctx context.Context, documentID string) (*domain.AnalysisResult, error)
}

func (m *MockDocumentService) List(context.Context, int, int) (*domain.DocumentList, error) {
	return &domain.DocumentList{}, nil
}

func (m *MockDocumentService) Get(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *MockDocumentService) Delete(context.Context, string) error {
	return nil
}

func (m *MockDocumentService) LatestAnalysis(ctx context.Context, documentID string) (*domain.AnalysisResult, error) {
	if m.LatestAnalysisFunc != nil {
		return m.LatestAnalysisFunc(ctx, documentID)
	}
	return &domain.AnalysisResult{DocumentID: documentID, OverallScore: 0.5}, nil
}

func (m *MockDocumentService) Analyze(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	return nil, nil
}

func (m *MockDocumentService) AllAnalyses(context.Context, int, int) (*domain.AnalysisList, error) {
	return &domain.AnalysisList{}, nil
}

func (m *MockDocumentService) Context(context.Context, domain.ContextRequest) (*domain.ContextResponse, error) {
	return &domain.ContextResponse{}, nil
}

func testSearchResults() []domain.SearchResult {
	return []domain.SearchResult{
		{DocumentID: "doc-1", Filename: "policy.txt", TextChunk: "The chairman decides.", RelevanceScore: 0.91},
		{DocumentID: "doc-2", Filename: "memo.pdf", TextChunk: "Every nurse and her patients.", RelevanceScore: 0.62},
	}
}

func newTestView(svc *MockSearchService, docs *MockDocumentService) *View {
	var v *View
	if docs == nil {
		v = NewView(styles.DefaultStyles(), nil, svc, nil)
	} else {
		v = NewView(styles.DefaultStyles(), nil, svc, docs)
	}
	v.SetDimensions(100, 40)
	return v
}

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// submit types a query, presses enter and returns the message of the search command.
func submit(t *testing.T, v *View, query string) tea.Msg {
	t.Helper()
	typeText(v, query)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &MockSearchService{}, nil)

	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Init(t *testing.T) {
	v := NewView(nil, nil, &MockSearchService{}, nil)

	assert.NotNil(t, v.Init())
}

func TestView_EnterWithBlankQuery_DoesNothing(t *testing.T) {
	svc := &MockSearchService{}
	v := newTestView(svc, nil)
	typeText(v, "   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, svc.queries)
	assert.Equal(t, 0, v.Gen())
}

func TestView_Search_ShowsResults(t *testing.T) {
	svc := &MockSearchService{}
	v := newTestView(svc, nil)

	msg := submit(t, v, "  chairman ")
	completed, ok := msg.(messages.SearchCompleted)
	require.True(t, ok)
	assert.Equal(t, 1, completed.Gen)
	assert.Equal(t, []string{"chairman"}, svc.queries)

	v.Update(msg)

	assert.Len(t, v.Results(), 2)
	assert.False(t, v.InputFocused())
	assert.NoError(t, v.Err())
	view := v.View()
	assert.Contains(t, view, "policy.txt")
	assert.Contains(t, view, "91% relevant")
}

func TestView_Search_EmptyOutcome(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(_ context.Context, query string, _ int) (*domain.SearchOutcome, error) {
			return &domain.SearchOutcome{Query: query}, nil
		},
	}
	v := newTestView(svc, nil)

	v.Update(submit(t, v, "unicorns"))

	assert.Empty(t, v.Results())
	assert.Contains(t, v.View(), `No results found for "unicorns"`)
}

func TestView_Search_Error(t *testing.T) {
	svc := &MockSearchService{
		SearchFunc: func(context.Context, string, int) (*domain.SearchOutcome, error) {
			return nil, &domain.OperationError{Message: "Search failed"}
		},
	}
	v := newTestView(svc, nil)

	v.Update(submit(t, v, "chairman"))

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "Error: Search failed")
	assert.True(t, v.InputFocused())
}

func TestView_StaleResultIsDropped(t *testing.T) {
	v := newTestView(&MockSearchService{}, nil)

	stale := submit(t, v, "chairman")
	v.Reset()
	v.Update(stale)

	assert.Empty(t, v.Results())
	assert.Equal(t, "", v.Query())
	assert.Equal(t, 2, v.Gen())
}

func TestView_NewerQueryWins(t *testing.T) {
	v := newTestView(&MockSearchService{}, nil)

	first := submit(t, v, "a")
	second := submit(t, v, "b")
	v.Update(second)
	v.Update(first)

	assert.Equal(t, 2, v.Gen())
	assert.Len(t, v.Results(), 2)
}

func TestView_Esc_GoesToMenu(t *testing.T) {
	v := newTestView(&MockSearchService{}, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_ResultsNavigation(t *testing.T) {
	v := newTestView(&MockSearchService{}, nil)
	v.Update(submit(t, v, "chairman"))

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.True(t, v.InputFocused())
	assert.Equal(t, "", v.Query())
}

func TestView_ShowAnalysisAction(t *testing.T) {
	docs := &MockDocumentService{}
	v := newTestView(&MockSearchService{}, docs)
	v.Update(submit(t, v, "chairman"))

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.MenuVisible())
	assert.Contains(t, v.View(), "Show latest analysis")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.MenuVisible())

	msg, ok := cmd().(messages.ShowAnalysis)
	require.True(t, ok)
	assert.Equal(t, "doc-1", msg.Result.DocumentID)
}

func TestView_ShowAnalysisAction_NotAnalyzed(t *testing.T) {
	docs := &MockDocumentService{
		LatestAnalysisFunc: func(context.Context, string) (*domain.AnalysisResult, error) {
			return nil, &domain.OperationError{
				Message: "No analysis found for this document",
				Err:     &domain.APIError{Kind: domain.ErrorKindDetail, StatusCode: http.StatusNotFound},
			}
		},
	}
	v := newTestView(&MockSearchService{}, docs)
	v.Update(submit(t, v, "chairman"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.EqualError(t, msg.Err, "document doc-1 has not been analyzed")
}

func TestView_ActionMenu_Cancel(t *testing.T) {
	v := newTestView(&MockSearchService{}, &MockDocumentService{})
	v.Update(submit(t, v, "chairman"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.MenuVisible())
}

func TestView_ShowAnalysisAction_WithoutDocumentService(t *testing.T) {
	v := newTestView(&MockSearchService{}, nil)
	v.Update(submit(t, v, "chairman"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_NilSearchService(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	v.SetDimensions(80, 24)

	msg, ok := submit(t, v, "x").(messages.SearchCompleted)

	require.True(t, ok)
	assert.True(t, errors.Is(msg.Err, ErrNoSearchService))
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(&MockSearchService{}, nil)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, v.Err(), "boom")
}

func TestView_WithContext(t *testing.T) {
	type key string
	ctx := context.WithValue(context.Background(), key("k"), "v")
	var got context.Context
	svc := &MockSearchService{
		SearchFunc: func(ctx context.Context, query string, _ int) (*domain.SearchOutcome, error) {
			got = ctx
			return &domain.SearchOutcome{Query: query}, nil
		},
	}
	v := newTestView(svc, nil).WithContext(ctx)

	submit(t, v, "x")

	assert.Equal(t, "v", got.Value(key("k")))
}
