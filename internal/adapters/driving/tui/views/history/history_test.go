package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	LoadFunc func(ctx context.Context, skip, limit int) (*domain.History, error)
	pageSize int
	skips    []int
	limits   []int
}

func (m *MockHistoryService) Load(ctx context.Context, skip, limit int) (*domain.History, error) {
	m.skips = append(m.skips, skip)
	m.limits = append(m.limits, limit)
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, skip, limit)
	}
	return testHistory(), nil
}

func (m *MockHistoryService) AnalysesFor(context.Context, string, int) (*domain.AnalysisHistory, error) {
	return &domain.AnalysisHistory{}, nil
}

func (m *MockHistoryService) PageSize() int {
	return m.pageSize
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	DeleteFunc func(ctx context.Context, documentID string) error
	deleted    []string
}

func (m *MockDocumentService) List(context.Context, int, int) (*domain.DocumentList, error) {
	return &domain.DocumentList{}, nil
}

func (m *MockDocumentService) Get(context.Context, string) (*domain.Document, error) {
	return nil, nil
}

func (m *MockDocumentService) Delete(ctx context.Context, documentID string) error {
	m.deleted = append(m.deleted, documentID)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, documentID)
	}
	return nil
}

func (m *MockDocumentService) LatestAnalysis(context.Context, string) (*domain.AnalysisResult, error) {
	return nil, domain.ErrNotFound
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

func testHistory() *domain.History {
	uploaded := domain.NewTimestamp(time.Now().Add(-2 * time.Hour))
	return &domain.History{
		Items: []domain.HistoryItem{
			{
				Document:       domain.Document{DocumentID: "doc-1", Filename: "policy.txt", UploadedAt: uploaded, Analyzed: true},
				LatestAnalysis: &domain.AnalysisResult{DocumentID: "doc-1", OverallScore: 0.75},
			},
			{
				Document: domain.Document{DocumentID: "doc-2", Filename: "memo.pdf", UploadedAt: uploaded},
			},
		},
		Limit: domain.DefaultHistoryLimit,
	}
}

// loaded runs the view's load command and feeds the result back.
func loaded(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.HistoryLoaded)
	require.True(t, ok)
	v.Update(msg)
}

func newLoadedView(t *testing.T, docs *MockDocumentService) (*View, *MockHistoryService) {
	t.Helper()
	svc := &MockHistoryService{}
	var v *View
	if docs == nil {
		v = NewView(styles.DefaultStyles(), svc, nil)
	} else {
		v = NewView(styles.DefaultStyles(), svc, docs)
	}
	v.SetDimensions(100, 40)
	loaded(t, v, v.Init())
	return v, svc
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.Nil(t, v.History())
	assert.False(t, v.Loading())
	assert.False(t, v.Ready())
}

func TestView_Init_LoadsFirstPage(t *testing.T) {
	v, svc := newLoadedView(t, nil)

	assert.Equal(t, []int{0}, svc.skips)
	assert.False(t, v.Loading())
	require.NotNil(t, v.History())
	assert.Len(t, v.History().Items, 2)

	view := v.View()
	assert.Contains(t, view, "2 documents, 1 analyzed")
	assert.Contains(t, view, "policy.txt")
	assert.Contains(t, view, "75% High")
	assert.Contains(t, view, "pending")
	assert.Contains(t, view, "2 hours ago")
}

func TestView_LoadingState(t *testing.T) {
	v := NewView(nil, &MockHistoryService{}, nil)
	v.Init()

	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Loading history...")
}

func TestView_Empty(t *testing.T) {
	svc := &MockHistoryService{LoadFunc: func(context.Context, int, int) (*domain.History, error) {
		return &domain.History{}, nil
	}}
	v := NewView(nil, svc, nil)
	loaded(t, v, v.Init())

	assert.Contains(t, v.View(), "No documents uploaded yet.")
}

func TestView_LoadError(t *testing.T) {
	svc := &MockHistoryService{LoadFunc: func(context.Context, int, int) (*domain.History, error) {
		return nil, &domain.OperationError{Message: "Failed to load history"}
	}}
	v := NewView(nil, svc, nil)
	loaded(t, v, v.Init())

	assert.EqualError(t, v.Err(), "Failed to load history")
	assert.Contains(t, v.View(), "Error: Failed to load history")
}

func TestView_NilService(t *testing.T) {
	v := NewView(nil, nil, nil)
	loaded(t, v, v.Init())

	assert.ErrorIs(t, v.Err(), ErrNoHistoryService)
}

func TestView_StaleLoadIsDropped(t *testing.T) {
	v, _ := newLoadedView(t, nil)
	stale := messages.HistoryLoaded{Gen: v.Gen() - 1, History: &domain.History{}}

	v.Update(stale)

	assert.Len(t, v.History().Items, 2)
}

func TestView_Refresh(t *testing.T) {
	v, svc := newLoadedView(t, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "refreshing...")
	loaded(t, v, cmd)

	assert.Equal(t, []int{0, 0}, svc.skips)
	assert.False(t, v.Loading())
}

func TestView_Navigation(t *testing.T) {
	v, _ := newLoadedView(t, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())
	assert.Equal(t, "doc-2", v.SelectedItem().Document.DocumentID)
}

func TestView_ShowAnalysis(t *testing.T) {
	v, _ := newLoadedView(t, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.IsShowingMenu())
	assert.Contains(t, v.View(), "Actions for: policy.txt")
	assert.NotContains(t, v.View(), "Delete Document")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ShowAnalysis)
	require.True(t, ok)
	assert.Equal(t, "doc-1", msg.Result.DocumentID)
	assert.False(t, v.IsShowingMenu())
}

func TestView_ShowAnalysis_NotAnalyzed(t *testing.T) {
	v, _ := newLoadedView(t, nil)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.EqualError(t, v.Err(), "document doc-2 has not been analyzed")
}

func TestView_DeleteDocument(t *testing.T) {
	docs := &MockDocumentService{}
	v, svc := newLoadedView(t, docs)
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.DocumentDeleted)
	require.True(t, ok)
	assert.Equal(t, []string{"doc-2"}, docs.deleted)

	_, cmd = v.Update(msg)
	loaded(t, v, cmd)
	assert.Equal(t, []int{0, 0}, svc.skips)
}

func TestView_DeleteFailure(t *testing.T) {
	v, _ := newLoadedView(t, nil)

	v.Update(messages.DocumentDeleted{DocumentID: "doc-1", Err: errors.New("forbidden")})

	assert.EqualError(t, v.Err(), "forbidden")
}

func TestView_MenuCancel(t *testing.T) {
	v, _ := newLoadedView(t, &MockDocumentService{})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, v.IsShowingMenu())
}

func TestView_MenuEsc(t *testing.T) {
	v, _ := newLoadedView(t, nil)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.IsShowingMenu())
}

func TestView_Paging(t *testing.T) {
	full := &domain.History{}
	for i := range domain.DefaultHistoryLimit {
		full.Items = append(full.Items, domain.HistoryItem{
			Document: domain.Document{DocumentID: fmt.Sprintf("doc-%d", i), Filename: "f.txt"},
		})
	}
	svc := &MockHistoryService{LoadFunc: func(_ context.Context, skip, _ int) (*domain.History, error) {
		if skip == 0 {
			return full, nil
		}
		return testHistory(), nil
	}}
	v := NewView(nil, svc, nil)
	v.SetDimensions(100, 40)
	loaded(t, v, v.Init())
	assert.Contains(t, v.View(), "(page 1)")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	loaded(t, v, cmd)
	assert.Equal(t, domain.DefaultHistoryLimit, v.Skip())
	assert.Contains(t, v.View(), "(page 2)")

	// The last page has no next page.
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	assert.Nil(t, cmd)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}})
	loaded(t, v, cmd)
	assert.Equal(t, 0, v.Skip())
	assert.Equal(t, []int{0, domain.DefaultHistoryLimit, 0}, svc.skips)
}

func TestView_PagingUsesConfiguredPageSize(t *testing.T) {
	page := &domain.History{}
	for i := range 5 {
		page.Items = append(page.Items, domain.HistoryItem{
			Document: domain.Document{DocumentID: fmt.Sprintf("doc-%d", i), Filename: "f.txt"},
		})
	}
	svc := &MockHistoryService{pageSize: 5, LoadFunc: func(context.Context, int, int) (*domain.History, error) {
		return page, nil
	}}
	v := NewView(nil, svc, nil)
	v.SetDimensions(100, 40)
	loaded(t, v, v.Init())
	assert.Contains(t, v.View(), "(page 1)")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}})
	loaded(t, v, cmd)

	assert.Equal(t, 5, v.Skip())
	assert.Contains(t, v.View(), "(page 2)")
	assert.Equal(t, []int{5, 5}, svc.limits)
}

func TestView_Esc_GoesToMenu(t *testing.T) {
	v, _ := newLoadedView(t, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Scrolling(t *testing.T) {
	many := &domain.History{}
	for i := range 15 {
		many.Items = append(many.Items, domain.HistoryItem{
			Document: domain.Document{DocumentID: fmt.Sprintf("doc-%d", i), Filename: fmt.Sprintf("file-%d.txt", i)},
		})
	}
	svc := &MockHistoryService{LoadFunc: func(context.Context, int, int) (*domain.History, error) {
		return many, nil
	}}
	v := NewView(nil, svc, nil)
	v.SetDimensions(100, 15)
	loaded(t, v, v.Init())

	for range 10 {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	view := v.View()
	assert.Contains(t, view, "file-10.txt")
	assert.NotContains(t, view, "file-0.txt")
	assert.Contains(t, view, "of 15]")
}
