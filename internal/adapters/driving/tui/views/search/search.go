// Package search provides the semantic search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// ErrNoSearchService is returned by NewView without a search service.
var ErrNoSearchService = errors.New("search service is required")

const (
	actionShowAnalysis = "Show latest analysis"
	actionCancel       = "Cancel"
)

// ActionMenu represents a simple action selection overlay.
type ActionMenu struct {
	actions  []string
	selected int
	visible  bool
	result   *domain.SearchResult
}

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService   driving.SearchService
	documentService driving.DocumentService
	ctx             context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	actionMenu *ActionMenu
	gen        int
	outcome    *domain.SearchOutcome
}

// NewView creates a new search view. documentService may be nil.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	documentService driving.DocumentService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.New(s, "Search", "e.g. gender bias in job descriptions"),
		list:            list.NewResultList(s),
		statusbar:       status.NewBar(s, km),
		searchService:   searchService,
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
		focusInput:      true, // Start in input mode
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	// Forward other messages (cursor blink) to the input
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// If action menu is visible, handle its keys
	if v.actionMenu != nil && v.actionMenu.visible {
		return v.handleActionMenuKey(msg)
	}

	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits search
	if msg.Type == tea.KeyEnter && v.focusInput {
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.gen++
		v.err = nil
		v.statusbar.Busy(fmt.Sprintf("Searching for %q...", query))
		return v, v.performSearch(v.gen, query)
	}

	// Input mode: all keys go to input
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Results mode: handle Enter to open action menu
	if msg.Type == tea.KeyEnter {
		result := v.list.SelectedResult()
		if result != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{actionShowAnalysis, actionCancel},
				visible: true,
				result:  result,
			}
		}
		return v, nil
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		// New search: clear input and focus it
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	return v, nil
}

// handleActionMenuKey processes keyboard input when action menu is visible.
func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		result := v.actionMenu.result
		v.actionMenu = nil // Close menu
		return v.executeAction(action, result)
	case "esc":
		v.actionMenu = nil // Close menu
	}
	return v, nil
}

// executeAction performs the selected action on a search result.
func (v *View) executeAction(action string, result *domain.SearchResult) (*View, tea.Cmd) {
	if result == nil || action != actionShowAnalysis {
		return v, nil
	}
	if v.documentService == nil {
		v.statusbar.Fail("Analyses are not available")
		return v, nil
	}

	v.statusbar.Busy("Loading analysis of " + result.Filename + "...")
	docID := result.DocumentID
	ctx := v.ctx
	svc := v.documentService
	return v, func() tea.Msg {
		analysis, err := svc.LatestAnalysis(ctx, docID)
		if errors.Is(err, domain.ErrNotFound) {
			return messages.ErrorOccurred{Err: fmt.Errorf("document %s has not been analyzed", docID)}
		}
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.ShowAnalysis{Result: *analysis}
	}
}

// performSearch executes a search and returns results.
func (v *View) performSearch(gen int, query string) tea.Cmd {
	ctx := v.ctx
	svc := v.searchService
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Gen: gen, Err: ErrNoSearchService}
		}
		outcome, err := svc.Search(ctx, query, 0)
		return messages.SearchCompleted{Gen: gen, Outcome: outcome, Err: err}
	}
}

// handleSearchCompleted processes search results from the current generation.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Gen != v.gen {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.outcome = msg.Outcome
	v.list.SetResults(msg.Outcome.Query, msg.Outcome.Results)
	v.list.SetEmptyMessage(msg.Outcome.EmptyMessage())
	v.statusbar.ShowResults(len(msg.Outcome.Results))

	// Switch to results mode after successful search
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.Fail(err.Error())
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	sections = append(sections,
		v.styles.Title.Render("Semantic Search"),
		v.styles.Muted.Render("Find passages across every uploaded document."),
		"",
		v.input.View(),
		"",
	)

	// Error display
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.outcome != nil {
		sections = append(sections, v.list.View())
	}

	// Action menu overlay (if visible)
	if v.actionMenu != nil && v.actionMenu.visible {
		sections = append(sections, "", v.renderActionMenu())
	}

	// Status bar at bottom
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}

	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	// Allocate space to components
	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-12) // Reserve space for header, input, tabs and status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search query.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Gen returns the current request generation.
func (v *View) Gen() int {
	return v.gen
}

// Reset clears the query and results. In-flight searches are dropped.
func (v *View) Reset() tea.Cmd {
	v.gen++
	v.focusInput = true
	v.input.SetValue("")
	v.list.SetResults("", nil)
	v.outcome = nil
	v.actionMenu = nil
	v.err = nil
	v.statusbar.Reset()
	return v.input.Focus()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// MenuVisible returns whether the action menu is open.
func (v *View) MenuVisible() bool {
	return v.actionMenu != nil && v.actionMenu.visible
}
