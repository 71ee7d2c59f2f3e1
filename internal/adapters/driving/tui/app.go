package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/views/analyze"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/views/stats"
)

// tabBarHeight is the number of lines the tab bar takes above a tab.
const tabBarHeight = 2

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	analyzeView *analyze.View
	searchView  *search.View
	chatView    *chat.View
	historyView *history.View
	statsView   *stats.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,

		menuView: menu.NewView(s),
		analyzeView: analyze.NewView(s, km, analyze.Services{
			Upload:   ports.Upload,
			Analysis: ports.Analysis,
			Workflow: ports.Workflow,
			Files:    ports.Files,
		}),
		searchView:  search.NewView(s, km, ports.Search, ports.Document),
		chatView:    chat.NewView(s, km, ports.Chat),
		historyView: history.NewView(s, ports.History, ports.Document),
		statsView:   stats.NewView(s, ports.Stats),

		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app and every view.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.analyzeView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.chatView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	a.statsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("biasctl - Bias Detection"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	// Results go to the view that asked for them, whichever view is showing.
	case messages.CheckCompleted:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.AnswerReceived:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded, messages.DocumentDeleted:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.StatsLoaded:
		a.statsView, cmd = a.statsView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's ID.
		var analyzeCmd, chatCmd tea.Cmd
		a.analyzeView, analyzeCmd = a.analyzeView.Update(msg)
		a.chatView, chatCmd = a.chatView.Update(msg)
		return a, tea.Batch(analyzeCmd, chatCmd)

	case messages.ShowAnalysis:
		a.analyzeView.ShowAnalysis(msg.Result)
		a.currentView = messages.ViewAnalyze
		return a, nil

	case messages.ViewChanged:
		return a, a.activate(msg.View, true)

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewAnalyze:
			a.analyzeView, cmd = a.analyzeView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewStats:
			a.statsView, cmd = a.statsView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// No error display
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global quit with ctrl+c
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.currentView.IsTab() || a.currentView == messages.ViewMenu {
		switch {
		case keymap.Matches(key, a.keymap.NextTab):
			return a, a.activate(a.cycle(1), false)
		case keymap.Matches(key, a.keymap.PrevTab):
			return a, a.activate(a.cycle(-1), false)
		}
	}

	// Views without a text input take ? for help.
	if keymap.Matches(key, a.keymap.Help) && !a.hasInput() {
		if a.currentView == messages.ViewHelp {
			a.currentView = messages.ViewMenu
		} else {
			a.currentView = messages.ViewHelp
		}
		return a, nil
	}

	if a.currentView == messages.ViewHelp {
		if msg.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
		return a, nil
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAnalyze:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}
	return cmd
}

// activate switches to view. Coming from the menu the search tab starts
// over; switching tabs keeps it. History and statistics always reload.
func (a *App) activate(view messages.ViewType, fromMenu bool) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewAnalyze:
		return a.analyzeView.Init()
	case messages.ViewSearch:
		if fromMenu {
			return a.searchView.Reset()
		}
		return a.searchView.Init()
	case messages.ViewChat:
		return a.chatView.Init()
	case messages.ViewHistory:
		return a.historyView.Init()
	case messages.ViewStats:
		return a.statsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		// Nothing to load
	}
	return nil
}

// cycle returns the tab step places away from the current one. From the
// menu the first or last tab is chosen.
func (a *App) cycle(step int) messages.ViewType {
	tabs := messages.Tabs()
	current := -1
	for i, t := range tabs {
		if t == a.currentView {
			current = i
		}
	}
	if current < 0 {
		if step > 0 {
			return tabs[0]
		}
		return tabs[len(tabs)-1]
	}
	return tabs[(current+step+len(tabs))%len(tabs)]
}

func (a *App) hasInput() bool {
	switch a.currentView {
	case messages.ViewAnalyze, messages.ViewSearch, messages.ViewChat:
		return true
	}
	return false
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewAnalyze:
		body = a.analyzeView.View()
	case messages.ViewSearch:
		body = a.searchView.View()
	case messages.ViewChat:
		body = a.chatView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewStats:
		body = a.statsView.View()
	default:
		return a.menuView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), "", body)
}

// renderTabs renders the tab bar with the current tab highlighted.
func (a *App) renderTabs() string {
	tabs := messages.Tabs()
	rendered := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if t == a.currentView {
			rendered = append(rendered, a.styles.ActiveTab.Render(label))
		} else {
			rendered = append(rendered, a.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(`Navigation:
  tab/shift+tab  Next / previous tab
  esc            Back to Menu
  ?              Toggle help (menu, history, statistics)
  ctrl+c         Quit

Upload & Analyze:
  enter          Upload and analyze the file path
  ctrl+r         Toggle RAG context for the next analysis
  ctrl+l         Clear the current analysis
  n              Analyze another file
  pgup/pgdown    Scroll the score card

Search:
  enter          Submit search, or open actions on a result
  j/k, ↑/↓       Navigate results
  n              New search

Ask AI:
  enter          Send the question
  1-9, ↑/↓       Pick a suggested question
  ctrl+l         Clear the conversation

History:
  enter          Show latest analysis or delete
  [ / ]          Previous / next page
  r              Reload

Statistics:
  r              Refresh
`)
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and sizes every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.menuView.SetDimensions(width, height)
	tabHeight := max(height-tabBarHeight, 1)
	a.analyzeView.SetDimensions(width, tabHeight)
	a.searchView.SetDimensions(width, tabHeight)
	a.chatView.SetDimensions(width, tabHeight)
	a.historyView.SetDimensions(width, tabHeight)
	a.statsView.SetDimensions(width, tabHeight)
}
