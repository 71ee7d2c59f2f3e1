// Package history provides the analysis history view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// ErrNoHistoryService is returned when the view has no history service.
var ErrNoHistoryService = errors.New("history: service not configured")

// ActionOption represents a history item action.
type ActionOption int

const (
	ActionShowAnalysis ActionOption = iota
	ActionDelete
	ActionCancel
)

// View lists uploaded documents with their latest analysis.
type View struct {
	styles          *styles.Styles
	historyService  driving.HistoryService
	documentService driving.DocumentService
	ctx             context.Context

	history      *domain.History
	skip         int
	selected     int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	gen          int
	showingMenu  bool
	menuSelected ActionOption
	scrollOffset int
}

// NewView creates a new history view. documentService may be nil, in which
// case documents cannot be deleted.
func NewView(s *styles.Styles, historyService driving.HistoryService, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		historyService:  historyService,
		documentService: documentService,
		ctx:             context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current page.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// load starts a fetch of the current page. Older fetches still in flight
// are dropped when they land.
func (v *View) load() tea.Cmd {
	v.gen++
	v.loading = true
	v.err = nil
	v.showingMenu = false

	gen, skip, limit := v.gen, v.skip, v.pageSize()
	ctx := v.ctx
	svc := v.historyService
	return func() tea.Msg {
		if svc == nil {
			return messages.HistoryLoaded{Gen: gen, Err: ErrNoHistoryService}
		}
		h, err := svc.Load(ctx, skip, limit)
		return messages.HistoryLoaded{Gen: gen, History: h, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.history = msg.History
		v.err = nil
		v.selected = min(v.selected, max(len(v.items())-1, 0))
		v.adjustScroll()
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.items())-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if len(v.items()) > 0 {
			v.showingMenu = true
			v.menuSelected = ActionShowAnalysis
		}
	case "]":
		if v.hasNextPage() {
			v.skip += v.pageSize()
			v.selected, v.scrollOffset = 0, 0
			return v, v.load()
		}
	case "[":
		if v.skip > 0 {
			v.skip = max(v.skip-v.pageSize(), 0)
			v.selected, v.scrollOffset = 0, 0
			return v, v.load()
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "r":
		return v, v.load()
	}

	return v, nil
}

// handleMenuKeyMsg handles key presses in action menu mode.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	options := v.menuOptions()
	switch msg.String() {
	case "up", "k":
		for i := len(options) - 1; i > 0; i-- {
			if options[i] == v.menuSelected {
				v.menuSelected = options[i-1]
				break
			}
		}
	case "down", "j":
		for i := 0; i < len(options)-1; i++ {
			if options[i] == v.menuSelected {
				v.menuSelected = options[i+1]
				break
			}
		}
	case "enter":
		return v.handleMenuSelect()
	case "esc":
		v.showingMenu = false
	}

	return v, nil
}

// handleMenuSelect handles selection of an action.
func (v *View) handleMenuSelect() (*View, tea.Cmd) {
	v.showingMenu = false
	item := v.SelectedItem()
	if item == nil {
		return v, nil
	}

	switch v.menuSelected {
	case ActionShowAnalysis:
		if !item.Analyzed() {
			v.err = fmt.Errorf("document %s has not been analyzed", item.Document.DocumentID)
			return v, nil
		}
		result := *item.LatestAnalysis
		return v, func() tea.Msg {
			return messages.ShowAnalysis{Result: result}
		}
	case ActionDelete:
		return v, v.deleteDocument(item.Document.DocumentID)
	case ActionCancel:
	}

	return v, nil
}

// deleteDocument returns a command that deletes the document.
func (v *View) deleteDocument(docID string) tea.Cmd {
	ctx := v.ctx
	svc := v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentDeleted{DocumentID: docID, Err: fmt.Errorf("document service not available")}
		}
		return messages.DocumentDeleted{DocumentID: docID, Err: svc.Delete(ctx, docID)}
	}
}

func (v *View) menuOptions() []ActionOption {
	if v.documentService == nil {
		return []ActionOption{ActionShowAnalysis, ActionCancel}
	}
	return []ActionOption{ActionShowAnalysis, ActionDelete, ActionCancel}
}

func (v *View) items() []domain.HistoryItem {
	if v.history == nil {
		return nil
	}
	return v.history.Items
}

func (v *View) hasNextPage() bool {
	return len(v.items()) >= v.pageSize()
}

// pageSize is the history service's configured page size.
func (v *View) pageSize() int {
	if v.historyService == nil || v.historyService.PageSize() <= 0 {
		return domain.DefaultHistoryLimit
	}
	return v.historyService.PageSize()
}

// adjustScroll adjusts the scroll offset to keep the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, tabs, summary and help
	reserved := 10
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Analysis History"))
	b.WriteString("\n\n")

	if v.loading && v.history == nil {
		b.WriteString(v.styles.Muted.Render("Loading history..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	items := v.items()
	if len(items) == 0 {
		if v.err == nil {
			b.WriteString(v.styles.Muted.Render("No documents uploaded yet."))
			b.WriteString("\n\n")
		}
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.showingMenu {
		b.WriteString(v.renderActionMenu())
		return b.String()
	}

	summary := fmt.Sprintf("%d documents, %d analyzed", len(items), v.history.AnalyzedCount())
	if v.skip > 0 || v.hasNextPage() {
		summary += fmt.Sprintf("  (page %d)", v.skip/v.pageSize()+1)
	}
	if v.loading {
		summary += "  refreshing..."
	}
	b.WriteString(v.styles.Muted.Render(summary))
	b.WriteString("\n\n")

	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(items) && i < v.scrollOffset+visibleItems; i++ {
		b.WriteString(v.renderItem(i, &items[i]))
		b.WriteString("\n")
	}

	if len(items) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(items)),
			len(items))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderItem renders a single history line.
func (v *View) renderItem(index int, item *domain.HistoryItem) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := item.Document.Filename
	if name == "" {
		name = item.Document.DocumentID
	}
	maxNameLen := max(v.width/2-4, 10)
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	badge := v.styles.Muted.Render(fmt.Sprintf("%-14s", "pending"))
	if item.Analyzed() {
		score := item.LatestAnalysis.OverallScore
		badge = v.styles.Tier(domain.HistoryTier(score)).Render(
			fmt.Sprintf("%-14s", fmt.Sprintf("%3d%% %s", domain.Percent(score), domain.ScoreLabel(score))))
	}

	uploaded := "-"
	if !item.Document.UploadedAt.IsZero() {
		uploaded = humanize.Time(item.Document.UploadedAt.Time)
	}

	line := fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)
	if index == v.selected {
		return v.styles.Selected.Render(line) + badge + "  " + v.styles.Muted.Render(uploaded)
	}
	return v.styles.Normal.Render(line) + badge + "  " + v.styles.Muted.Render(uploaded)
}

// renderActionMenu renders the action menu overlay.
func (v *View) renderActionMenu() string {
	var b strings.Builder

	if item := v.SelectedItem(); item != nil {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Actions for: %s", item.Document.Filename)))
		b.WriteString("\n\n")
	}

	labels := map[ActionOption]string{
		ActionShowAnalysis: "Show Latest Analysis",
		ActionDelete:       "Delete Document",
		ActionCancel:       "Cancel",
	}
	for _, opt := range v.menuOptions() {
		if v.menuSelected == opt {
			b.WriteString(v.styles.Selected.Render("> " + labels[opt]))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + labels[opt]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] select  [esc] cancel"))

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] actions  [ / ] page  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// History returns the loaded page, or nil.
func (v *View) History() *domain.History {
	return v.history
}

// Skip returns the offset of the current page.
func (v *View) Skip() int {
	return v.skip
}

// SelectedIndex returns the currently selected item index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedItem returns the currently selected item.
func (v *View) SelectedItem() *domain.HistoryItem {
	items := v.items()
	if v.selected < len(items) {
		return &items[v.selected]
	}
	return nil
}

// IsShowingMenu returns true if the action menu is visible.
func (v *View) IsShowingMenu() bool {
	return v.showingMenu
}

// Loading reports whether a fetch is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Gen returns the current request generation.
func (v *View) Gen() int {
	return v.gen
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
