// Package analyze provides the upload and analyze view for the TUI.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// ErrMissingServices is returned by the check command when the view was
// built without a workflow or file source.
var ErrMissingServices = errors.New("analyze: workflow and file source are required")

// Services are the ports the analyze view reads from and drives.
type Services struct {
	Upload   driving.UploadService
	Analysis driving.AnalysisService
	Workflow driving.WorkflowService
	Files    driven.FileSource
}

// View uploads a file, analyzes it and shows the score card.
// Upload and analysis state is read from the trackers on every render.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	spinner   spinner.Model
	viewport  viewport.Model
	statusbar *status.Bar

	services Services
	ctx      context.Context

	width      int
	height     int
	ready      bool
	useRAG     bool
	busy       bool
	focusInput bool
	gen        int
	err        error
}

// NewView creates a new analyze view.
func NewView(s *styles.Styles, km *keymap.KeyMap, services Services) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.New(s, "File", "path/to/document.pdf"),
		spinner:    sp,
		viewport:   viewport.New(80, 10),
		statusbar:  status.NewBar(s, km),
		services:   services,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		useRAG:     true,
		focusInput: true,
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

// Update handles messages for the analyze view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.CheckCompleted:
		v.handleCheckCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, v.keymap.ToggleRAG):
		v.useRAG = !v.useRAG
		return v, nil
	case keymap.Matches(key, v.keymap.Clear):
		return v, v.Reset()
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Result mode
	if keymap.Matches(key, v.keymap.NewSearch) || msg.Type == tea.KeyEnter {
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// submit starts the upload and analysis of the path in the input.
func (v *View) submit() tea.Cmd {
	path := strings.Trim(strings.TrimSpace(v.input.Value()), `"'`)
	if path == "" || v.busy {
		return nil
	}

	v.gen++
	v.busy = true
	v.err = nil
	v.statusbar.Busy("Checking " + filepath.Base(path) + "...")

	return tea.Batch(v.spinner.Tick, v.check(v.gen, path, domain.CheckOptions{DisableRAG: !v.useRAG}))
}

func (v *View) check(gen int, path string, opts domain.CheckOptions) tea.Cmd {
	ctx := v.ctx
	svc := v.services
	return func() tea.Msg {
		if svc.Workflow == nil || svc.Files == nil {
			return messages.CheckCompleted{Gen: gen, Path: path, Err: ErrMissingServices}
		}
		file, closer, err := svc.Files.Open(path)
		if err != nil {
			return messages.CheckCompleted{Gen: gen, Path: path, Err: err}
		}
		defer closer.Close()

		result, err := svc.Workflow.UploadAndAnalyze(ctx, *file, opts)
		return messages.CheckCompleted{Gen: gen, Path: path, Result: result, Err: err}
	}
}

func (v *View) handleCheckCompleted(msg messages.CheckCompleted) {
	if msg.Gen != v.gen {
		return
	}
	v.busy = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.statusbar.Succeed("Analyzed " + msg.Result.Document.Filename)
	v.showResult()
}

// ShowAnalysis loads a stored analysis into the analysis tracker and shows
// its score card. It is refused while a check is in flight and reports
// whether the analysis is shown.
func (v *View) ShowAnalysis(result domain.AnalysisResult) bool {
	if v.busy {
		v.statusbar.Fail("a check is still running")
		return false
	}
	if v.services.Analysis != nil {
		v.services.Analysis.SetResult(result)
	}
	v.gen++
	v.ShowResult()
	return true
}

// ShowResult switches to the score card of the analysis tracker's result,
// used after a stored analysis was loaded into it.
func (v *View) ShowResult() {
	if v.services.Analysis == nil {
		return
	}
	if r := v.services.Analysis.Result(); r != nil {
		v.err = nil
		v.statusbar.Succeed("Showing analysis of " + r.DocumentID)
	}
	v.showResult()
}

func (v *View) showResult() {
	v.focusInput = false
	v.input.Blur()
	v.refreshCard()
	v.viewport.GotoTop()
}

func (v *View) refreshCard() {
	if r := v.result(); r != nil {
		v.viewport.SetContent(renderCard(v.styles, r, v.viewport.Width))
	}
}

func (v *View) setError(err error) {
	v.busy = false
	v.err = err
	v.statusbar.Fail(err.Error())
}

func (v *View) result() *domain.AnalysisResult {
	if v.services.Analysis == nil {
		return nil
	}
	return v.services.Analysis.Result()
}

// Reset clears the trackers and the input. It does nothing while a check
// is in flight.
func (v *View) Reset() tea.Cmd {
	if v.busy {
		return nil
	}
	v.gen++
	v.err = nil
	if v.services.Upload != nil {
		v.services.Upload.Reset()
	}
	if v.services.Analysis != nil {
		v.services.Analysis.Reset()
	}
	v.viewport.SetContent("")
	v.statusbar.Reset()
	v.focusInput = true
	v.input.SetValue("")
	return v.input.Focus()
}

// View renders the analyze view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections,
		v.styles.Title.Render("Upload & Analyze"),
		v.styles.Muted.Render(fmt.Sprintf("Accepted: %s up to %s",
			strings.Join(domain.AcceptedExtensions(), ", "), humanize.IBytes(uint64(domain.MaxUploadSize)))),
		"",
		v.input.View(),
		v.renderRAG(),
		"",
	)

	if v.busy {
		sections = append(sections, v.spinner.View()+" "+v.styles.Normal.Render(v.phase()), "")
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	if doc := v.uploaded(); doc != nil {
		sections = append(sections, v.styles.Muted.Render(fmt.Sprintf("Uploaded %s (%s) as %s",
			doc.Filename, humanize.IBytes(uint64(max(doc.FileSize, 0))), doc.DocumentID)), "")
	}
	if v.result() != nil {
		sections = append(sections, v.viewport.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderRAG() string {
	state := v.styles.Success.Render("on")
	if !v.useRAG {
		state = v.styles.Warning.Render("off")
	}
	return v.styles.Muted.Render("RAG context: ") + state + v.styles.Help.Render("  [ctrl+r] toggle  [ctrl+l] clear")
}

// phase describes what the trackers are doing.
func (v *View) phase() string {
	switch {
	case v.services.Upload != nil && v.services.Upload.Uploading():
		return "Uploading..."
	case v.services.Analysis != nil && v.services.Analysis.Analyzing():
		return "Analyzing for bias..."
	default:
		return "Working..."
	}
}

func (v *View) uploaded() *domain.UploadedDocument {
	if v.services.Upload == nil {
		return nil
	}
	return v.services.Upload.UploadedDocument()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.viewport.Width = max(30, width)
	v.viewport.Height = max(5, height-16)
	v.refreshCard()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Busy reports whether a check is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// UseRAG reports whether the next check requests reference context.
func (v *View) UseRAG() bool {
	return v.useRAG
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Gen returns the current request generation.
func (v *View) Gen() int {
	return v.gen
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
