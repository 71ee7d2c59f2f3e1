// Package chat provides the RAG question and answer view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// ErrNoChatService is returned when the view has no chat service.
var ErrNoChatService = errors.New("chat: service not configured")

// View shows the conversation held by the chat service and asks new questions.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	spinner   spinner.Model
	viewport  viewport.Model
	statusbar *status.Bar

	chat driving.ChatService
	ctx  context.Context

	width     int
	height    int
	ready     bool
	waiting   bool
	suggested int
	gen       int
	err       error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chat driving.ChatService) *View {
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
		styles:    s,
		keymap:    km,
		input:     input.New(s, "", "Ask about bias in your documents..."),
		spinner:   sp,
		viewport:  viewport.New(80, 10),
		statusbar: status.NewBar(s, km),
		chat:      chat,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.refresh()
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnswerReceived:
		v.handleAnswer(msg)
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
	case keymap.Matches(key, v.keymap.Clear):
		return v, v.Reset()
	case msg.Type == tea.KeyEnter:
		return v, v.submit(v.input.Value())
	case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return v, cmd
	}

	// Suggestions are picked with the arrows or their number while the
	// conversation and the input are empty.
	if v.showSuggestions() && v.input.Value() == "" {
		questions := v.chat.SuggestedQuestions()
		switch {
		case msg.Type == tea.KeyUp:
			v.suggested = max(v.suggested-1, 0)
			return v, nil
		case msg.Type == tea.KeyDown:
			v.suggested = min(v.suggested+1, len(questions)-1)
			return v, nil
		case len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(questions):
			return v, v.submit(questions[key[0]-'1'])
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit asks question. With an empty input and suggestions on screen the
// highlighted suggestion is asked instead.
func (v *View) submit(question string) tea.Cmd {
	if v.waiting {
		return nil
	}
	if strings.TrimSpace(question) == "" {
		if !v.showSuggestions() {
			return nil
		}
		question = v.chat.SuggestedQuestions()[v.suggested]
	}

	v.gen++
	v.waiting = true
	v.err = nil
	v.input.SetValue("")
	v.statusbar.Busy("Thinking...")

	return tea.Batch(v.spinner.Tick, v.ask(v.gen, question))
}

func (v *View) ask(gen int, question string) tea.Cmd {
	ctx := v.ctx
	svc := v.chat
	return func() tea.Msg {
		if svc == nil {
			return messages.AnswerReceived{Gen: gen, Err: ErrNoChatService}
		}
		answer, err := svc.Ask(ctx, question)
		return messages.AnswerReceived{Gen: gen, Answer: answer, Err: err}
	}
}

func (v *View) handleAnswer(msg messages.AnswerReceived) {
	if msg.Gen != v.gen {
		return
	}
	v.waiting = false
	if msg.Err != nil {
		v.setError(msg.Err)
		v.refresh()
		return
	}

	v.err = nil
	v.statusbar.Succeed(fmt.Sprintf("Answered from %d sources", len(msg.Answer.Sources)))
	v.refresh()
}

// setError prefers the message recorded by the chat service.
func (v *View) setError(err error) {
	v.waiting = false
	if v.chat != nil {
		if msg := v.chat.Error(); msg != "" {
			err = errors.New(msg)
		}
	}
	v.err = err
	v.statusbar.Fail(err.Error())
}

// Reset clears the conversation. It does nothing while a question is in flight.
func (v *View) Reset() tea.Cmd {
	if v.waiting {
		return nil
	}
	v.gen++
	v.err = nil
	v.suggested = 0
	if v.chat != nil {
		v.chat.Reset()
	}
	v.input.SetValue("")
	v.statusbar.Reset()
	v.refresh()
	return v.input.Focus()
}

func (v *View) messages() []domain.ChatMessage {
	if v.chat == nil {
		return nil
	}
	return v.chat.Messages()
}

func (v *View) showSuggestions() bool {
	return v.chat != nil && !v.waiting && len(v.messages()) == 0 && len(v.chat.SuggestedQuestions()) > 0
}

// refresh rebuilds the transcript and scrolls to the latest message.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderTranscript())
	v.viewport.GotoBottom()
}

func (v *View) renderTranscript() string {
	msgs := v.messages()
	if len(msgs) == 0 {
		return ""
	}

	wrap := lipgloss.NewStyle().Width(max(v.viewport.Width-4, 20))
	blocks := make([]string, 0, len(msgs))
	for _, m := range msgs {
		var b strings.Builder
		if m.Role == domain.RoleUser {
			b.WriteString(v.styles.Selected.Render("You"))
		} else {
			b.WriteString(v.styles.Subtitle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(m.Content))
		if len(m.Sources) > 0 {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render("Sources:"))
			for _, src := range m.Sources {
				b.WriteString("\n")
				b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %s (%d%% relevant)",
					src.Filename, domain.Percent(src.Relevance))))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) renderSuggestions() string {
	lines := []string{v.styles.Subtitle.Render("Try asking:")}
	for i, q := range v.chat.SuggestedQuestions() {
		line := fmt.Sprintf("%d. %s", i+1, q)
		if i == v.suggested {
			lines = append(lines, v.styles.Selected.Render("> "+line))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("Ask AI"),
		v.styles.Muted.Render("Questions are answered from the analyzed documents."),
		"",
	)

	if v.showSuggestions() {
		sections = append(sections, v.renderSuggestions(), "")
	} else {
		sections = append(sections, v.viewport.View(), "")
	}
	if v.waiting {
		sections = append(sections, v.spinner.View()+" "+v.styles.Normal.Render("Thinking..."), "")
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.input.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.viewport.Width = max(30, width)
	v.viewport.Height = max(5, height-14)
	v.refresh()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Waiting reports whether a question is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// Suggested returns the index of the highlighted suggestion.
func (v *View) Suggested() int {
	return v.suggested
}

// Gen returns the current request generation.
func (v *View) Gen() int {
	return v.gen
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Input returns the text in the question box.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the text in the question box.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
}
