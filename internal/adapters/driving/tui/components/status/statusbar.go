// Package status provides the status bar shown under each tab.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
)

// State is what the bar is reporting.
type State string

const (
	StateReady   State = "ready"
	StateBusy    State = "busy"
	StateSuccess State = "success"
	StateError   State = "error"
	StateResults State = "results"
)

// Bar shows the state of the last action on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	count   int
	width   int
}

// NewBar creates a ready status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// Busy reports a call in flight.
func (s *Bar) Busy(message string) {
	s.set(StateBusy, message, 0)
}

// Succeed reports a completed call.
func (s *Bar) Succeed(message string) {
	s.set(StateSuccess, message, 0)
}

// Fail reports a failed call with its display message.
func (s *Bar) Fail(message string) {
	s.set(StateError, message, 0)
}

// ShowResults reports a completed search with n hits.
func (s *Bar) ShowResults(n int) {
	s.set(StateResults, "", n)
}

// Reset returns the bar to ready.
func (s *Bar) Reset() {
	s.set(StateReady, "", 0)
}

func (s *Bar) set(state State, message string, count int) {
	s.state = state
	s.message = message
	s.count = count
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// ResultCount returns the hit count of the last search.
func (s *Bar) ResultCount() int {
	return s.count
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateBusy:
		return s.styles.Muted.Render(orDefault(s.message, "Working..."))
	case StateSuccess:
		return s.styles.Success.Render(s.message)
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateResults:
		if s.count == 1 {
			return s.styles.Normal.Render("1 result")
		}
		if s.count > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d results", s.count))
		}
	case StateReady:
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state == StateResults && s.count > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = append(s.keymap.TabHelp(), s.keymap.ShortHelp()...)
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
