// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool // If true, selecting this item quits the app
}

var descriptions = map[messages.ViewType]string{
	messages.ViewAnalyze: "Upload a PDF, TXT or DOCX file and score it for bias",
	messages.ViewSearch:  "Semantic search across uploaded documents",
	messages.ViewChat:    "Ask questions answered from the analyzed corpus",
	messages.ViewHistory: "Browse uploaded documents and their latest analysis",
	messages.ViewStats:   "Totals, average score and bias distribution",
	messages.ViewHelp:    "Keyboard shortcuts",
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view with one item per tab, then Help and Quit.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	tabs := messages.Tabs()
	items := make([]Item, 0, len(tabs)+2)
	for _, t := range append(tabs, messages.ViewHelp) {
		items = append(items, Item{Label: t.Title(), Description: descriptions[t], View: t})
	}
	items = append(items, Item{Label: "Quit", Quit: true})

	return &View{
		styles:   s,
		items:    items,
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.items[v.selected])

		case "q":
			return v, tea.Quit

		default:
			// Digits jump straight to an item.
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(v.items) {
				v.selected = int(key[0] - '1')
				return v, v.choose(v.items[v.selected])
			}
		}
	}

	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("biasctl"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Document Bias Detection"))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, item := range v.items {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label))
	}

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		line := cursor + style.Render(fmt.Sprintf("%d. %-*s", i+1, labelWidth, item.Label))
		if item.Description != "" {
			line += "  " + v.styles.Muted.Render(item.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [1-7] Jump  [Enter] Select  [Tab] Next tab  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu entries.
func (v *View) Items() []Item {
	return v.items
}
