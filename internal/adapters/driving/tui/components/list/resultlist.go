// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

// linesPerResult is the height of one rendered hit: title line and snippet.
const linesPerResult = 2

// ResultList shows search hits with a relevance marker and a snippet of the
// matching chunk, scrolling to keep the selection visible.
type ResultList struct {
	styles   *styles.Styles
	results  []domain.SearchResult
	query    string
	empty    string
	selected int
	width    int
	height   int
}

// NewResultList creates an empty result list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{
		styles: s,
		empty:  "No results",
		width:  80,
		height: 10,
	}
}

// SetResults replaces the hits and selects the first one.
// The query centres each snippet on its first matching word.
func (r *ResultList) SetResults(query string, results []domain.SearchResult) {
	r.query = query
	r.results = results
	r.selected = 0
}

// SetEmptyMessage sets the text shown when there are no results.
func (r *ResultList) SetEmptyMessage(msg string) {
	r.empty = msg
}

// Results returns the current hits.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the selected index.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the selected hit, or nil when the list is empty.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp selects the previous hit.
func (r *ResultList) MoveUp() {
	r.selected = max(r.selected-1, 0)
}

// MoveDown selects the next hit.
func (r *ResultList) MoveDown() {
	r.selected = max(min(r.selected+1, len(r.results)-1), 0)
}

// SetDimensions sets the space available to the list.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// View renders the visible window of hits.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	start, end := r.window()

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))))
	b.WriteString("\n")
	if start > 0 {
		b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	b.WriteString("\n")

	for i := start; i < end; i++ {
		b.WriteString(r.renderResult(i))
		b.WriteString("\n")
	}
	if rest := len(r.results) - end; rest > 0 {
		b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  ↓ %d more", rest)))
	}

	return strings.TrimRight(b.String(), "\n")
}

// window returns the half-open range of visible hits.
func (r *ResultList) window() (int, int) {
	// Header, scroll markers and a blank line.
	visible := max((r.height-4)/linesPerResult, 1)

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	return start, min(start+visible, len(r.results))
}

func (r *ResultList) renderResult(index int) string {
	result := r.results[index]

	name := result.Filename
	if name == "" {
		name = "(Untitled)"
	}
	nameWidth := max(r.width-24, 10)
	name = fmt.Sprintf("%d. %s", index+1, clip(name, nameWidth-4))

	cursor, style := "  ", r.styles.Normal
	if index == r.selected {
		cursor, style = "> ", r.styles.Selected
	}

	relevance := r.styles.Tier(domain.RelevanceTier(result.RelevanceScore)).Render("●") + " " +
		r.styles.Muted.Render(fmt.Sprintf("%d%% relevant", domain.Percent(result.RelevanceScore)))

	title := style.Render(fmt.Sprintf("%s%-*s", cursor, nameWidth, name)) + "  " + relevance
	snippet := r.styles.Muted.Render("    " + Snippet(result.TextChunk, r.query, max(r.width-6, 20)))

	return title + "\n" + snippet
}

// Snippet collapses whitespace in text and cuts it to width runes, keeping
// the first word of query that occurs in text inside the window.
func Snippet(text, query string, width int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= width {
		return string(runes)
	}

	start := 0
	if at := firstMatch(runes, query); at > width/2 {
		start = min(at-width/3, len(runes)-width)
	}

	out := string(runes[start : start+width])
	if start > 0 {
		out = "…" + string(runes[start+1:start+width])
	}
	if start+width < len(runes) {
		r := []rune(out)
		out = string(r[:len(r)-1]) + "…"
	}
	return out
}

// firstMatch returns the rune offset of the earliest query word in text, or -1.
func firstMatch(text []rune, query string) int {
	lower := []rune(strings.ToLower(string(text)))
	best := -1
	for _, word := range strings.Fields(strings.ToLower(query)) {
		w := []rune(word)
		for i := 0; i+len(w) <= len(lower); i++ {
			if string(lower[i:i+len(w)]) == word {
				if best < 0 || i < best {
					best = i
				}
				break
			}
		}
	}
	return best
}

// clip cuts s to n runes with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n-1, 0)]) + "…"
}
