package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

const scoreBarWidth = 20

// renderCard renders the score card of an analysis wrapped to width.
func renderCard(s *styles.Styles, r *domain.AnalysisResult, width int) string {
	if width < 30 {
		width = 30
	}
	wrap := lipgloss.NewStyle().Width(width - 8)
	tier := s.Tier(r.Level().Tier())

	var b strings.Builder

	b.WriteString(s.Subtitle.Render("Overall Bias Score"))
	b.WriteString("\n  ")
	b.WriteString(tier.Render(fmt.Sprintf("%d%%  %s", domain.Percent(r.OverallScore), r.Level().Label())))
	b.WriteString("\n  ")
	b.WriteString(scoreBar(s, r.OverallScore))
	b.WriteString("\n")

	if !r.AnalyzedAt.IsZero() {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  Analyzed %s (%s)",
			r.AnalyzedAt.Display(), humanize.Time(r.AnalyzedAt.Time))))
		b.WriteString("\n")
	}
	if r.RAGEnhanced() {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  RAG enhanced: %d reference chunks from %d documents",
			r.RAGMetadata.NumReferenceChunks, len(r.RAGMetadata.ReferenceDocuments))))
		b.WriteString("\n")
	}

	if r.Summary != "" {
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(indent(wrap.Render(r.Summary)))
		b.WriteString("\n")
	}
	if r.ComparativeInsights != "" {
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render("Comparative Insights"))
		b.WriteString("\n")
		b.WriteString(indent(wrap.Render(r.ComparativeInsights)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(r.BiasInstances) == 0 {
		b.WriteString(s.Success.Render("No bias instances detected."))
		return b.String()
	}

	b.WriteString(s.Subtitle.Render(fmt.Sprintf("Detected Biases (%d)", len(r.BiasInstances))))
	b.WriteString("\n")
	for i, inst := range r.BiasInstances {
		severity := domain.SeverityLevel(inst.Severity)
		b.WriteString(fmt.Sprintf("\n  %d. ", i+1))
		b.WriteString(s.BiasType(inst.Type).Render(strings.ToUpper(string(inst.Type))))
		b.WriteString("  ")
		b.WriteString(s.Tier(severity.Tier()).Render(
			fmt.Sprintf("severity %d%% (%s)", domain.Percent(inst.Severity), severity)))
		b.WriteString("\n")
		b.WriteString(indent(wrap.Render(fmt.Sprintf("%q", inst.Text))))
		b.WriteString("\n")
		if inst.Explanation != "" {
			b.WriteString(indent(wrap.Render(inst.Explanation)))
			b.WriteString("\n")
		}
		if inst.Suggestions != "" {
			b.WriteString(indent(s.Success.Render(wrap.Render("Suggestion: " + inst.Suggestions))))
			b.WriteString("\n")
		}
		if inst.SeenInReferences {
			b.WriteString(s.Muted.Render("     Also seen in reference documents"))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// scoreBar draws the score as a fixed width bar.
func scoreBar(s *styles.Styles, score float64) string {
	filled := domain.Percent(score) * scoreBarWidth / 100
	filled = min(max(filled, 0), scoreBarWidth)
	tier := s.Tier(domain.LevelForScore(score).Tier())
	return tier.Render(strings.Repeat("█", filled)) +
		s.Muted.Render(strings.Repeat("░", scoreBarWidth-filled))
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "     " + l
	}
	return strings.Join(lines, "\n")
}
