// Package stats provides the system statistics view for the TUI.
package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// ErrNoStatsService is returned when the view has no stats service.
var ErrNoStatsService = errors.New("stats: service not configured")

const barWidth = 30

// View shows the backend statistics and the bias type histogram.
type View struct {
	styles       *styles.Styles
	statsService driving.StatsService
	ctx          context.Context

	statistics *domain.SystemStatistics
	status     *domain.RAGStatus
	width      int
	height     int
	ready      bool
	loading    bool
	gen        int
	err        error
}

// NewView creates a new statistics view.
func NewView(s *styles.Styles, statsService driving.StatsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:       s,
		statsService: statsService,
		ctx:          context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the statistics.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// load fetches the statistics and the RAG status together. A failed status
// call only hides the configuration section.
func (v *View) load() tea.Cmd {
	v.gen++
	v.loading = true

	gen := v.gen
	ctx := v.ctx
	svc := v.statsService
	return func() tea.Msg {
		if svc == nil {
			return messages.StatsLoaded{Gen: gen, Err: ErrNoStatsService}
		}

		var (
			statistics *domain.SystemStatistics
			status     *domain.RAGStatus
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			statistics, err = svc.Statistics(gctx)
			return err
		})
		g.Go(func() error {
			status, _ = svc.Status(gctx)
			return nil
		})
		if err := g.Wait(); err != nil {
			return messages.StatsLoaded{Gen: gen, Err: err}
		}
		return messages.StatsLoaded{Gen: gen, Statistics: statistics, Status: status}
	}
}

// Update handles messages for the statistics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return v, v.load()
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		return v, nil

	case messages.StatsLoaded:
		if msg.Gen != v.gen {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.statistics = msg.Statistics
		v.status = msg.Status
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// View renders the statistics view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Statistics"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.statistics == nil {
		if v.loading {
			b.WriteString(v.styles.Muted.Render("Loading statistics..."))
			b.WriteString("\n\n")
		}
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.renderOverview())
	b.WriteString("\n")
	b.WriteString(v.renderDistribution())
	if v.status != nil {
		b.WriteString("\n")
		b.WriteString(v.renderStatus())
	}

	b.WriteString("\n")
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Refreshing..."))
		b.WriteString("\n")
	}
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder
	st := v.statistics

	score := fmt.Sprintf("%d%% %s", domain.Percent(st.AverageBiasScore), domain.ScoreLabel(st.AverageBiasScore))
	items := []struct {
		label string
		value string
	}{
		{label: "Documents", value: fmt.Sprintf("%d", st.TotalDocuments)},
		{label: "Analyses", value: fmt.Sprintf("%d", st.TotalAnalyses)},
		{label: "Average bias score", value: v.styles.Tier(domain.LevelForScore(st.AverageBiasScore).Tier()).Render(score)},
		{label: "Database", value: v.flag(st.DatabaseConnected, "connected", "disconnected")},
		{label: "RAG", value: v.flag(st.RAGEnabled, "enabled", "disabled")},
	}

	for _, item := range items {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-20s", item.label+":")))
		b.WriteString(item.value)
		b.WriteString("\n")
	}
	return b.String()
}

// renderDistribution draws one bar per bias type scaled to the largest count.
func (v *View) renderDistribution() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Bias Distribution"))
	b.WriteString("\n")

	dist := v.statistics.BiasDistribution
	if len(dist) == 0 {
		b.WriteString(v.styles.Muted.Render("  No biases recorded yet."))
		b.WriteString("\n")
		return b.String()
	}

	maxCount := v.statistics.MaxBiasCount()
	for _, d := range dist {
		n := d.Count * barWidth / maxCount
		if d.Count > 0 && n == 0 {
			n = 1
		}
		style := v.styles.BiasType(domain.BiasType(d.Type))
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-14s", d.Type)))
		b.WriteString(style.Render(strings.Repeat("█", n)))
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" %d", d.Count)))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderStatus() string {
	var b strings.Builder
	st := v.status

	b.WriteString(v.styles.Subtitle.Render("RAG Configuration"))
	b.WriteString("\n")
	lines := []string{
		fmt.Sprintf("Analysis model:      %s", st.AnalysisModel),
		fmt.Sprintf("Embedding model:     %s", st.EmbeddingModel),
		fmt.Sprintf("Vector database:     %s", st.VectorDB),
		fmt.Sprintf("Max context chunks:  %d", st.MaxContextChunks),
		fmt.Sprintf("Relevance threshold: %.2f", st.RelevanceThreshold),
	}
	for _, l := range lines {
		b.WriteString(v.styles.Muted.Render("  " + l))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) flag(ok bool, yes, no string) string {
	if ok {
		return v.styles.Success.Render(yes)
	}
	return v.styles.Error.Render(no)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[r] refresh  [esc] back")
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

// Statistics returns the loaded statistics, or nil.
func (v *View) Statistics() *domain.SystemStatistics {
	return v.statistics
}

// Status returns the loaded RAG status, or nil.
func (v *View) Status() *domain.RAGStatus {
	return v.status
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
