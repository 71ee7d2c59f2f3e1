package cli

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show system statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show RAG system status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var searchStatsCmd = &cobra.Command{
	Use:   "search-stats",
	Short: "Show vector index statistics",
	Args:  cobra.NoArgs,
	RunE:  runSearchStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(searchStatsCmd)
}

// barWidth is the width of a full distribution bar.
const barWidth = 30

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	stats, err := statsService.Statistics(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, stats, func() {
		cmd.Println("System statistics:")
		cmd.Println()
		cmd.Printf("  Documents:          %d\n", stats.TotalDocuments)
		cmd.Printf("  Analyses:           %d\n", stats.TotalAnalyses)
		cmd.Printf("  Average bias score: %s\n", formatScore(stats.AverageBiasScore))
		cmd.Printf("  Database:           %s\n", connected(stats.DatabaseConnected))
		cmd.Printf("  RAG:                %s\n", enabled(stats.RAGEnabled))

		if len(stats.BiasDistribution) == 0 {
			return
		}
		cmd.Println("\nBias distribution:")
		maxCount := stats.MaxBiasCount()
		for _, b := range stats.BiasDistribution {
			width := b.Count * barWidth / maxCount
			cmd.Printf("  %-13s %s %d\n", b.Type, strings.Repeat("█", width), b.Count)
		}
	})
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	status, err := statsService.Status(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, status, func() {
		cmd.Println("RAG status:")
		cmd.Println()
		cmd.Printf("  RAG:                 %s\n", enabled(status.RAGEnabled))
		cmd.Printf("  Database:            %s\n", connected(status.DatabaseConnected))
		cmd.Printf("  Vector DB:           %s\n", orDash(status.VectorDB))
		cmd.Printf("  Embedding model:     %s\n", orDash(status.EmbeddingModel))
		cmd.Printf("  Analysis model:      %s\n", orDash(status.AnalysisModel))
		cmd.Printf("  Max context chunks:  %d\n", status.MaxContextChunks)
		cmd.Printf("  Relevance threshold: %.2f\n", status.RelevanceThreshold)
		for _, k := range slices.Sorted(maps.Keys(status.OllamaStatus)) {
			cmd.Printf("  Ollama %s: %v\n", k, status.OllamaStatus[k])
		}
	})
}

func runSearchStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	stats, err := statsService.SearchStats(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, stats, func() {
		cmd.Printf("Indexed vectors: %d\n", stats.TotalVectors())
		for _, k := range slices.Sorted(maps.Keys(stats)) {
			if k == "total_vectors" {
				continue
			}
			cmd.Printf("  %s: %v\n", k, stats[k])
		}
	})
}

func connected(ok bool) string {
	if ok {
		return "connected"
	}
	return "disconnected"
}

func enabled(ok bool) string {
	if ok {
		return "enabled"
	}
	return "disabled"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
