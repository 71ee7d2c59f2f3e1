package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search uploaded documents",
	Long: `Search the indexed document chunks by meaning.

Results are ranked by semantic similarity to the query and show the
matching text chunk of each document.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

// searchLimit is the number of results to request. Zero uses the configured default.
var searchLimit int

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	outcome, err := searchService.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return err
	}

	return render(cmd, outcome.Results, func() {
		outputSearchTable(cmd, outcome)
	})
}

func outputSearchTable(cmd *cobra.Command, outcome *domain.SearchOutcome) {
	if outcome.Empty() {
		cmd.Println(outcome.EmptyMessage())
		return
	}

	cmd.Printf("Results for %q:\n\n", outcome.Query)
	for i, r := range outcome.Results {
		cmd.Printf("%d. %s  [%d%% relevant]\n", i+1, r.Filename, domain.Percent(r.RelevanceScore))
		cmd.Printf("   ID: %s\n", r.DocumentID)
		if r.TextChunk != "" {
			cmd.Printf("   %s\n", truncate(r.TextChunk, 200))
		}
		cmd.Println()
	}
}
