package cli

import (
	"errors"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [doc-id]",
	Short: "Analyze an uploaded document",
	Long: `Analyze an uploaded document for bias.

By default every bias type is detected and related documents in the corpus
are used as context. Restrict the types with --types:

  biasctl analyze 1b2c --types gender,political`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var latestCmd = &cobra.Command{
	Use:   "latest [doc-id]",
	Short: "Show the latest analysis of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runLatest,
}

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "List all analyses",
	Args:  cobra.NoArgs,
	RunE:  runAnalyses,
}

var (
	analyzeNoRAG  bool
	analyzeTypes  []string
	analysesSkip  int
	analysesLimit int
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeNoRAG, "no-rag", false, "Analyze without reference context")
	analyzeCmd.Flags().StringSliceVarP(&analyzeTypes, "types", "t", nil, "Bias types to detect (default all)")
	analysesCmd.Flags().IntVar(&analysesSkip, "skip", 0, "Number of analyses to skip")
	analysesCmd.Flags().IntVar(&analysesLimit, "limit", 50, "Maximum number of analyses")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(analysesCmd)
}

// parseBiasTypes parses and de-duplicates bias type names, keeping the
// order they were given in.
func parseBiasTypes(names []string) ([]domain.BiasType, error) {
	seen := mapset.NewThreadUnsafeSet[domain.BiasType]()
	types := make([]domain.BiasType, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		t, err := domain.ParseBiasType(name)
		if err != nil {
			return nil, err
		}
		if seen.Add(t) {
			types = append(types, t)
		}
	}
	return types, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	types, err := parseBiasTypes(analyzeTypes)
	if err != nil {
		return err
	}

	opts := domain.CheckOptions{BiasTypes: types, DisableRAG: analyzeNoRAG}
	result, err := analysisService.AnalyzeDocument(cmd.Context(), opts.AnalysisRequest(args[0]))
	if err != nil {
		return err
	}

	return render(cmd, result, func() {
		printAnalysis(cmd, result)
	})
}

func runLatest(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	result, err := documentService.LatestAnalysis(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("document %s has not been analyzed", args[0])
	}
	if err != nil {
		return err
	}

	return render(cmd, result, func() {
		printAnalysis(cmd, result)
	})
}

func runAnalyses(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	list, err := documentService.AllAnalyses(cmd.Context(), analysesSkip, analysesLimit)
	if err != nil {
		return err
	}

	return render(cmd, list, func() {
		if len(list.Analyses) == 0 {
			cmd.Println("No analyses yet.")
			return
		}

		t := newTable("DOCUMENT", "FILE", "SCORE", "INSTANCES", "ANALYZED")
		for _, a := range list.Analyses {
			t.Row(a.DocumentID, a.Filename, formatScore(a.OverallScore),
				fmt.Sprint(len(a.BiasInstances)), a.AnalyzedAt.Display())
		}
		cmd.Println(t.Render())
		cmd.Printf("Showing %d analyses (skip %d)\n", len(list.Analyses), list.Skip)
	})
}
