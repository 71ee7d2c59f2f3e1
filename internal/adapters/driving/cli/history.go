package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List documents with their latest analysis",
	Long: `List uploaded documents together with their most recent analysis.

Documents that have not been analyzed yet are shown as pending.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show the analysis history of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var (
	historySkip      int
	historyLimit     int
	historyShowLimit int
)

func init() {
	historyCmd.Flags().IntVar(&historySkip, "skip", 0, "Number of documents to skip")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of documents (default from config)")
	historyShowCmd.Flags().IntVar(&historyShowLimit, "limit", 10, "Maximum number of analyses")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	history, err := historyService.Load(cmd.Context(), historySkip, historyLimit)
	if err != nil {
		return err
	}

	return render(cmd, history, func() {
		if len(history.Items) == 0 {
			cmd.Println("No documents uploaded yet.")
			return
		}

		t := newTable("DOCUMENT", "FILE", "SIZE", "UPLOADED", "SCORE", "INSTANCES")
		for _, item := range history.Items {
			score, instances := "pending", "-"
			if item.Analyzed() {
				score = formatScore(item.LatestAnalysis.OverallScore)
				instances = fmt.Sprint(len(item.LatestAnalysis.BiasInstances))
			}
			t.Row(item.Document.DocumentID, item.Document.Filename, formatSize(item.Document.FileSize),
				item.Document.UploadedAt.Display(), score, instances)
		}
		cmd.Println(t.Render())
		cmd.Printf("%d documents, %d analyzed\n", len(history.Items), history.AnalyzedCount())
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	h, err := historyService.AnalysesFor(cmd.Context(), args[0], historyShowLimit)
	if err != nil {
		return err
	}

	return render(cmd, h, func() {
		if len(h.Analyses) == 0 {
			cmd.Printf("No analyses for document %s\n", args[0])
			return
		}

		cmd.Printf("Analyses of %s (%d total):\n\n", h.DocumentID, h.TotalCount)
		t := newTable("ANALYZED", "SCORE", "INSTANCES", "RAG", "SUMMARY")
		for _, a := range h.Analyses {
			rag := "no"
			if a.RAGMetadata != nil && a.RAGMetadata.ContextUsed {
				rag = "yes"
			}
			t.Row(a.AnalyzedAt.Display(), formatScore(a.OverallScore),
				fmt.Sprint(len(a.BiasInstances)), rag, truncate(a.Summary, 60))
		}
		cmd.Println(t.Render())
	})
}
