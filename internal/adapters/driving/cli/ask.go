package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the documents",
	Long: `Ask a question answered from the uploaded documents.

The backend retrieves the most relevant chunks and answers from them.
Use --document to restrict the answer to one document.

Examples:
  biasctl ask "What types of bias are most common?"
  biasctl ask --document 1b2c "Which phrases were flagged?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

var contextCmd = &cobra.Command{
	Use:   "context [text]",
	Short: "Find reference chunks similar to a text",
	Long: `Find reference chunks in the corpus similar to a text.

The text is given as an argument or read from a local TXT or DOCX file.

Examples:
  biasctl context "The chairman will decide."
  biasctl context --file draft.docx --exclude 1b2c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContext,
}

var (
	askDocument    string
	askTopK        int
	contextExclude string
	contextTopK    int
	contextFile    string
)

func init() {
	askCmd.Flags().StringVarP(&askDocument, "document", "d", "", "Only answer from this document")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "Number of chunks to retrieve (default from config)")
	contextCmd.Flags().StringVar(&contextExclude, "exclude", "", "Document ID to leave out")
	contextCmd.Flags().StringVarP(&contextFile, "file", "f", "", "Read the text from a TXT or DOCX file")
	contextCmd.Flags().IntVarP(&contextTopK, "top-k", "k", domain.DefaultContextTopK, "Number of chunks to return")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(contextCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	answer, err := chatService.AskAbout(cmd.Context(), domain.Question{
		Question:   args[0],
		DocumentID: askDocument,
		TopK:       askTopK,
	})
	if err != nil {
		return err
	}

	return render(cmd, answer, func() {
		cmd.Println(answer.Answer)
		if len(answer.Sources) == 0 {
			return
		}
		cmd.Printf("\nSources (%d):\n", len(answer.Sources))
		for _, s := range answer.Sources {
			cmd.Printf("  - %s (%d%% relevant)\n", s.Filename, domain.Percent(s.Relevance))
		}
	})
}

func runContext(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	text, err := contextText(args)
	if err != nil {
		return err
	}

	resp, err := documentService.Context(cmd.Context(), domain.ContextRequest{
		Text:              text,
		ExcludeDocumentID: contextExclude,
		TopK:              contextTopK,
	})
	if err != nil {
		return err
	}

	return render(cmd, resp, func() {
		if len(resp.ContextChunks) == 0 {
			cmd.Println("No related context found.")
			return
		}
		for i, c := range resp.ContextChunks {
			cmd.Printf("%d. %s  [%d%% relevant]\n", i+1, c.Filename, domain.Percent(c.RelevanceScore))
			cmd.Printf("   %s\n\n", truncate(c.Text, 200))
		}
		cmd.Printf("Total found: %d\n", resp.TotalFound)
	})
}

// contextText returns the text argument or the text of --file, exactly one of which must be set.
func contextText(args []string) (string, error) {
	switch {
	case contextFile != "" && len(args) > 0:
		return "", fmt.Errorf("%w: give either a text or --file, not both", domain.ErrInvalidInput)
	case contextFile != "":
		if textExtractor == nil {
			return "", errors.New("text extractor not configured")
		}
		return textExtractor.ExtractText(contextFile)
	case len(args) == 0 || strings.TrimSpace(args[0]) == "":
		return "", fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	return args[0], nil
}
