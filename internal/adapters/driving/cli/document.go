package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `List, view or delete documents stored by the backend.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long:  `Delete a document together with its analyses and indexed chunks.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var (
	documentSkip  int
	documentLimit int
)

func init() {
	documentListCmd.Flags().IntVar(&documentSkip, "skip", 0, "Number of documents to skip")
	documentListCmd.Flags().IntVar(&documentLimit, "limit", 100, "Maximum number of documents")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	list, err := documentService.List(cmd.Context(), documentSkip, documentLimit)
	if err != nil {
		return err
	}

	return render(cmd, list, func() {
		if len(list.Documents) == 0 {
			cmd.Println("No documents found.")
			return
		}

		t := newTable("DOCUMENT", "FILE", "TYPE", "SIZE", "UPLOADED", "ANALYZED")
		for _, d := range list.Documents {
			analyzed := "no"
			if d.Analyzed {
				analyzed = "yes"
			}
			t.Row(d.DocumentID, d.Filename, d.FileType, formatSize(d.FileSize), d.UploadedAt.Display(), analyzed)
		}
		cmd.Println(t.Render())
		cmd.Printf("Total: %d documents\n", len(list.Documents))
	})
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd, doc, func() {
		cmd.Printf("Document: %s\n\n", doc.DocumentID)
		cmd.Printf("  Filename: %s\n", doc.Filename)
		cmd.Printf("  Type:     %s\n", doc.FileType)
		cmd.Printf("  Size:     %s\n", formatSize(doc.FileSize))
		cmd.Printf("  Uploaded: %s\n", formatTime(doc.UploadedAt))
		if doc.Analyzed {
			cmd.Printf("  Analysis: %s\n", doc.AnalysisID)
		} else {
			cmd.Println("  Analysis: pending")
		}
	})
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
