package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document",
	Long: `Upload a PDF, TXT or DOCX document to the backend.

Files larger than 10 MiB or with another extension are rejected before
anything is sent.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Upload and analyze a document",
	Long: `Upload a document and analyze it for bias in one step.

The analysis uses related documents in the corpus as context (RAG) unless
--no-rag is given. When the upload fails the analysis is not attempted.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkNoRAG bool
	checkTypes []string
)

func init() {
	checkCmd.Flags().BoolVar(&checkNoRAG, "no-rag", false, "Analyze without reference context")
	checkCmd.Flags().StringSliceVarP(&checkTypes, "types", "t", nil, "Bias types to detect (default all)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(checkCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil || fileSource == nil {
		return errors.New("upload service not configured")
	}

	file, closer, err := fileSource.Open(args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	doc, err := uploadService.UploadFile(cmd.Context(), *file)
	if err != nil {
		return err
	}

	return render(cmd, doc, func() {
		cmd.Println("Uploaded successfully.")
		cmd.Println()
		printDocument(cmd, doc)
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	if workflowService == nil || fileSource == nil {
		return errors.New("workflow service not configured")
	}

	types, err := parseBiasTypes(checkTypes)
	if err != nil {
		return err
	}

	file, closer, err := fileSource.Open(args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := domain.CheckOptions{BiasTypes: types, DisableRAG: checkNoRAG}
	result, err := workflowService.UploadAndAnalyze(cmd.Context(), *file, opts)
	if err != nil {
		return err
	}

	return render(cmd, result, func() {
		cmd.Printf("Uploaded %s as %s (%s)\n\n",
			result.Document.Filename, result.Document.DocumentID, formatSize(result.Document.FileSize))
		printAnalysis(cmd, &result.Analysis)
	})
}
