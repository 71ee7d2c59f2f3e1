package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/biasctl/internal/core/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// outputFormat is the value of the persistent --output flag.
var outputFormat = formatTable

func validateOutputFormat() error {
	switch outputFormat {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("%w: unknown output format %q (use %s, %s or %s)",
		domain.ErrInvalidInput, outputFormat, formatTable, formatJSON, formatYAML)
}

// render writes v as JSON or YAML when requested, otherwise calls human.
func render(cmd *cobra.Command, v any, human func()) error {
	switch outputFormat {
	case formatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		// Round-trip through JSON so YAML keys match the API field names.
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	}
	human()
	return nil
}

// blockStyle clears the flow and quoting styles inherited from JSON.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

func formatSize(n int64) string {
	return humanize.IBytes(uint64(max(n, 0)))
}

func formatTime(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", t.Display(), humanize.Time(t.Time))
}

func formatScore(score float64) string {
	return fmt.Sprintf("%d%% %s", domain.Percent(score), domain.ScoreLabel(score))
}

// truncate shortens s to n runes, appending an ellipsis.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printDocument(cmd *cobra.Command, doc *domain.UploadedDocument) {
	cmd.Printf("Document: %s\n\n", doc.DocumentID)
	cmd.Printf("  Filename: %s\n", doc.Filename)
	cmd.Printf("  Type:     %s\n", doc.FileType)
	cmd.Printf("  Size:     %s\n", formatSize(doc.FileSize))
	cmd.Printf("  Uploaded: %s\n", formatTime(doc.UploadedAt))
}

// printAnalysis prints the score card of an analysis.
func printAnalysis(cmd *cobra.Command, result *domain.AnalysisResult) {
	cmd.Printf("Analysis of %s\n\n", result.DocumentID)
	cmd.Printf("  Overall score: %s\n", formatScore(result.OverallScore))
	cmd.Printf("  Analyzed:      %s\n", formatTime(result.AnalyzedAt))
	if result.RAGEnhanced() {
		cmd.Printf("  RAG context:   %d reference chunks from %d documents\n",
			result.RAGMetadata.NumReferenceChunks, len(result.RAGMetadata.ReferenceDocuments))
	}

	if result.Summary != "" {
		cmd.Printf("\nSummary:\n  %s\n", result.Summary)
	}
	if result.ComparativeInsights != "" {
		cmd.Printf("\nComparative insights:\n  %s\n", result.ComparativeInsights)
	}

	if len(result.BiasInstances) == 0 {
		cmd.Println("\nNo bias instances detected.")
		return
	}

	cmd.Printf("\nBias instances (%d):\n", len(result.BiasInstances))
	for i, b := range result.BiasInstances {
		cmd.Printf("\n  %d. [%s] severity %d%% (%s)\n",
			i+1, b.Type, domain.Percent(b.Severity), domain.SeverityLevel(b.Severity))
		cmd.Printf("     %q\n", truncate(b.Text, 120))
		if b.Explanation != "" {
			cmd.Printf("     %s\n", b.Explanation)
		}
		if b.Suggestions != "" {
			cmd.Printf("     Suggestion: %s\n", b.Suggestions)
		}
		if b.SeenInReferences {
			cmd.Println("     Also seen in reference documents")
		}
	}
}
