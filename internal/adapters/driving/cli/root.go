// Package cli provides the cobra command tree for biasctl.
package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	uploadService   driving.UploadService
	analysisService driving.AnalysisService
	workflowService driving.WorkflowService
	historyService  driving.HistoryService
	searchService   driving.SearchService
	chatService     driving.ChatService
	statsService    driving.StatsService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	fileSource      driven.FileSource
	textExtractor   driven.TextExtractor
	metricsGatherer prometheus.Gatherer
)

// Services holds everything the commands need.
type Services struct {
	Upload   driving.UploadService
	Analysis driving.AnalysisService
	Workflow driving.WorkflowService
	History  driving.HistoryService
	Search   driving.SearchService
	Chat     driving.ChatService
	Stats    driving.StatsService
	Document driving.DocumentService
	Settings driving.SettingsService
	Files    driven.FileSource
	Text     driven.TextExtractor

	// Gatherer backs the watcher's /metrics endpoint. Optional.
	Gatherer prometheus.Gatherer
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	uploadService = s.Upload
	analysisService = s.Analysis
	workflowService = s.Workflow
	historyService = s.History
	searchService = s.Search
	chatService = s.Chat
	statsService = s.Stats
	documentService = s.Document
	settingsService = s.Settings
	fileSource = s.Files
	textExtractor = s.Text
	metricsGatherer = s.Gatherer
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "biasctl",
	Short: "Detect bias in documents",
	Long: `biasctl talks to a bias-detection backend.

Upload PDF, TXT or DOCX documents, analyze them for gender, political,
cultural and other biases, browse the analysis history, search the
indexed corpus and ask questions about it.

The backend URL is read from BIASCTL_API_URL, the config file
(~/.biasctl/config.toml) or defaults to http://localhost:8000.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return validateOutputFormat()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable,
		fmt.Sprintf("Output format (%s, %s, %s)", formatTable, formatJSON, formatYAML))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands see as cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
