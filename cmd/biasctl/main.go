// Command biasctl is the terminal client of the bias detection backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/biasctl/internal/adapters/driven/api"
	"github.com/custodia-labs/biasctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/biasctl/internal/adapters/driven/files"
	"github.com/custodia-labs/biasctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/biasctl/internal/core/services"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "biasctl: opening config: %v\n", err)
		os.Exit(1)
	}

	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Resolve()

	client := api.NewClient(api.Config{
		BaseURL:           settings.APIURL,
		Timeout:           settings.Timeout,
		RequestsPerSecond: settings.RequestsPerSecond,
		Registerer:        prometheus.DefaultRegisterer,
	})

	source := files.NewSource()
	uploads := services.NewUploadService(client)
	analyses := services.NewAnalysisService(client)

	cli.SetServices(cli.Services{
		Upload:   uploads,
		Analysis: analyses,
		Workflow: services.NewWorkflowService(uploads, analyses),
		History:  services.NewHistoryService(client, settings.HistoryConcurrency, settings.HistoryLimit),
		Search:   services.NewSearchService(client, settings.SearchTopK),
		Chat:     services.NewChatService(client, settings.RAGTopK),
		Stats:    services.NewStatsService(client),
		Document: services.NewDocumentService(client),
		Settings: settingsService,
		Files:    source,
		Text:     source,
		Gatherer: prometheus.DefaultGatherer,
	})
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
