package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/watch"
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Analyze documents as they are added to a folder",
	Long: `Watch a folder and upload and analyze every PDF, TXT or DOCX file
created in it. Each file is processed once. Press Ctrl+C to stop.

Use --metrics-addr to expose Prometheus metrics while watching:

  biasctl watch ./inbox --metrics-addr :9090`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchNoRAG       bool
	watchTypes       []string
	watchMetricsAddr string
)

func init() {
	watchCmd.Flags().BoolVar(&watchNoRAG, "no-rag", false, "Analyze without reference context")
	watchCmd.Flags().StringSliceVarP(&watchTypes, "types", "t", nil, "Bias types to detect (default all)")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if workflowService == nil || fileSource == nil {
		return errors.New("workflow service not configured")
	}

	types, err := parseBiasTypes(watchTypes)
	if err != nil {
		return err
	}

	cfg := watch.Config{
		Dir:      args[0],
		Workflow: workflowService,
		Files:    fileSource,
		Options:  domain.CheckOptions{BiasTypes: types, DisableRAG: watchNoRAG},
	}
	gatherer := metricsGatherer
	if watchMetricsAddr != "" {
		if reg, ok := gatherer.(prometheus.Registerer); ok {
			cfg.Registerer = reg
		} else {
			reg := prometheus.NewRegistry()
			cfg.Registerer, gatherer = reg, reg
		}
	}

	w, err := watch.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if watchMetricsAddr != "" {
		g.Go(func() error {
			return watch.ServeMetrics(ctx, watchMetricsAddr, gatherer)
		})
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	g.Go(func() error {
		err := w.Run(ctx, func(ev watch.Event) {
			if ev.Err != nil {
				cmd.PrintErrf("✗ %s: %v\n", ev.Path, ev.Err)
				return
			}
			cmd.Printf("✓ %s: %s (%d instances)\n",
				ev.Path, formatScore(ev.Result.Analysis.OverallScore), len(ev.Result.Analysis.BiasInstances))
		})
		stop()
		return err
	})

	return g.Wait()
}
