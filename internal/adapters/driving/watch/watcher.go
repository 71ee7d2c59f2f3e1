// Package watch uploads and analyzes documents as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
	"github.com/custodia-labs/biasctl/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is uploaded.
const DefaultSettle = 500 * time.Millisecond

// Event reports the outcome for one file.
type Event struct {
	Path   string
	Result *domain.CheckResult
	Err    error
}

// Config configures a Watcher.
type Config struct {
	// Dir is the directory to observe. Subdirectories are not watched.
	Dir string

	Workflow driving.WorkflowService
	Files    driven.FileSource
	Options  domain.CheckOptions

	// Settle defaults to DefaultSettle.
	Settle time.Duration

	// Registerer receives the watcher metrics. Optional.
	Registerer prometheus.Registerer
}

// Watcher runs the upload and analyze workflow once for every accepted
// file created in a directory.
type Watcher struct {
	cfg       Config
	processed mapset.Set[string]
	metrics   *metrics
}

// New validates cfg and creates a watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.Workflow == nil || cfg.Files == nil {
		return nil, errors.New("watch: workflow and file source are required")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", cfg.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, cfg.Dir)
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}

	return &Watcher{
		cfg:       cfg,
		processed: mapset.NewSet[string](),
		metrics:   newMetrics(cfg.Registerer),
	}, nil
}

// Processed reports whether path has already been handled.
func (w *Watcher) Processed(path string) bool {
	return w.processed.Contains(filepath.Clean(path))
}

// Run watches until ctx is cancelled, calling onEvent after each file.
// Files are processed one at a time.
func (w *Watcher) Run(ctx context.Context, onEvent func(Event)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	logger.Info("Watching %s", w.cfg.Dir)

	ready := make(chan string)
	done := make(chan struct{})
	defer close(done)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path, ok := w.handleEvent(ev)
			if !ok {
				continue
			}
			if t, exists := pending[path]; exists {
				t.Reset(w.cfg.Settle)
				continue
			}
			pending[path] = time.AfterFunc(w.cfg.Settle, func() {
				select {
				case ready <- path:
				case <-done:
				}
			})

		case path := <-ready:
			delete(pending, path)
			if ev, ok := w.process(ctx, path); ok && onEvent != nil {
				onEvent(ev)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent returns the cleaned path of an event that may need processing.
// Hidden files, directories, unsupported extensions and files already
// processed are skipped.
func (w *Watcher) handleEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}

	path := filepath.Clean(ev.Name)
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || !domain.IsAcceptedFile(name) {
		return "", false
	}
	if w.processed.Contains(path) {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// process runs the workflow for path unless it was handled before.
func (w *Watcher) process(ctx context.Context, path string) (Event, bool) {
	if !w.processed.Add(path) {
		return Event{}, false
	}

	ev := Event{Path: path}
	ev.Result, ev.Err = w.check(ctx, path)
	if ev.Err != nil {
		w.metrics.failed.Inc()
		logger.Warn("%s: %v", filepath.Base(path), ev.Err)
	} else {
		w.metrics.analyzed.Inc()
		w.metrics.score.Observe(ev.Result.Analysis.OverallScore)
	}
	return ev, true
}

func (w *Watcher) check(ctx context.Context, path string) (*domain.CheckResult, error) {
	file, closer, err := w.cfg.Files.Open(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return w.cfg.Workflow.UploadAndAnalyze(ctx, *file, w.cfg.Options)
}
