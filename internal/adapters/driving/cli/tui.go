package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/biasctl/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for biasctl.

The TUI has one tab per task: analyze a file, search the corpus, chat
with the documents, browse the history and view statistics.

Controls:
  Tab/Shift+Tab - Switch tab
  ↑/k, ↓/j      - Navigate lists
  Enter         - Submit / Select
  Esc           - Back / Cancel
  ?             - Toggle help
  Ctrl+C        - Quit`,
	RunE: runTUI,
}

// isTerminal reports whether stdout is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return errors.New("tui requires an interactive terminal")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Upload:   uploadService,
		Analysis: analysisService,
		Workflow: workflowService,
		History:  historyService,
		Search:   searchService,
		Chat:     chatService,
		Stats:    statsService,
		Document: documentService,
		Files:    fileSource,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
