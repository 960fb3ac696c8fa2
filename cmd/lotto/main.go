// Package main is the entry point for the Lotto Dashboard TUI application.
// Without a sub-command it runs the Bubble Tea program; the sub-commands run
// the same services headless.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/draws"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/recommend"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/statistics"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lotto",
		Short: "6/45 lottery analysis dashboard",
		Long: `Lotto Dashboard TUI - statistics and number picks for a 6/45 lottery

Run without a command to open the dashboard. Configuration is read from
.env files and the environment (LOTTO_HISTORY_PATH, DATABASE_PATH,
DEFAULT_MODEL_TYPE, CLUSTER_COUNT, ...).

Keyboard Shortcuts:
  1-4             Switch between tabs (Recommend, Statistics, Draws, Info)
  Tab/Shift+Tab   Navigate between tabs
  R, Ctrl+R       Re-import the history file
  ?               Toggle help
  q, Ctrl+C       Quit`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI()
		},
	}

	root.AddCommand(
		newGenerateCmd(),
		newStatsCmd(),
		newCheckCmd(),
		newImportCmd(),
		newExportCmd(),
		newAddDrawCmd(),
		newVersionCmd(),
	)
	return root
}

// openManager loads configuration and starts the services. Headless runs
// neither watch the history file nor raise desktop notifications.
func openManager(headless bool, logOut io.Writer) (*services.Manager, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if headless {
		cfg.WatchHistory = false
		cfg.NotifyNewDraw = false
	}

	closeLog, err := setupLogging(cfg, logOut)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		closeLog()
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	cleanup := func() {
		if closeErr := mgr.Close(); closeErr != nil {
			logger.Warn("error closing services", "error", closeErr)
		}
		closeLog()
	}
	return mgr, cleanup, nil
}

// setupLogging points the logger at LOG_PATH when set, otherwise at out.
func setupLogging(cfg *config.Config, out io.Writer) (func(), error) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogPath == "" {
		logger.Init(logger.Options{Writer: out, Level: level})
		return func() {}, nil
	}

	f, err := logger.OpenFile(cfg.LogPath)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{Writer: f, Level: level, NoColor: true})
	return func() { _ = f.Close() }, nil
}

// runTUI contains the interactive application logic.
func runTUI() error {
	// The TUI owns the terminal: without LOG_PATH logs are dropped.
	svcManager, cleanup, err := openManager(false, io.Discard)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := svcManager.Config()
	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		recommend.New(state, cfg),
		statistics.New(state),
		draws.New(state, cfg),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	svcManager.SetFitProgress(func(done, total int) {
		p.Send(app.FitProgressMsg{Done: done, Total: total})
	})

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	logger.Info("starting dashboard", "history", cfg.HistoryPath)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
