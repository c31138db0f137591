package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/cizzoo/Ulauncher/internal/config"
	"github.com/cizzoo/Ulauncher/internal/history"
	"github.com/cizzoo/Ulauncher/internal/logging"
	"github.com/cizzoo/Ulauncher/internal/tui/prompt"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyFile string
	query       string
)

var rootCmd = &cobra.Command{
	Use:   "ulauncher",
	Short: "Query prompt with persistent history",
	Long: `ulauncher reads a query interactively and prints it to stdout.
Submitted queries are remembered; use the arrow keys to recall them.

Examples:
  ulauncher                          # Interactive prompt
  ulauncher --query "calc "          # Start with text already typed
  ulauncher history list             # Show recent queries
  ulauncher history pick             # Choose a past query from a list`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeLog, err := openStore(cmd, true)
		if err != nil {
			return err
		}
		defer closeLog()

		submitted, err := prompt.Run(store, query)
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		if submitted != "" {
			fmt.Fprintln(cmd.OutOrStdout(), submitted)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&historyFile, "history-file", "", "History file (default: history.json in the config directory)")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Initial prompt text")
}

func Execute() error {
	return rootCmd.Execute()
}

// warnf prints a highlighted warning to the command's stderr.
func warnf(cmd *cobra.Command, format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}

// openStore loads the config and the history store it points at.
// Interactive commands log to the log file so nothing is drawn over the UI;
// the others log to stderr. The returned func closes the log file.
func openStore(cmd *cobra.Command, interactive bool) (*history.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if historyFile != "" {
		cfg.HistoryFile = historyFile
	}

	path, err := config.HistoryPath(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger, closeLog := newLogger(cmd, cfg, interactive)
	logger.Debug("opening history", "path", path)

	store := history.New(path, history.WithLogger(logger))
	return store, closeLog, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config, interactive bool) (*log.Logger, func()) {
	if interactive {
		logPath, err := config.LogPath(cfg)
		if err == nil {
			var logger *log.Logger
			var closer io.Closer
			logger, closer, err = logging.Open(logPath, cfg.LogLevel)
			if err == nil {
				return logger, func() { _ = closer.Close() }
			}
		}
		warnf(cmd, "logging to stderr: %v", err)
	}
	return logging.New(cmd.ErrOrStderr(), cfg.LogLevel), func() {}
}
