package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cizzoo/Ulauncher/internal/history"
	"github.com/cizzoo/Ulauncher/internal/tui"
	"github.com/cizzoo/Ulauncher/internal/tui/picker"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	listPlain bool
	listLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and edit the query history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent queries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeLog, err := openStore(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		entries := store.Entries()
		if listLimit > 0 && len(entries) > listLimit {
			entries = entries[len(entries)-listLimit:]
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No history yet.")
			return nil
		}

		out := cmd.OutOrStdout()
		if !listPlain {
			if rendered, ok := renderTable(out, entries); ok {
				fmt.Fprint(out, rendered)
				return nil
			}
		}
		for i := len(entries) - 1; i >= 0; i-- {
			fmt.Fprintln(out, entries[i].Query)
		}
		return nil
	},
}

var historyAddCmd = &cobra.Command{
	Use:   "add <query>...",
	Short: "Record a query as if it had been submitted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := strings.Join(args, " ")
		if strings.TrimSpace(q) == "" {
			warnf(cmd, "ignoring blank query")
			return nil
		}

		store, closeLog, err := openStore(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		store.Add(q)
		return nil
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <pattern>...",
	Short: "Fuzzy search past queries, best match first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeLog, err := openStore(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		matches := history.Search(store.Entries(), strings.Join(args, " "))
		if listLimit > 0 && len(matches) > listLimit {
			matches = matches[:listLimit]
		}
		for _, e := range matches {
			fmt.Fprintln(cmd.OutOrStdout(), e.Query)
		}
		return nil
	},
}

var historyPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a past query from a list and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeLog, err := openStore(cmd, true)
		if err != nil {
			return err
		}
		defer closeLog()

		if store.Len() == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No history yet.")
			return nil
		}

		selected, err := picker.Run(picker.NewHistoryPicker(store.Entries(), 0, 0))
		if err != nil {
			return fmt.Errorf("picker failed: %w", err)
		}
		entry := picker.GetEntry(selected)
		if entry == nil {
			return nil
		}

		// Picking a query counts as submitting it again.
		store.Add(entry.Query)
		fmt.Fprintln(cmd.OutOrStdout(), entry.Query)
		return nil
	},
}

var historyPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the history file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeLog, err := openStore(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		fmt.Fprintln(cmd.OutOrStdout(), store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyAddCmd, historySearchCmd, historyPickCmd, historyPathCmd)

	historyListCmd.Flags().BoolVar(&listPlain, "plain", false, "Print one query per line without formatting")
	historyListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most N queries (0 = all)")
	historySearchCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most N matches (0 = all)")
}

// renderTable renders entries as a styled table when out is a terminal.
func renderTable(out io.Writer, entries []history.Entry) (string, bool) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", false
	}
	fd := int(f.Fd())

	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 0
	}
	r, err := tui.NewMarkdownRenderer(width)
	if err != nil {
		return "", false
	}
	rendered, err := r.Render(tui.HistoryTable(entries))
	if err != nil {
		return "", false
	}
	return rendered, true
}
