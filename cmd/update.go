package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cizzoo/Ulauncher/internal/update"
	"github.com/spf13/cobra"
)

var (
	checkOnly     bool
	forceUpdate   bool
	updateTimeout time.Duration
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update ulauncher to the latest release",
	Long: `Check for and install updates from GitHub Releases.

Examples:
  ulauncher update              # Check and install update interactively
  ulauncher update --check      # Only check for updates
  ulauncher update --force      # Update without confirmation`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Only check for updates, don't install")
	updateCmd.Flags().BoolVarP(&forceUpdate, "force", "f", false, "Update without confirmation")
	updateCmd.Flags().DurationVar(&updateTimeout, "timeout", 30*time.Second, "Timeout for network operations")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()

	fmt.Fprintf(out, "Current version: %s\n", version)

	release, err := update.CheckForUpdate(ctx, version)
	if err != nil {
		if errors.Is(err, update.ErrDevVersion) {
			fmt.Fprintln(out, "\nThis is a development build; self-update only works for releases.")
			fmt.Fprintf(out, "Install a release from: %s\n", update.ReleasesURL)
			return nil
		}
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if release == nil {
		fmt.Fprintln(out, "You are running the latest version.")
		return nil
	}

	fmt.Fprintf(out, "Latest version:  %s\n", release.Version)
	if release.Notes != "" {
		fmt.Fprintln(out, "\nRelease notes:")
		for _, line := range strings.Split(release.Notes, "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}

	if checkOnly {
		fmt.Fprintln(out, "\nRun 'ulauncher update' to install the update.")
		return nil
	}

	if !forceUpdate {
		fmt.Fprint(out, "\nDo you want to update? [y/N]: ")
		response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	fmt.Fprintf(out, "\nDownloading %s...\n", release.AssetName)

	// The check deadline should not eat into the download.
	cancel()
	downloadCtx, downloadCancel := context.WithTimeout(cmd.Context(), updateTimeout*2)
	defer downloadCancel()

	if err := update.Apply(downloadCtx, release); err != nil {
		// go-selfupdate has no typed errors for these cases.
		msg := err.Error()
		switch {
		case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access is denied"):
			warnf(cmd, "permission denied, try: %s", update.PermissionHint())
		case strings.Contains(msg, "checksum"):
			warnf(cmd, "checksum verification failed, download manually from %s", update.ReleasesURL)
		}
		return err
	}

	fmt.Fprintf(out, "\nSuccessfully updated to v%s!\n", release.Version)
	return nil
}
