// Package logging sets up the structured logger shared by the CLI and TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New returns a logger writing to w at the given level.
// An unknown level falls back to warn.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "ulauncher",
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}).With("session", uuid.NewString())
}

// Open returns a logger appending to the file at path. The TUI logs here so
// nothing is drawn over the alt screen.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return New(f, level), f, nil
}
