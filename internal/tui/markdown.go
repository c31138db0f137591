package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cizzoo/Ulauncher/internal/config"
	"github.com/cizzoo/Ulauncher/internal/history"
)

// MarkdownRenderer wraps glamour for rendering markdown to styled terminal output.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdownRenderer creates a new markdown renderer with the specified width.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = config.DefaultTerminalWidth
	}

	// A fixed style avoids terminal background detection.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{
		renderer: renderer,
		width:    width,
	}, nil
}

// Render renders markdown content to styled terminal output.
func (m *MarkdownRenderer) Render(content string) (string, error) {
	return m.renderer.Render(content)
}

// HistoryTable builds a markdown table of entries, newest first.
// Queries longer than config.QueryTruncateLength are shortened.
func HistoryTable(entries []history.Entry) string {
	var sb strings.Builder
	sb.WriteString("| # | Query | Last used |\n")
	sb.WriteString("|---|-------|-----------|\n")
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&sb, "| %d | %s | %s |\n",
			len(entries)-i,
			escapeCell(Truncate(e.Query, config.QueryTruncateLength)),
			e.Time().Format("2006-01-02 15:04"))
	}
	return sb.String()
}

// Truncate shortens s to at most n runes, ending in "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
