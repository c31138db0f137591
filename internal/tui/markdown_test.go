package tui

import (
	"strings"
	"testing"

	"github.com/cizzoo/Ulauncher/internal/history"
)

func TestHistoryTable(t *testing.T) {
	entries := []history.Entry{
		{Query: "firefox", Timestamp: 1},
		{Query: "grep a|b", Timestamp: 2},
	}

	table := HistoryTable(entries)
	lines := strings.Split(strings.TrimSpace(table), "\n")

	if len(lines) != 4 {
		t.Fatalf("HistoryTable() has %d lines, want 4:\n%s", len(lines), table)
	}
	if !strings.HasPrefix(lines[2], `| 1 | grep a\|b |`) {
		t.Errorf("newest row = %q, want escaped newest query first", lines[2])
	}
	if !strings.HasPrefix(lines[3], "| 2 | firefox |") {
		t.Errorf("second row = %q, want oldest query last", lines[3])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"ünïcödé strïng", 8, "ünïcö..."},
		{"tiny", 2, "tiny"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r, err := NewMarkdownRenderer(0)
	if err != nil {
		t.Fatalf("NewMarkdownRenderer() error = %v", err)
	}
	if r.width <= 0 {
		t.Errorf("width = %d, want default width", r.width)
	}

	out, err := r.Render(HistoryTable([]history.Entry{{Query: "firefox", Timestamp: 1}}))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "firefox") {
		t.Errorf("Render() = %q, should contain the query", out)
	}
}
