package prompt

import (
	"testing"

	"github.com/cizzoo/Ulauncher/internal/history"
)

func suggestEntries() []history.Entry {
	return []history.Entry{
		{Query: "firefox"},
		{Query: "files"},
		{Query: "fish"},
		{Query: "calc"},
	}
}

func TestSuggestState_Update(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVisible bool
		wantCount   int
	}{
		{name: "empty input", input: "", wantVisible: false, wantCount: 0},
		{name: "common prefix", input: "fi", wantVisible: true, wantCount: 3},
		{name: "narrower prefix", input: "fir", wantVisible: true, wantCount: 1},
		{name: "exact match only", input: "calc", wantVisible: false, wantCount: 0},
		{name: "no match", input: "xyz", wantVisible: false, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSuggestState(5)
			s.Update(tt.input, suggestEntries())

			if s.Visible() != tt.wantVisible {
				t.Errorf("Visible() = %v, want %v", s.Visible(), tt.wantVisible)
			}
			if len(s.Filtered()) != tt.wantCount {
				t.Errorf("len(Filtered()) = %d, want %d", len(s.Filtered()), tt.wantCount)
			}
		})
	}
}

func TestSuggestState_Limit(t *testing.T) {
	s := NewSuggestState(2)
	s.Update("fi", suggestEntries())

	if len(s.Filtered()) != 2 {
		t.Fatalf("len(Filtered()) = %d, want 2", len(s.Filtered()))
	}
	if s.Filtered()[0] != "fish" {
		t.Errorf("Filtered()[0] = %q, want newest match %q", s.Filtered()[0], "fish")
	}
}

func TestSuggestState_Navigation(t *testing.T) {
	s := NewSuggestState(5)
	s.Update("fi", suggestEntries())

	if s.Index() != 0 {
		t.Errorf("Initial Index() = %d, want 0", s.Index())
	}

	s.Down()
	s.Down()
	if s.Index() != 2 {
		t.Errorf("After 2x Down() Index() = %d, want 2", s.Index())
	}

	// Down at bottom should stay at bottom
	s.Down()
	if s.Index() != 2 {
		t.Errorf("Down at bottom Index() = %d, want 2", s.Index())
	}

	if got := s.Select(); got != "firefox" {
		t.Errorf("Select() = %q, want %q", got, "firefox")
	}

	s.Up()
	s.Up()
	s.Up()
	if s.Index() != 0 {
		t.Errorf("Up at top Index() = %d, want 0", s.Index())
	}
}

func TestSuggestState_IndexClamp(t *testing.T) {
	s := NewSuggestState(5)
	s.Update("fi", suggestEntries())
	s.Down()
	s.Down()

	s.Update("fir", suggestEntries())
	if s.Index() != 0 {
		t.Errorf("Index after narrowing = %d, want 0", s.Index())
	}
}

func TestSuggestState_Hide(t *testing.T) {
	s := NewSuggestState(5)
	s.Update("fi", suggestEntries())
	s.Down()

	s.Hide()
	if s.Visible() {
		t.Error("Should not be visible after Hide")
	}
	if s.Index() != 0 {
		t.Errorf("Index after Hide = %d, want 0", s.Index())
	}
}

func TestSuggestState_SelectEmpty(t *testing.T) {
	s := NewSuggestState(5)
	if got := s.Select(); got != "" {
		t.Errorf("Select() on empty = %q, want empty", got)
	}
}
