package prompt

import "github.com/cizzoo/Ulauncher/internal/history"

// SuggestState manages the dropdown of past queries completing the input.
type SuggestState struct {
	// visible indicates whether the dropdown is currently showing
	visible bool

	// index is the currently selected item index
	index int

	// filtered is the list of matching past queries, newest first
	filtered []string

	limit int
}

// NewSuggestState creates a new SuggestState showing at most limit items.
func NewSuggestState(limit int) *SuggestState {
	return &SuggestState{limit: limit}
}

// Update recomputes the suggestions for input from entries.
func (s *SuggestState) Update(input string, entries []history.Entry) {
	s.filtered = history.Suggest(entries, input, s.limit)
	s.visible = len(s.filtered) > 0

	// Clamp index to valid range
	if s.index >= len(s.filtered) {
		s.index = max(0, len(s.filtered)-1)
	}
}

// Visible returns whether the dropdown is currently showing.
func (s *SuggestState) Visible() bool {
	return s.visible
}

// Hide hides the dropdown.
func (s *SuggestState) Hide() {
	s.visible = false
	s.index = 0
}

// Up moves selection up in the dropdown.
func (s *SuggestState) Up() {
	if s.index > 0 {
		s.index--
	}
}

// Down moves selection down in the dropdown.
func (s *SuggestState) Down() {
	if s.index < len(s.filtered)-1 {
		s.index++
	}
}

// Select returns the currently selected query.
// Returns empty string if no valid selection.
func (s *SuggestState) Select() string {
	if s.index < len(s.filtered) {
		return s.filtered[s.index]
	}
	return ""
}

// Index returns the current selection index.
func (s *SuggestState) Index() int {
	return s.index
}

// Filtered returns the matching queries.
func (s *SuggestState) Filtered() []string {
	return s.filtered
}
