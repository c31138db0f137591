// Package prompt implements the interactive query input with history recall.
package prompt

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cizzoo/Ulauncher/internal/config"
	"github.com/cizzoo/Ulauncher/internal/history"
)

// EscTimeoutMsg ends the window for a second ESC press.
type EscTimeoutMsg struct{}

// Model is the Bubble Tea model for the query prompt.
type Model struct {
	input textinput.Model
	store *history.Store

	suggest *SuggestState

	// ESC double-press state
	escPressedAt time.Time
	escPending   bool
	escAction    EscAction

	width     int
	submitted string
	quitting  bool
}

// Config holds configuration for creating a new prompt model.
type Config struct {
	Store       *history.Store
	Placeholder string
	Initial     string
}

// New creates a new prompt Model.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = "Type a query..."
	}
	ti.Prompt = ""
	ti.CharLimit = 0 // No limit
	ti.Width = config.DefaultTerminalWidth - 8
	ti.Focus()
	if cfg.Initial != "" {
		ti.SetValue(cfg.Initial)
		ti.CursorEnd()
	}

	return Model{
		input:   ti,
		store:   cfg.Store,
		suggest: NewSuggestState(config.SuggestionLimit),
		width:   config.DefaultTerminalWidth,
	}
}

// Init initializes the prompt model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// Submitted returns the query submitted with Enter, or "" if the prompt
// was left without submitting.
func (m Model) Submitted() string {
	return m.submitted
}

// Run shows the prompt and returns the submitted query. The UI is drawn on
// stderr so stdout carries only the result.
func Run(store *history.Store, initial string) (string, error) {
	m := New(Config{Store: store, Initial: initial})

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	if fm, ok := finalModel.(Model); ok {
		return fm.Submitted(), nil
	}
	return "", nil
}
