// Package tui provides terminal UI components.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Prompt styles
var (
	PromptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	// Suggestion dropdown styles
	SuggestionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1)
	SuggestionItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	SuggestionSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	EscWarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	EscWarningBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FF6B6B")).
				Padding(0, 1)

	// Shown while the cursor is away from the live input.
	HistoryModeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A78BFA")).
				Italic(true)

	HistoryBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#A78BFA")).
				Padding(0, 1)

	KeyHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6EE7B7")).
			Bold(true)

	DimHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// Picker styles
var (
	TitleStyle        = lipgloss.NewStyle().MarginLeft(2)
	ItemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	DimItemStyle      = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("241"))
	SelectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	PaginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	HelpListStyle     = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)
