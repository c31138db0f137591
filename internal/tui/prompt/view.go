package prompt

import (
	"fmt"
	"strings"

	"github.com/cizzoo/Ulauncher/internal/tui"
)

// View renders the prompt.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sep := tui.DimHelpStyle.Render(" • ")

	var footer string
	switch {
	case m.escPending:
		footer = tui.EscWarningStyle.Render("Press ⎋ again to " + m.escAction.String())
	case m.store.IsBrowsing():
		pos := fmt.Sprintf("browsing history (%d/%d)", m.store.Len()-m.store.Index(), m.store.Len())
		footer = tui.HistoryModeStyle.Render(pos) +
			sep + tui.DimHelpStyle.Render("↑↓: navigate • Enter: run • ⎋⎋: clear")
	case m.suggest.Visible():
		footer = strings.Join([]string{
			tui.KeyHintStyle.Render("Tab") + tui.DimHelpStyle.Render(": complete"),
			tui.KeyHintStyle.Render("↑↓") + tui.DimHelpStyle.Render(": choose"),
			tui.KeyHintStyle.Render("⎋") + tui.DimHelpStyle.Render(": dismiss"),
		}, sep)
	default:
		footer = strings.Join([]string{
			tui.KeyHintStyle.Render("Enter") + tui.DimHelpStyle.Render(": run"),
			tui.KeyHintStyle.Render("↑↓") + tui.DimHelpStyle.Render(": history"),
			tui.KeyHintStyle.Render("⎋⎋") + tui.DimHelpStyle.Render(": exit"),
		}, sep)
	}

	box := tui.InputBoxStyle
	if m.escPending {
		box = tui.EscWarningBoxStyle
	} else if m.store.IsBrowsing() {
		box = tui.HistoryBorderStyle
	}
	inputBox := box.Width(max(m.width-4, 10)).Render(tui.PromptStyle.Render("› ") + m.input.View())

	if m.suggest.Visible() {
		return fmt.Sprintf("%s\n%s\n%s\n", inputBox, m.renderSuggestions(), footer)
	}
	return fmt.Sprintf("%s\n%s\n", inputBox, footer)
}

// renderSuggestions renders the suggestion dropdown.
func (m Model) renderSuggestions() string {
	var items []string
	for i, query := range m.suggest.Filtered() {
		if i == m.suggest.Index() {
			items = append(items, tui.SuggestionSelectedStyle.Render("> "+query))
		} else {
			items = append(items, tui.SuggestionItemStyle.Render(query))
		}
	}
	return tui.SuggestionBoxStyle.Render(strings.Join(items, "\n"))
}
