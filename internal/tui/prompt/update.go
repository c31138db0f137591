package prompt

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cizzoo/Ulauncher/internal/config"
)

// Update handles messages for the prompt model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.suggest.Visible() {
			if next, cmd, handled := m.updateSuggest(msg); handled {
				return next, cmd
			}
		}

		if msg.Type != tea.KeyEsc {
			m.escPending = false
		}

		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEsc:
			now := time.Now()
			if m.escPending && now.Sub(m.escPressedAt) < config.EscDoublePressTimeout {
				m.escPending = false
				if m.escAction == EscActionExit {
					m.quitting = true
					return m, tea.Quit
				}
				m.setInput("")
				m.store.ResetIndex()
				return m, nil
			}

			m.escPressedAt = now
			m.escPending = true
			m.escAction = EscActionClear
			if strings.TrimSpace(m.input.Value()) == "" {
				m.escAction = EscActionExit
			}
			return m, tea.Tick(config.EscDoublePressTimeout, func(time.Time) tea.Msg {
				return EscTimeoutMsg{}
			})

		case tea.KeyCtrlU:
			// Unix standard: clear line
			m.setInput("")
			m.store.ResetIndex()
			m.suggest.Hide()
			return m, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if query, ok := m.store.Prev(m.input.Value()); ok {
				m.setInput(query)
			}
			m.suggest.Hide()
			return m, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if query, ok := m.store.Next(); ok {
				m.setInput(query)
			}
			m.suggest.Hide()
			return m, nil

		case tea.KeyEnter:
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			m.store.Add(query)
			m.submitted = query
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Account for border and padding around the input
		m.input.Width = max(msg.Width-8, 1)
		return m, nil

	case EscTimeoutMsg:
		m.escPending = false
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refreshSuggestions()
	}
	return m, cmd
}

// updateSuggest handles the keys owned by the suggestion dropdown.
func (m Model) updateSuggest(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		m.suggest.Hide()
		return m, nil, true

	case tea.KeyUp:
		m.suggest.Up()
		return m, nil, true

	case tea.KeyDown:
		m.suggest.Down()
		return m, nil, true

	case tea.KeyTab:
		if selected := m.suggest.Select(); selected != "" {
			m.setInput(selected)
		}
		m.suggest.Hide()
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

// refreshSuggestions shows completions for typed input at the present only.
func (m *Model) refreshSuggestions() {
	if m.store.IsBrowsing() {
		m.suggest.Hide()
		return
	}
	m.suggest.Update(m.input.Value(), m.store.Entries())
}
