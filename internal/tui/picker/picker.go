// Package picker provides the list picker used to choose a past query.
package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cizzoo/Ulauncher/internal/tui"
)

// Item is the interface for items that can be displayed in a picker.
type Item interface {
	list.Item
	Title() string
	Description() string
}

// ItemDelegate renders items in the picker list.
type ItemDelegate struct{}

func (d ItemDelegate) Height() int                             { return 2 }
func (d ItemDelegate) Spacing() int                            { return 1 }
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(Item)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = tui.SelectedItemStyle.Render("> " + title)
		desc = tui.SelectedItemStyle.Render("  " + desc)
	} else {
		title = tui.ItemStyle.Render(title)
		desc = tui.DimItemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// Model is the Bubble Tea model for a picker.
type Model struct {
	List     list.Model
	Selected list.Item
	Width    int
	Height   int
	Quitting bool
}

// Config holds configuration for creating a new picker.
type Config struct {
	Title  string
	Items  []list.Item
	Width  int
	Height int
}

// New creates a new picker Model.
func New(cfg Config) Model {
	l := list.New(cfg.Items, ItemDelegate{}, cfg.Width, max(cfg.Height-2, 0))
	l.Title = cfg.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = tui.TitleStyle
	l.Styles.PaginationStyle = tui.PaginationStyle
	l.Styles.HelpStyle = tui.HelpListStyle

	return Model{
		List:   l,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Init initializes the picker.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.List.SetWidth(msg.Width)
		m.List.SetHeight(max(msg.Height-2, 0))
		return m, nil

	case tea.KeyMsg:
		// Keys belong to the filter input while the user is typing one.
		if m.IsFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Quitting = true
			return m, tea.Quit

		case "enter":
			m.Selected = m.List.SelectedItem()
			m.Quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	return m.List.View()
}

// IsFiltering returns true if the picker is in filter mode.
func (m Model) IsFiltering() bool {
	return m.List.FilterState() == list.Filtering
}

// Run shows the picker full screen and returns the chosen item,
// or nil if the user quit without choosing.
func Run(m Model) (list.Item, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	if fm, ok := finalModel.(Model); ok {
		return fm.Selected, nil
	}
	return nil, nil
}
