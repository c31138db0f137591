package picker

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/cizzoo/Ulauncher/internal/history"
)

// EntryItem wraps a history entry for display in a picker.
type EntryItem struct {
	Entry history.Entry
}

func (i EntryItem) Title() string {
	return i.Entry.Query
}

func (i EntryItem) Description() string {
	return i.Entry.Time().Format("Jan 2, 15:04")
}

func (i EntryItem) FilterValue() string {
	return i.Entry.Query
}

// NewHistoryPicker creates a picker over entries, newest first.
// entries are expected oldest first, as returned by history.Store.Entries.
func NewHistoryPicker(entries []history.Entry, width, height int) Model {
	items := make([]list.Item, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		items = append(items, EntryItem{Entry: entries[i]})
	}

	return New(Config{
		Title:  "Recent queries",
		Items:  items,
		Width:  width,
		Height: height,
	})
}

// GetEntry extracts the history entry from a selected item.
func GetEntry(item list.Item) *history.Entry {
	if ei, ok := item.(EntryItem); ok {
		return &ei.Entry
	}
	return nil
}
