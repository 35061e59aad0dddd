// Package multiselect adds checkbox state to a bubbles list.
package multiselect

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Keyed is a list item with a stable selection key.
type Keyed interface {
	list.Item
	Key() string
}

// Model wraps a bubbles list.Model with selection state kept by item key,
// so selections survive SetItems.
type Model struct {
	List          list.Model
	selected      map[string]bool
	showCount     bool
	originalTitle string
}

// New creates a multi-select model wrapping l.
func New(l list.Model) Model {
	return Model{
		List:          l,
		selected:      make(map[string]bool),
		showCount:     true,
		originalTitle: l.Title,
	}
}

// SetShowCount controls whether the selection count appears in the title.
func (m *Model) SetShowCount(show bool) {
	m.showCount = show
	m.updateTitle()
}

// SetTitle updates the base title (without count).
func (m *Model) SetTitle(title string) {
	m.originalTitle = title
	m.updateTitle()
}

// SetItems replaces the list items and drops selections whose key is gone.
func (m *Model) SetItems(items []Keyed) tea.Cmd {
	present := make(map[string]bool, len(items))
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
		present[it.Key()] = true
	}
	for k := range m.selected {
		if !present[k] {
			delete(m.selected, k)
		}
	}
	m.updateTitle()
	return m.List.SetItems(li)
}

// Current returns the item under the cursor.
func (m *Model) Current() (Keyed, bool) {
	it, ok := m.List.SelectedItem().(Keyed)
	return it, ok
}

// Toggle flips the selection of the item under the cursor.
func (m *Model) Toggle() bool {
	it, ok := m.Current()
	if !ok {
		return false
	}
	m.Set(it.Key(), !m.selected[it.Key()])
	return true
}

// Set marks key as selected or not.
func (m *Model) Set(key string, on bool) {
	if on {
		m.selected[key] = true
	} else {
		delete(m.selected, key)
	}
	m.updateTitle()
}

// Replace makes keys the whole selection.
func (m *Model) Replace(keys []string) {
	m.selected = make(map[string]bool, len(keys))
	for _, k := range keys {
		m.selected[k] = true
	}
	m.updateTitle()
}

// ClearSelection removes all selections.
func (m *Model) ClearSelection() {
	m.Replace(nil)
}

// IsSelected reports whether key is selected.
func (m *Model) IsSelected(key string) bool {
	return m.selected[key]
}

// SelectedKeys returns the selected keys, sorted.
func (m *Model) SelectedKeys() []string {
	keys := make([]string, 0, len(m.selected))
	for k := range m.selected {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SelectedCount returns the number of selected items.
func (m *Model) SelectedCount() int {
	return len(m.selected)
}

// Checkbox returns the checkbox prefix for key.
func (m *Model) Checkbox(key string) string {
	if m.selected[key] {
		return "[✓] "
	}
	return "[ ] "
}

func (m *Model) updateTitle() {
	if m.showCount {
		m.List.Title = fmt.Sprintf("%s (%d selected)", m.originalTitle, m.SelectedCount())
	} else {
		m.List.Title = m.originalTitle
	}
}

// Update forwards msg to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return m.List.View()
}
