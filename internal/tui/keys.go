package tui

import "github.com/charmbracelet/bubbles/key"

// EditorKeys are the key bindings of the editing session.
type EditorKeys struct {
	Up         key.Binding
	Down       key.Binding
	Click      key.Binding
	Toggle     key.Binding
	Open       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ZoomReset  key.Binding
	Focus      key.Binding
	Menu       key.Binding
	Delete     key.Binding
	Cut        key.Binding
	Paste      key.Binding
	PasteAbove key.Binding
	PasteBelow key.Binding
	Rename     key.Binding
	Metadata   key.Binding
	Apply      key.Binding
	Quit       key.Binding
}

// NewEditorKeys creates the default editor key map.
func NewEditorKeys() EditorKeys {
	return EditorKeys{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Click:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "go to page")),
		MoveUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ZoomReset:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Menu:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "actions")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Cut:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut")),
		Paste:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "paste")),
		PasteAbove: key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "paste before")),
		PasteBelow: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste after")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Metadata:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "metadata")),
		Apply:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "apply order")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k EditorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Toggle, k.MoveUp, k.MoveDown, k.Menu, k.Apply, k.Quit}
}

// FullHelp returns every binding, grouped for the help view.
func (k EditorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Click, k.Toggle, k.Open, k.Focus},
		{k.MoveUp, k.MoveDown, k.Apply, k.ZoomIn, k.ZoomOut, k.ZoomReset},
		{k.Menu, k.Delete, k.Cut, k.Paste, k.PasteAbove, k.PasteBelow, k.Rename, k.Metadata},
		{k.Quit},
	}
}

// ModalKeys are the bindings of confirm and input modals.
type ModalKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewModalKeys creates the modal key bindings.
func NewModalKeys() ModalKeys {
	return ModalKeys{
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y/enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc", "q"), key.WithHelp("n/esc", "cancel")),
	}
}
