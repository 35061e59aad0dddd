package tui

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogRename
	dialogMetadata
)

// Dialogs implements actions.Dialogs for the editor. Opening a dialog only
// records it; the editor renders it and routes keys to it on the next
// update.
type Dialogs struct {
	kind  dialogKind
	node  document.Node
	page  document.Page
	input textinput.Model
}

// NewDialogs creates the dialog host.
func NewDialogs() *Dialogs {
	return &Dialogs{}
}

// Rename implements actions.Dialogs.
func (d *Dialogs) Rename(node document.Node) {
	ti := textinput.New()
	ti.Placeholder = "document title"
	ti.SetValue(node.Title)
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()
	d.kind = dialogRename
	d.node = node
	d.input = ti
}

// Metadata implements actions.Dialogs.
func (d *Dialogs) Metadata(page *document.Page) {
	d.kind = dialogMetadata
	d.page = *page
}

// Open reports whether a dialog is showing.
func (d *Dialogs) Open() bool { return d.kind != dialogNone }

// Close hides the current dialog.
func (d *Dialogs) Close() {
	d.kind = dialogNone
	d.input.Blur()
}

// Value returns the rename input.
func (d *Dialogs) Value() string {
	return strings.TrimSpace(d.input.Value())
}

func (d *Dialogs) view() string {
	var b strings.Builder
	switch d.kind {
	case dialogRename:
		b.WriteString(StyleHeader.Render("Rename document"))
		b.WriteString("\n\n")
		b.WriteString(d.input.View())
		b.WriteString("\n\n")
		b.WriteString(RenderFooterBar([]ShortcutEntry{
			{Key: "enter", Label: "enter save"},
			{Key: "esc", Label: "esc cancel"},
		}, ""))
	case dialogMetadata:
		b.WriteString(StyleHeader.Render(fmt.Sprintf("Page %d", d.page.Num)))
		b.WriteString("\n\n")
		rows := [][2]string{
			{"Document", d.page.DocID.String()},
			{"Page ID", d.page.ID},
			{"Number", fmt.Sprint(d.page.Num)},
			{"Order", fmt.Sprint(d.page.Order)},
			{"Lines", fmt.Sprint(strings.Count(d.page.Text, "\n") + 1)},
		}
		for _, r := range rows {
			b.WriteString(StyleHelp.Render(fmt.Sprintf("  %-9s", r[0])))
			b.WriteString(StyleNormal.Render(r[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(RenderFooterBar([]ShortcutEntry{{Key: "esc", Label: "esc close"}}, ""))
	}
	return modal(b.String())
}

func modal(body string) string {
	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return lipgloss.NewStyle().Padding(1, 2).Render(StyleBorder.Render(innerPadding.Render(body)))
}
