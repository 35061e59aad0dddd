package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/blackwell-systems/pagectl/internal/tui/delegate"
	"github.com/blackwell-systems/pagectl/internal/tui/multiselect"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

// thumbItem is one row of the thumbnail panel.
type thumbItem struct {
	page document.Page
}

func (t thumbItem) Key() string { return strconv.Itoa(t.page.Num) }

// FilterValue implements list.Item
func (t thumbItem) FilterValue() string { return t.page.Text }

// ThumbnailPanel lists the pages in display order with their selection
// checkbox, the highlighted page and a marker for staged moves.
type ThumbnailPanel struct {
	ms          multiselect.Model
	highlighted int
	width       int
}

// NewThumbnailPanel creates an empty thumbnail panel.
func NewThumbnailPanel(title string) *ThumbnailPanel {
	p := &ThumbnailPanel{}
	d := delegate.New(p.render)
	l := list.New(nil, d, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = StyleHeader
	p.ms = multiselect.New(l)
	return p
}

func (p *ThumbnailPanel) render(w io.Writer, item list.Item, focused bool) {
	t, ok := item.(thumbItem)
	if !ok {
		return
	}
	cursor := "  "
	if focused {
		cursor = "› "
	}
	label := fmt.Sprintf("%sPage %d", p.ms.Checkbox(t.Key()), t.page.Num)
	if t.page.Reordered() {
		label += StylePending.Render(fmt.Sprintf(" → %d", t.page.Order))
	}
	if first, _, _ := strings.Cut(strings.TrimSpace(t.page.Text), "\n"); first != "" {
		label += " " + StyleHelp.Render(first)
	}
	if p.width > 0 {
		label = xansi.Truncate(label, p.width-len(cursor), "…")
	}

	switch {
	case t.page.Num == p.highlighted:
		_, _ = fmt.Fprint(w, StyleHighlight.Render(cursor+label))
	case p.ms.IsSelected(t.Key()):
		_, _ = fmt.Fprint(w, StyleSelected.Render(cursor+label))
	default:
		_, _ = fmt.Fprint(w, cursor+StyleNormal.Render(label))
	}
}

// Load implements actions.View. The cursor stays on the same page num
// when it is still present.
func (p *ThumbnailPanel) Load(pages []*document.Page) {
	cur := p.CurrentNum()
	items := make([]multiselect.Keyed, 0, len(pages))
	for _, pg := range pages {
		items = append(items, thumbItem{page: *pg})
	}
	p.ms.SetItems(items)
	if cur != 0 {
		p.Focus(cur)
	}
}

// DeleteSelected implements actions.View.
func (p *ThumbnailPanel) DeleteSelected(sel *document.Selection) {
	var keep []multiselect.Keyed
	for _, it := range p.ms.List.Items() {
		t, ok := it.(thumbItem)
		if !ok || sel.Has(t.page.Num) {
			continue
		}
		keep = append(keep, t)
	}
	p.ms.SetItems(keep)
}

// ClearSelections implements actions.View.
func (p *ThumbnailPanel) ClearSelections() {
	p.ms.ClearSelection()
}

// RemoveHighlights implements session.ThumbnailView.
func (p *ThumbnailPanel) RemoveHighlights() {
	p.highlighted = 0
}

// MarkHighlight implements session.ThumbnailView.
func (p *ThumbnailPanel) MarkHighlight(num int) {
	p.highlighted = num
}

// Highlighted returns the highlighted page num, or 0.
func (p *ThumbnailPanel) Highlighted() int { return p.highlighted }

// SyncSelection mirrors sel into the checkboxes.
func (p *ThumbnailPanel) SyncSelection(sel *document.Selection) {
	keys := make([]string, 0, sel.Len())
	for _, n := range sel.Nums() {
		keys = append(keys, strconv.Itoa(n))
	}
	p.ms.Replace(keys)
}

// Checked returns the nums of the checked rows in display order.
func (p *ThumbnailPanel) Checked() []int {
	var out []int
	for _, it := range p.ms.List.Items() {
		if t, ok := it.(thumbItem); ok && p.ms.IsSelected(t.Key()) {
			out = append(out, t.page.Num)
		}
	}
	return out
}

// Nums returns the listed page nums in display order.
func (p *ThumbnailPanel) Nums() []int {
	items := p.ms.List.Items()
	out := make([]int, 0, len(items))
	for _, it := range items {
		if t, ok := it.(thumbItem); ok {
			out = append(out, t.page.Num)
		}
	}
	return out
}

// CurrentNum returns the page num under the cursor, or 0.
func (p *ThumbnailPanel) CurrentNum() int {
	it, ok := p.ms.Current()
	if !ok {
		return 0
	}
	return it.(thumbItem).page.Num
}

// Focus moves the cursor to page num.
func (p *ThumbnailPanel) Focus(num int) bool {
	for i, it := range p.ms.List.Items() {
		if t, ok := it.(thumbItem); ok && t.page.Num == num {
			p.ms.List.Select(i)
			return true
		}
	}
	return false
}

// SetTitle sets the panel title.
func (p *ThumbnailPanel) SetTitle(title string) {
	p.ms.SetTitle(title)
}

// SetSize resizes the panel.
func (p *ThumbnailPanel) SetSize(w, h int) {
	p.width = w
	p.ms.List.SetSize(w, h)
}

// Update forwards cursor movement to the list.
func (p *ThumbnailPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.ms, cmd = p.ms.Update(msg)
	return cmd
}

// View renders the panel.
func (p *ThumbnailPanel) View() string {
	return p.ms.View()
}
