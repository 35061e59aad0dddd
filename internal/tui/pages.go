package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

// linesPerZoom is how many text lines one zoom step shows per page.
const linesPerZoom = 2

// PagePanel renders page text in a scrollable viewport. The zoom level
// sets how many lines of each page are shown.
type PagePanel struct {
	vp      viewport.Model
	pages   []*document.Page
	offsets map[int]int
	zoom    int
	terms   *regexp.Regexp
	current int
}

// NewPagePanel creates an empty page panel.
func NewPagePanel() *PagePanel {
	return &PagePanel{
		vp:      viewport.New(0, 0),
		offsets: make(map[int]int),
		zoom:    1,
	}
}

// Load implements actions.View.
func (p *PagePanel) Load(pages []*document.Page) {
	p.pages = append(p.pages[:0], pages...)
	p.render()
}

// DeleteSelected implements actions.View.
func (p *PagePanel) DeleteSelected(sel *document.Selection) {
	kept := p.pages[:0]
	for _, pg := range p.pages {
		if !sel.Has(pg.Num) {
			kept = append(kept, pg)
		}
	}
	p.pages = kept
	if sel.Has(p.current) {
		p.current = 0
	}
	p.render()
}

// ClearSelections implements actions.View. The page panel shows no
// selection.
func (p *PagePanel) ClearSelections() {}

// ScrollTo implements session.PageView.
func (p *PagePanel) ScrollTo(num int) {
	off, ok := p.offsets[num]
	if !ok {
		return
	}
	p.current = num
	p.vp.SetYOffset(off)
}

// SetZoom implements session.PageView.
func (p *PagePanel) SetZoom(zoom int) {
	if zoom < 1 {
		zoom = 1
	}
	p.zoom = zoom
	p.render()
}

// HighlightText implements session.PageView.
func (p *PagePanel) HighlightText(terms []string) {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		p.terms = nil
	} else {
		p.terms = regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
	}
	p.render()
}

// Zoom returns the current zoom level.
func (p *PagePanel) Zoom() int { return p.zoom }

// Current returns the page scrolled to last, or 0.
func (p *PagePanel) Current() int { return p.current }

// Offset returns the first line of page num.
func (p *PagePanel) Offset(num int) (int, bool) {
	off, ok := p.offsets[num]
	return off, ok
}

// Content returns the rendered text of all pages.
func (p *PagePanel) Content() string {
	return strings.Join(p.lines(), "\n")
}

// SetSize resizes the viewport and re-renders.
func (p *PagePanel) SetSize(w, h int) {
	p.vp.Width = w
	p.vp.Height = h
	p.render()
}

func (p *PagePanel) render() {
	p.vp.SetContent(p.Content())
	if p.current != 0 {
		if off, ok := p.offsets[p.current]; ok {
			p.vp.SetYOffset(off)
		}
	}
}

// lines lays out every page and records where each one starts.
func (p *PagePanel) lines() []string {
	var out []string
	clear(p.offsets)
	limit := p.zoom * linesPerZoom
	for _, pg := range p.pages {
		p.offsets[pg.Num] = len(out)
		out = append(out, StyleHeader.Render(fmt.Sprintf("── Page %d ──", pg.Num)))

		text := strings.Split(strings.TrimRight(pg.Text, "\n"), "\n")
		if pg.Text == "" {
			text = []string{StyleHelp.Render("(no text)")}
		}
		for i, line := range text {
			if i == limit {
				out = append(out, StyleHelp.Render(fmt.Sprintf("… %d more lines", len(text)-limit)))
				break
			}
			out = append(out, p.fit(p.mark(line)))
		}
		out = append(out, "")
	}
	return out
}

func (p *PagePanel) mark(line string) string {
	if p.terms == nil {
		return line
	}
	return p.terms.ReplaceAllStringFunc(line, func(s string) string {
		return StyleMatch.Render(s)
	})
}

func (p *PagePanel) fit(line string) string {
	if p.vp.Width <= 0 {
		return line
	}
	return xansi.Truncate(line, p.vp.Width, "…")
}

// Update forwards scrolling to the viewport.
func (p *PagePanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// View renders the panel.
func (p *PagePanel) View() string {
	return p.vp.View()
}
