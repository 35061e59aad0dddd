// Package delegate provides a list.ItemDelegate built from a render func.
package delegate

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one list item. focused is true for the item under
// the list cursor.
type RenderFunc func(w io.Writer, item list.Item, focused bool)

// Base is a fixed-height delegate without custom update logic.
type Base struct {
	height   int
	spacing  int
	renderFn RenderFunc
}

// Option customizes a Base.
type Option func(*Base)

// WithHeight sets the row height of each item.
func WithHeight(h int) Option {
	return func(b *Base) {
		if h > 0 {
			b.height = h
		}
	}
}

// WithSpacing sets the blank lines between items.
func WithSpacing(n int) Option {
	return func(b *Base) { b.spacing = n }
}

// New creates a delegate with height 1 and no spacing.
func New(renderFn RenderFunc, opts ...Option) Base {
	b := Base{height: 1, renderFn: renderFn}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Height implements list.ItemDelegate
func (d Base) Height() int { return d.height }

// Spacing implements list.ItemDelegate
func (d Base) Spacing() int { return d.spacing }

// Update implements list.ItemDelegate
func (d Base) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate
func (d Base) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.renderFn != nil {
		d.renderFn(w, item, index == m.Index())
	}
}
