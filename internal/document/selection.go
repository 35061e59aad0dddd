package document

import (
	"iter"
	"slices"
)

// Selection is the ordered set of pages the user is acting on.
// Members are page references and are unique by num.
type Selection struct {
	pages []*Page
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Add appends p unless a page with the same num is already selected.
func (s *Selection) Add(p *Page) {
	if p == nil || s.Has(p.Num) {
		return
	}
	s.pages = append(s.pages, p)
}

// Remove drops the page with p's num from the selection.
func (s *Selection) Remove(p *Page) {
	if p == nil {
		return
	}
	s.pages = slices.DeleteFunc(s.pages, func(q *Page) bool { return q.Num == p.Num })
}

// Toggle adds p if absent and removes it otherwise.
func (s *Selection) Toggle(p *Page) {
	if p == nil {
		return
	}
	if s.Has(p.Num) {
		s.Remove(p)
		return
	}
	s.Add(p)
}

// Replace makes p the only selected page.
func (s *Selection) Replace(p *Page) {
	s.Clear()
	s.Add(p)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.pages = nil
}

// Has reports whether a page with the given num is selected.
func (s *Selection) Has(num int) bool {
	return slices.ContainsFunc(s.pages, func(p *Page) bool { return p.Num == num })
}

// All iterates the selected pages in selection order. The sequence can be
// ranged over any number of times.
func (s *Selection) All() iter.Seq[*Page] {
	return func(yield func(*Page) bool) {
		for _, p := range s.pages {
			if !yield(p) {
				return
			}
		}
	}
}

// First returns the first selected page, or nil.
func (s *Selection) First() *Page {
	if len(s.pages) == 0 {
		return nil
	}
	return s.pages[0]
}

// Len returns the number of selected pages.
func (s *Selection) Len() int {
	return len(s.pages)
}

// Nums returns the nums of the selected pages in selection order.
func (s *Selection) Nums() []int {
	nums := make([]int, 0, len(s.pages))
	for _, p := range s.pages {
		nums = append(nums, p.Num)
	}
	return nums
}

// AnyReordered reports whether any selected page has a pending order change.
func (s *Selection) AnyReordered() bool {
	return slices.ContainsFunc(s.pages, (*Page).Reordered)
}

// Prune drops members that are no longer part of doc.
func (s *Selection) Prune(doc *Document) {
	s.pages = slices.DeleteFunc(s.pages, func(p *Page) bool { return !doc.Contains(p) })
}
