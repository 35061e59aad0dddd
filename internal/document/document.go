package document

import (
	"iter"
	"slices"
)

// Document is the live page set of one document, kept in display order.
// It also acts as the reorder tracker: pending state is derived from the
// pages on every call and never stored.
type Document struct {
	node     Node
	pages    []*Page
	applying bool
}

// New creates a document from the given pages. Pages are adopted by
// reference and sorted by their staged order.
func New(node Node, pages []*Page) *Document {
	d := &Document{node: node}
	d.Replace(pages)
	return d
}

// Node returns the document's node identity.
func (d *Document) Node() Node {
	return d.node
}

// ID returns the document ID.
func (d *Document) ID() ID {
	return d.node.ID
}

// Rename updates the node title.
func (d *Document) Rename(title string) {
	d.node.Title = title
}

// Len returns the number of pages.
func (d *Document) Len() int {
	return len(d.pages)
}

// Pages returns the pages in display order. The slice is a copy; the pages
// are not.
func (d *Document) Pages() []*Page {
	return slices.Clone(d.pages)
}

// All iterates pages in display order.
func (d *Document) All() iter.Seq[*Page] {
	return func(yield func(*Page) bool) {
		for _, p := range d.pages {
			if !yield(p) {
				return
			}
		}
	}
}

// Page returns the page with the given num, or nil.
func (d *Document) Page(num int) *Page {
	if i := d.index(num); i >= 0 {
		return d.pages[i]
	}
	return nil
}

// Contains reports whether p is a member of this document's page set.
func (d *Document) Contains(p *Page) bool {
	return slices.Contains(d.pages, p)
}

// Replace swaps in a fresh page set, e.g. after a reload from the server.
func (d *Document) Replace(pages []*Page) {
	d.pages = make([]*Page, 0, len(pages))
	for _, p := range pages {
		if p == nil {
			continue
		}
		p.DocID = d.node.ID
		d.pages = append(d.pages, p)
	}
	d.sort()
}

// Pending reports whether any page has a staged order different from its num.
func (d *Document) Pending() bool {
	for _, p := range d.pages {
		if p.Reordered() {
			return true
		}
	}
	return false
}

// Move exchanges the order of page num with its neighbour in display order.
// It returns the neighbour that was swapped, or false when the page is not
// found or is already at the edge.
func (d *Document) Move(num int, dir Direction) (*Page, bool) {
	i := d.index(num)
	if i < 0 {
		return nil, false
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(d.pages) {
		return nil, false
	}
	a, b := d.pages[i], d.pages[j]
	a.Order, b.Order = b.Order, a.Order
	d.pages[i], d.pages[j] = b, a
	return b, true
}

// ReorderPayload lists every page, not only the moved ones, by num.
func (d *Document) ReorderPayload() []ReorderEntry {
	out := make([]ReorderEntry, 0, len(d.pages))
	for _, p := range d.pages {
		out = append(out, ReorderEntry{PageNum: p.Num, PageOrder: p.Order})
	}
	slices.SortFunc(out, func(a, b ReorderEntry) int { return a.PageNum - b.PageNum })
	return out
}

// CommitOrder records a confirmed reorder: every page takes its staged order
// as its new num.
func (d *Document) CommitOrder() {
	d.CommitReorder(d.ReorderPayload())
}

// CommitReorder records a reorder the server confirmed. Each page listed in
// entries takes the confirmed order as its new num; pages are matched by
// their num at the time entries was built. Moves staged after that remain
// pending.
func (d *Document) CommitReorder(entries []ReorderEntry) {
	next := make(map[int]int, len(entries))
	for _, e := range entries {
		next[e.PageNum] = e.PageOrder
	}
	type update struct {
		page *Page
		num  int
	}
	var updates []update
	for _, p := range d.pages {
		if n, ok := next[p.Num]; ok {
			updates = append(updates, update{p, n})
		}
	}
	for _, u := range updates {
		u.page.Num = u.num
	}
	d.sort()
}

// BeginApply marks a reorder request as in flight. It returns false if one
// already is.
func (d *Document) BeginApply() bool {
	if d.applying {
		return false
	}
	d.applying = true
	return true
}

// EndApply clears the in-flight marker.
func (d *Document) EndApply() {
	d.applying = false
}

// Applying reports whether a reorder request is in flight.
func (d *Document) Applying() bool {
	return d.applying
}

// Removed records a page taken out of the document together with its
// display position, so the removal can be undone.
type Removed struct {
	Page  *Page
	Index int
}

// Remove drops the pages with the given nums and returns what was removed.
func (d *Document) Remove(nums []int) []Removed {
	var removed []Removed
	kept := d.pages[:0:0]
	for i, p := range d.pages {
		if slices.Contains(nums, p.Num) {
			removed = append(removed, Removed{Page: p, Index: i})
			continue
		}
		kept = append(kept, p)
	}
	d.pages = kept
	return removed
}

// Restore puts back pages returned by Remove at their former positions.
// Pages that have since reappeared (e.g. via a reload) are skipped.
func (d *Document) Restore(removed []Removed) {
	for _, r := range removed {
		if d.index(r.Page.Num) >= 0 {
			continue
		}
		at := min(max(r.Index, 0), len(d.pages))
		d.pages = slices.Insert(d.pages, at, r.Page)
	}
}

func (d *Document) index(num int) int {
	return slices.IndexFunc(d.pages, func(p *Page) bool { return p.Num == num })
}

func (d *Document) sort() {
	slices.SortStableFunc(d.pages, func(a, b *Page) int {
		return a.Order - b.Order
	})
}
