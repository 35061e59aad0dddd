package document

import "fmt"

// ID identifies a document on the server.
type ID int64

// String implements fmt.Stringer.
func (id ID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// Page is one page of a document.
//
// Num is the server-assigned sequence identity and never changes locally.
// Order is the staged display position; it starts equal to Num and diverges
// when pages are moved until the reorder is applied.
type Page struct {
	DocID ID     `json:"doc_id" yaml:"doc_id"`
	ID    string `json:"id" yaml:"id"`
	Num   int    `json:"page_num" yaml:"page_num"`
	Order int    `json:"page_order" yaml:"page_order"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Reordered reports whether the page has a staged position change.
func (p *Page) Reordered() bool {
	return p.Num != p.Order
}

// Node is the document as a tree node: the target of rename and paste.
type Node struct {
	ID    ID     `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Direction is the direction of a single page move.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ReorderEntry is one element of the reorder payload.
type ReorderEntry struct {
	PageNum   int `json:"page_num" yaml:"page_num"`
	PageOrder int `json:"page_order" yaml:"page_order"`
}
