package document

import "slices"

// Batch is one cut operation: the pages cut from a document, in the order
// they were sent to the server.
type Batch struct {
	DocID ID
	Nums  []int
}

// Clipboard holds at most one cut batch. A new cut replaces the previous
// one entirely.
type Clipboard struct {
	batch *Batch
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Store replaces the clipboard contents.
func (c *Clipboard) Store(docID ID, nums []int) {
	c.batch = &Batch{DocID: docID, Nums: slices.Clone(nums)}
}

// Batch returns a copy of the current batch and whether there is one.
func (c *Clipboard) Batch() (Batch, bool) {
	if c.batch == nil {
		return Batch{}, false
	}
	return Batch{DocID: c.batch.DocID, Nums: slices.Clone(c.batch.Nums)}, true
}

// Empty reports whether nothing has been cut.
func (c *Clipboard) Empty() bool {
	return c.batch == nil
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() {
	c.batch = nil
}
