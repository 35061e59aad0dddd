package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/blackwell-systems/pagectl/internal/document"
)

// Anchor positions a paste relative to an existing page.
type Anchor int

const (
	// AnchorNone lets the server decide where pasted pages go.
	AnchorNone Anchor = iota
	AnchorBefore
	AnchorAfter
)

// Placement is the positional hint sent with a paste.
type Placement struct {
	Anchor Anchor
	Num    int
}

// body returns the JSON body for the placement, or nil for AnchorNone.
func (p Placement) body() interface{} {
	switch p.Anchor {
	case AnchorBefore:
		return map[string]int{"before": p.Num}
	case AnchorAfter:
		return map[string]int{"after": p.Num}
	}
	return nil
}

// documentResponse is the page listing returned by the server.
type documentResponse struct {
	ID    document.ID      `json:"id"`
	Title string           `json:"title"`
	Pages []*document.Page `json:"pages"`
}

func docPath(id document.ID) []string {
	return []string{"api", "document", id.String(), "pages"}
}

// Document fetches the document and its pages in server order.
func (c *Client) Document(ctx context.Context, id document.ID) (*document.Document, error) {
	var out documentResponse
	if err := c.doJSON(ctx, http.MethodGet, c.url(docPath(id)...), nil, &out); err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	if out.ID == 0 {
		out.ID = id
	}
	for _, p := range out.Pages {
		if p == nil {
			continue
		}
		if p.Order == 0 {
			p.Order = p.Num
		}
	}
	return document.New(document.Node{ID: out.ID, Title: out.Title}, out.Pages), nil
}

// DeletePages deletes pages by num.
func (c *Client) DeletePages(ctx context.Context, id document.ID, nums []int) error {
	q := url.Values{}
	for _, n := range nums {
		q.Add("pages[]", strconv.Itoa(n))
	}
	u := c.url(docPath(id)...) + "?" + q.Encode()
	if err := c.doJSON(ctx, http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("delete pages %v of document %s: %w", nums, id, err)
	}
	return nil
}

// CutPages sends pages to the server-side clipboard.
func (c *Client) CutPages(ctx context.Context, id document.ID, nums []int) error {
	u := c.url(append(docPath(id), "cut")...)
	if nums == nil {
		nums = []int{}
	}
	if err := c.doJSON(ctx, http.MethodPost, u, nums, nil); err != nil {
		return fmt.Errorf("cut pages %v of document %s: %w", nums, id, err)
	}
	return nil
}

// Paste pastes the server-side clipboard into the target document.
func (c *Client) Paste(ctx context.Context, target document.ID, at Placement) error {
	u := c.url(append(docPath(target), "paste")...)
	if err := c.doJSON(ctx, http.MethodPost, u, at.body(), nil); err != nil {
		return fmt.Errorf("paste into document %s: %w", target, err)
	}
	return nil
}

// ApplyReorder submits the full page order of a document.
func (c *Client) ApplyReorder(ctx context.Context, id document.ID, entries []document.ReorderEntry) error {
	if entries == nil {
		entries = []document.ReorderEntry{}
	}
	if err := c.doJSON(ctx, http.MethodPost, c.url(docPath(id)...), entries, nil); err != nil {
		return fmt.Errorf("reorder pages of document %s: %w", id, err)
	}
	return nil
}
