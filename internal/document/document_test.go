package document_test

import (
	"testing"

	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/google/go-cmp/cmp"
)

func threePages() *document.Document {
	return document.New(document.Node{ID: 7, Title: "scan"}, []*document.Page{
		{ID: "a", Num: 1, Order: 1},
		{ID: "b", Num: 2, Order: 2},
		{ID: "c", Num: 3, Order: 3},
	})
}

func nums(pages []*document.Page) []int {
	out := make([]int, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Num)
	}
	return out
}

func TestNew_SortsByOrderAndAdoptsDocID(t *testing.T) {
	doc := document.New(document.Node{ID: 9}, []*document.Page{
		{Num: 2, Order: 2},
		nil,
		{Num: 1, Order: 1},
	})
	if doc.Len() != 2 {
		t.Fatalf("Len = %d, want 2", doc.Len())
	}
	if diff := cmp.Diff([]int{1, 2}, nums(doc.Pages())); diff != "" {
		t.Errorf("page order mismatch (-want +got):\n%s", diff)
	}
	for p := range doc.All() {
		if p.DocID != 9 {
			t.Errorf("page %d DocID = %v, want 9", p.Num, p.DocID)
		}
	}
}

func TestPending_FreshDocument(t *testing.T) {
	if threePages().Pending() {
		t.Error("fresh document should not be pending")
	}
}

func TestMove_DownSwapsOrderWithNext(t *testing.T) {
	doc := threePages()

	swapped, ok := doc.Move(2, document.Down)
	if !ok {
		t.Fatal("Move returned false")
	}
	if swapped.Num != 3 {
		t.Errorf("swapped neighbour = %d, want 3", swapped.Num)
	}
	if !doc.Pending() {
		t.Error("document should be pending after a move")
	}

	want := []document.ReorderEntry{
		{PageNum: 1, PageOrder: 1},
		{PageNum: 2, PageOrder: 3},
		{PageNum: 3, PageOrder: 2},
	}
	if diff := cmp.Diff(want, doc.ReorderPayload()); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
	if p := doc.Page(2); p.Order != 3 || p.Num != 2 {
		t.Errorf("page 2 = {num %d, order %d}, want {2, 3}", p.Num, p.Order)
	}
}

func TestMove_UpSwapsOrderWithPrevious(t *testing.T) {
	doc := threePages()
	if _, ok := doc.Move(3, document.Up); !ok {
		t.Fatal("Move returned false")
	}
	if diff := cmp.Diff([]int{1, 3, 2}, nums(doc.Pages())); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_Edges(t *testing.T) {
	tests := []struct {
		name string
		num  int
		dir  document.Direction
	}{
		{"first up", 1, document.Up},
		{"last down", 3, document.Down},
		{"unknown page", 42, document.Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := threePages()
			if _, ok := doc.Move(tt.num, tt.dir); ok {
				t.Errorf("Move(%d, %v) = true, want false", tt.num, tt.dir)
			}
			if doc.Pending() {
				t.Error("edge move should leave document clean")
			}
		})
	}
}

func TestMove_BackAndForthIsClean(t *testing.T) {
	doc := threePages()
	doc.Move(1, document.Down)
	doc.Move(1, document.Up)
	if doc.Pending() {
		t.Error("moving a page down and back up should leave no pending changes")
	}
}

func TestCommitOrder_CollapsesPending(t *testing.T) {
	doc := threePages()
	doc.Move(2, document.Down)
	doc.CommitOrder()

	if doc.Pending() {
		t.Error("document still pending after CommitOrder")
	}
	for p := range doc.All() {
		if p.Num != p.Order {
			t.Errorf("page %s: num %d != order %d", p.ID, p.Num, p.Order)
		}
	}
	// page "b" was num 2 and now sits third.
	if p := doc.Page(3); p == nil || p.ID != "b" {
		t.Errorf("page 3 should be former page 2 (id b), got %+v", p)
	}
}

func TestCommitReorder_KeepsLaterMovesPending(t *testing.T) {
	doc := threePages()
	doc.Move(1, document.Down)
	sent := doc.ReorderPayload()

	// page 3 is moved while the first reorder is still in flight
	doc.Move(3, document.Up)
	doc.CommitReorder(sent)

	if !doc.Pending() {
		t.Error("move staged after the payload was built should stay pending")
	}
	if p := doc.Page(2); p == nil || p.ID != "a" {
		t.Errorf("page 2 should be former page 1 (id a), got %+v", p)
	}
}

func TestRemoveRestore(t *testing.T) {
	doc := threePages()
	removed := doc.Remove([]int{1, 3})
	if len(removed) != 2 {
		t.Fatalf("removed %d pages, want 2", len(removed))
	}
	if diff := cmp.Diff([]int{2}, nums(doc.Pages())); diff != "" {
		t.Errorf("after remove (-want +got):\n%s", diff)
	}

	doc.Restore(removed)
	if diff := cmp.Diff([]int{1, 2, 3}, nums(doc.Pages())); diff != "" {
		t.Errorf("after restore (-want +got):\n%s", diff)
	}
}

func TestRestore_SkipsPagesAlreadyPresent(t *testing.T) {
	doc := threePages()
	removed := doc.Remove([]int{2})
	doc.Replace([]*document.Page{{Num: 1, Order: 1}, {Num: 2, Order: 2}})
	doc.Restore(removed)
	if doc.Len() != 2 {
		t.Errorf("Len = %d, want 2", doc.Len())
	}
}

func TestBeginApply_SingleFlight(t *testing.T) {
	doc := threePages()
	if !doc.BeginApply() {
		t.Fatal("first BeginApply should succeed")
	}
	if doc.BeginApply() {
		t.Error("second BeginApply should fail while one is in flight")
	}
	doc.EndApply()
	if doc.Applying() {
		t.Error("Applying should be false after EndApply")
	}
}
