package document_test

import (
	"testing"

	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/google/go-cmp/cmp"
)

func TestSelection_AddIsIdempotentByNum(t *testing.T) {
	sel := document.NewSelection()
	sel.Add(&document.Page{Num: 2})
	sel.Add(&document.Page{Num: 2})
	sel.Add(nil)
	if sel.Len() != 1 {
		t.Errorf("Len = %d, want 1", sel.Len())
	}
}

func TestSelection_ReplaceKeepsOnlyOne(t *testing.T) {
	doc := threePages()
	sel := document.NewSelection()
	sel.Add(doc.Page(1))
	sel.Add(doc.Page(3))
	sel.Replace(doc.Page(2))

	if diff := cmp.Diff([]int{2}, sel.Nums()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestSelection_Toggle(t *testing.T) {
	doc := threePages()
	sel := document.NewSelection()
	sel.Toggle(doc.Page(1))
	sel.Toggle(doc.Page(3))
	sel.Toggle(doc.Page(1))
	if diff := cmp.Diff([]int{3}, sel.Nums()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestSelection_AllIsRestartable(t *testing.T) {
	doc := threePages()
	sel := document.NewSelection()
	sel.Add(doc.Page(1))
	sel.Add(doc.Page(2))

	for range 2 {
		count := 0
		for range sel.All() {
			count++
		}
		if count != 2 {
			t.Errorf("iterated %d pages, want 2", count)
		}
	}
}

func TestSelection_SeesOrderThroughReference(t *testing.T) {
	doc := threePages()
	sel := document.NewSelection()
	sel.Add(doc.Page(2))
	if sel.AnyReordered() {
		t.Fatal("nothing moved yet")
	}
	doc.Move(2, document.Down)
	if !sel.AnyReordered() {
		t.Error("selection should observe order change made through the document")
	}
}

func TestSelection_FirstAndClear(t *testing.T) {
	sel := document.NewSelection()
	if sel.First() != nil {
		t.Error("First on empty selection should be nil")
	}
	sel.Add(&document.Page{Num: 5})
	if got := sel.First(); got == nil || got.Num != 5 {
		t.Errorf("First = %+v, want page 5", got)
	}
	sel.Clear()
	if sel.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", sel.Len())
	}
}

func TestSelection_Prune(t *testing.T) {
	doc := threePages()
	sel := document.NewSelection()
	sel.Add(doc.Page(1))
	sel.Add(doc.Page(2))
	doc.Remove([]int{2})
	sel.Prune(doc)
	if diff := cmp.Diff([]int{1}, sel.Nums()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestClipboard_StoreReplaces(t *testing.T) {
	cb := document.NewClipboard()
	if !cb.Empty() {
		t.Fatal("new clipboard should be empty")
	}
	cb.Store(7, []int{2, 4})
	cb.Store(8, []int{1})

	b, ok := cb.Batch()
	if !ok {
		t.Fatal("Batch returned false")
	}
	if diff := cmp.Diff(document.Batch{DocID: 8, Nums: []int{1}}, b); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestClipboard_BatchIsACopy(t *testing.T) {
	cb := document.NewClipboard()
	src := []int{1, 2}
	cb.Store(7, src)
	src[0] = 99

	b, _ := cb.Batch()
	b.Nums[1] = 42
	again, _ := cb.Batch()
	if diff := cmp.Diff([]int{1, 2}, again.Nums); diff != "" {
		t.Errorf("clipboard leaked aliasing (-want +got):\n%s", diff)
	}
	cb.Clear()
	if !cb.Empty() {
		t.Error("clipboard not empty after Clear")
	}
}
