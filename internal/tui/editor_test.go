package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/blackwell-systems/pagectl/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

type stubBackend struct {
	pages    int
	loadErr  error
	deletes  [][]int
	cuts     [][]int
	reorders [][]document.ReorderEntry
}

func (b *stubBackend) Document(_ context.Context, id document.ID) (*document.Document, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	var pages []*document.Page
	for i := 1; i <= b.pages; i++ {
		pages = append(pages, &document.Page{ID: "p" + string(rune('0'+i)), Num: i, Order: i, Text: "line one\nline two"})
	}
	return document.New(document.Node{ID: id, Title: "Ledger"}, pages), nil
}

func (b *stubBackend) DeletePages(_ context.Context, _ document.ID, nums []int) error {
	b.deletes = append(b.deletes, nums)
	return nil
}

func (b *stubBackend) CutPages(_ context.Context, _ document.ID, nums []int) error {
	b.cuts = append(b.cuts, nums)
	return nil
}

func (b *stubBackend) Paste(context.Context, document.ID, api.Placement) error { return nil }

func (b *stubBackend) ApplyReorder(_ context.Context, _ document.ID, entries []document.ReorderEntry) error {
	b.reorders = append(b.reorders, entries)
	return nil
}

func newTestEditor(t *testing.T, b *stubBackend) *Editor {
	t.Helper()
	thumbs, pages, dlg := NewThumbnailPanel("Pages"), NewPagePanel(), NewDialogs()
	sess := session.New(b, thumbs, pages, session.Options{DocID: 4, Dialogs: dlg})
	m := NewEditor(context.Background(), sess, thumbs, pages, dlg, EditorOptions{Confirm: true})
	m.Update(m.Init()())
	return m
}

func press(m *Editor, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

// settle runs a job command and feeds its result back.
func settle(t *testing.T, m *Editor, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	raw := cmd()
	msg, ok := raw.(jobDoneMsg)
	if !ok {
		t.Fatalf("command produced %T, want jobDoneMsg", raw)
	}
	m.Update(msg)
}

func TestEditor_Load(t *testing.T) {
	m := newTestEditor(t, &stubBackend{pages: 3})
	if m.phase != phaseEditing {
		t.Fatalf("phase = %v, want editing", m.phase)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, m.thumbs.Nums()); diff != "" {
		t.Errorf("thumbnails (-want +got):\n%s", diff)
	}
}

func TestEditor_LoadFailure(t *testing.T) {
	m := newTestEditor(t, &stubBackend{loadErr: errors.New("connection refused")})
	if m.phase != phaseFailed {
		t.Fatalf("phase = %v, want failed", m.phase)
	}
	if !strings.Contains(m.View(), "connection refused") {
		t.Errorf("View should show the load error, got %q", m.View())
	}
}

func TestEditor_DeleteAfterConfirm(t *testing.T) {
	b := &stubBackend{pages: 3}
	m := newTestEditor(t, b)

	press(m, "enter", "d")
	if m.phase != phaseConfirm {
		t.Fatalf("phase = %v, want confirm", m.phase)
	}
	if !strings.Contains(m.View(), "Delete 1 page(s)?") {
		t.Errorf("confirm view = %q", m.View())
	}

	settle(t, m, press(m, "y"))

	if diff := cmp.Diff([][]int{{1}}, b.deletes); diff != "" {
		t.Errorf("deletes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3}, m.thumbs.Nums()); diff != "" {
		t.Errorf("thumbnails (-want +got):\n%s", diff)
	}
	if m.busy != "" {
		t.Errorf("busy = %q after settle", m.busy)
	}
}

func TestEditor_DeleteDeclined(t *testing.T) {
	b := &stubBackend{pages: 3}
	m := newTestEditor(t, b)

	press(m, "enter", "d", "n")
	if len(b.deletes) != 0 {
		t.Errorf("deletes = %v, want none", b.deletes)
	}
	if m.Status() != "cancelled" {
		t.Errorf("status = %q, want cancelled", m.Status())
	}
	if m.thumbs.Checked() == nil {
		t.Error("declining should keep the selection")
	}
}

func TestEditor_MovedPageCannotBeDeleted(t *testing.T) {
	b := &stubBackend{pages: 3}
	m := newTestEditor(t, b)

	press(m, "J")
	if diff := cmp.Diff([]int{2, 1, 3}, m.thumbs.Nums()); diff != "" {
		t.Fatalf("thumbnails after move (-want +got):\n%s", diff)
	}
	if got := m.thumbs.CurrentNum(); got != 1 {
		t.Errorf("cursor on page %d, want the moved page 1", got)
	}

	press(m, "enter", "d")
	if m.phase != phaseEditing {
		t.Errorf("phase = %v, delete must not prompt while disabled", m.phase)
	}
	if !strings.Contains(m.Status(), actions.ErrActionDisabled.Error()) {
		t.Errorf("status = %q, want disabled notice", m.Status())
	}
}

func TestEditor_ApplyReorder(t *testing.T) {
	b := &stubBackend{pages: 3}
	m := newTestEditor(t, b)

	press(m, "J", "s")
	if m.phase != phaseConfirm {
		t.Fatalf("phase = %v, want confirm", m.phase)
	}
	settle(t, m, press(m, "y"))

	want := [][]document.ReorderEntry{{
		{PageNum: 1, PageOrder: 2},
		{PageNum: 2, PageOrder: 1},
		{PageNum: 3, PageOrder: 3},
	}}
	if diff := cmp.Diff(want, b.reorders); diff != "" {
		t.Errorf("reorder payload (-want +got):\n%s", diff)
	}
	if m.sess.Document().Pending() {
		t.Error("document still pending after apply")
	}
	if diff := cmp.Diff([]int{1, 2, 3}, m.thumbs.Nums()); diff != "" {
		t.Errorf("thumbnails after apply (-want +got):\n%s", diff)
	}
}

func TestEditor_CutFromMenu(t *testing.T) {
	b := &stubBackend{pages: 3}
	m := newTestEditor(t, b)

	press(m, "down", "enter", "a")
	if m.phase != phaseMenu {
		t.Fatalf("phase = %v, want menu", m.phase)
	}
	// Rename, Delete, Cut
	press(m, "down", "down")
	cmd := press(m, "enter")

	msgs := cmd()
	batch, ok := msgs.(tea.BatchMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want tea.BatchMsg", msgs)
	}
	settle(t, m, batch[0])

	if diff := cmp.Diff([][]int{{2}}, b.cuts); diff != "" {
		t.Errorf("cuts (-want +got):\n%s", diff)
	}
	if _, ok := m.sess.Clipboard().Batch(); !ok {
		t.Error("clipboard empty after cut")
	}
}

func TestEditor_RenameDialog(t *testing.T) {
	m := newTestEditor(t, &stubBackend{pages: 1})

	press(m, "r")
	if m.phase != phaseDialog {
		t.Fatalf("phase = %v, want dialog", m.phase)
	}
	if got := m.dlg.Value(); got != "Ledger" {
		t.Errorf("rename input = %q, want current title", got)
	}
	m.dlg.input.SetValue("Ledger 2024")
	press(m, "enter")

	if got := m.sess.Document().Node().Title; got != "Ledger 2024" {
		t.Errorf("title = %q, want %q", got, "Ledger 2024")
	}
	if m.dlg.Open() {
		t.Error("dialog still open")
	}
}

func TestEditor_MetadataDialog(t *testing.T) {
	m := newTestEditor(t, &stubBackend{pages: 2})

	press(m, "enter", "m")
	if m.phase != phaseDialog {
		t.Fatalf("phase = %v, want dialog", m.phase)
	}
	if v := m.View(); !strings.Contains(v, "p1") || !strings.Contains(v, "Page 1") {
		t.Errorf("metadata view = %q", v)
	}
	press(m, "esc")
	if m.phase != phaseEditing {
		t.Errorf("phase = %v after esc", m.phase)
	}
}

func TestEditor_Zoom(t *testing.T) {
	m := newTestEditor(t, &stubBackend{pages: 1})

	press(m, "+")
	if got := m.pages.Zoom(); got != session.DefaultZoom+1 {
		t.Errorf("zoom = %d, want %d", got, session.DefaultZoom+1)
	}
	press(m, "0")
	if got := m.pages.Zoom(); got != session.DefaultZoom {
		t.Errorf("zoom after reset = %d, want %d", got, session.DefaultZoom)
	}
}
