package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/blackwell-systems/pagectl/internal/session"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editorPhase int

const (
	phaseLoading editorPhase = iota
	phaseEditing
	phaseMenu
	phaseConfirm
	phaseDialog
	phaseFailed
)

type focusPanel int

const (
	focusThumbs focusPanel = iota
	focusPages
)

// loadedMsg carries the fetched document.
type loadedMsg struct {
	doc *document.Document
	err error
}

// jobDoneMsg carries the result of an action's backend call.
type jobDoneMsg struct {
	job *actions.Job
	err error
}

// Editor is the bubbletea model of an editing session. Backend calls run
// as commands; their results are settled on the next update.
type Editor struct {
	ctx    context.Context
	sess   *session.Session
	thumbs *ThumbnailPanel
	pages  *PagePanel
	dlg    *Dialogs

	keys    EditorKeys
	modal   ModalKeys
	menu    list.Model
	phase   editorPhase
	focus   focusPanel
	confirm bool

	pending   actions.ID
	prompt    string
	busy      actions.ID
	status    string
	statusErr bool
	activeCmd string
	loadErr   error

	width  int
	height int
}

// EditorOptions configures NewEditor.
type EditorOptions struct {
	// Confirm asks before destructive actions.
	Confirm bool
}

// NewEditor creates the editor model. thumbs, pages and dlg must be the
// collaborators sess was created with.
func NewEditor(ctx context.Context, sess *session.Session, thumbs *ThumbnailPanel, pages *PagePanel, dlg *Dialogs, opts EditorOptions) *Editor {
	return &Editor{
		ctx:     ctx,
		sess:    sess,
		thumbs:  thumbs,
		pages:   pages,
		dlg:     dlg,
		keys:    NewEditorKeys(),
		modal:   NewModalKeys(),
		confirm: opts.Confirm,
	}
}

// Init fetches the document.
func (m *Editor) Init() tea.Cmd {
	sess, ctx := m.sess, m.ctx
	return func() tea.Msg {
		doc, err := sess.Fetch(ctx)
		return loadedMsg{doc: doc, err: err}
	}
}

// Update implements tea.Model.
func (m *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		_ = m.sess.Handle(session.Event{Kind: session.Resize})
		return m, nil

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.phase = phaseFailed
			return m, nil
		}
		m.sess.Attach(msg.doc)
		m.thumbs.SetTitle(m.title())
		if h := m.sess.Highlighted(); h != 0 {
			m.thumbs.Focus(h)
		}
		m.phase = phaseEditing
		return m, nil

	case jobDoneMsg:
		err := m.sess.Settle(msg.job, msg.err)
		m.busy = ""
		m.thumbs.SyncSelection(m.sess.Selection())
		m.thumbs.SetTitle(m.title())
		if err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("%s done", msg.job.Action))
		}
		return m, nil

	case tea.KeyMsg:
		switch m.phase {
		case phaseLoading, phaseFailed:
			if key.Matches(msg, m.keys.Quit) || msg.String() == "esc" {
				return m, tea.Quit
			}
			return m, nil
		case phaseMenu:
			return m.updateMenu(msg)
		case phaseConfirm:
			return m.updateConfirm(msg)
		case phaseDialog:
			return m.updateDialog(msg)
		}
		return m.updateEditing(msg)
	}

	if m.phase == phaseDialog && m.dlg.kind == dialogRename {
		var cmd tea.Cmd
		m.dlg.input, cmd = m.dlg.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Editor) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Focus):
		if m.focus == focusThumbs {
			m.focus = focusPages
		} else {
			m.focus = focusThumbs
		}
		return m, nil
	}

	if m.focus == focusPages {
		if key.Matches(msg, k.ZoomIn, k.ZoomOut, k.ZoomReset) {
			return m, m.zoom(msg)
		}
		return m, m.pages.Update(msg)
	}

	cur := m.thumbs.CurrentNum()
	switch {
	case key.Matches(msg, k.Up, k.Down):
		return m, m.thumbs.Update(msg)
	case key.Matches(msg, k.Click):
		m.handle(session.Event{Kind: session.ThumbnailClick, Num: cur})
	case key.Matches(msg, k.Toggle):
		m.handle(session.Event{Kind: session.ThumbnailToggle, Num: cur})
	case key.Matches(msg, k.Open):
		m.handle(session.Event{Kind: session.ThumbnailDoubleClick, Num: cur})
	case key.Matches(msg, k.MoveUp):
		m.move(session.MoveUp, cur)
	case key.Matches(msg, k.MoveDown):
		m.move(session.MoveDown, cur)
	case key.Matches(msg, k.ZoomIn, k.ZoomOut, k.ZoomReset):
		return m, m.zoom(msg)
	case key.Matches(msg, k.Menu):
		m.menu = newMenu(m.sess.Actions())
		m.phase = phaseMenu
	case key.Matches(msg, k.Delete):
		return m, m.trigger(actions.DeletePage, msg.String())
	case key.Matches(msg, k.Cut):
		return m, m.trigger(actions.CutPage, msg.String())
	case key.Matches(msg, k.Paste):
		return m, m.trigger(actions.PastePage, msg.String())
	case key.Matches(msg, k.PasteAbove):
		return m, m.trigger(actions.PastePageBefore, msg.String())
	case key.Matches(msg, k.PasteBelow):
		return m, m.trigger(actions.PastePageAfter, msg.String())
	case key.Matches(msg, k.Rename):
		return m, m.trigger(actions.Rename, msg.String())
	case key.Matches(msg, k.Metadata):
		return m, m.trigger(actions.Metadata, msg.String())
	case key.Matches(msg, k.Apply):
		return m, m.trigger(actions.ApplyReorder, msg.String())
	}
	return m, nil
}

func (m *Editor) handle(ev session.Event) {
	if ev.Num == 0 {
		return
	}
	if err := m.sess.Handle(ev); err != nil {
		m.setError(err)
		return
	}
	m.thumbs.SyncSelection(m.sess.Selection())
}

func (m *Editor) move(kind session.EventKind, num int) {
	p := m.sess.Document().Page(num)
	if p == nil {
		return
	}
	m.handle(session.PageEvent(kind, p))
	m.thumbs.Focus(num)
	if m.sess.Document().Pending() {
		m.setStatus("order changed, press s to apply")
	} else {
		m.setStatus("order restored")
	}
}

func (m *Editor) zoom(msg tea.KeyMsg) tea.Cmd {
	z := m.sess.Zoom()
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		z++
	case key.Matches(msg, m.keys.ZoomOut):
		if z <= 1 {
			return nil
		}
		z--
	default:
		z = 0
	}
	m.handle(session.Event{Kind: session.ZoomChange, Zoom: z})
	m.activeCmd = msg.String()
	return HighlightCmd()
}

// trigger starts action id, asking for confirmation first when the action
// has a prompt.
func (m *Editor) trigger(id actions.ID, keyName string) tea.Cmd {
	m.activeCmd = keyName
	if m.busy != "" {
		m.setError(fmt.Errorf("%s still running", m.busy))
		return HighlightCmd()
	}
	if !m.sess.Registry().Enabled(id, m.sess.Env()) {
		m.setError(fmt.Errorf("%s: %w", id, actions.ErrActionDisabled))
		return HighlightCmd()
	}
	if prompt := m.sess.Prompt(id); prompt != "" && m.confirm {
		m.pending = id
		m.prompt = prompt
		m.phase = phaseConfirm
		return HighlightCmd()
	}
	return tea.Batch(m.start(id), HighlightCmd())
}

// start runs the synchronous part of id and returns its backend call as
// a command.
func (m *Editor) start(id actions.ID) tea.Cmd {
	m.phase = phaseEditing
	job, err := m.sess.Invoke(id, actions.Confirmed)
	m.thumbs.SyncSelection(m.sess.Selection())
	if err != nil {
		m.setError(err)
		return nil
	}
	if m.dlg.Open() {
		m.phase = phaseDialog
		if m.dlg.kind == dialogRename {
			return m.dlg.input.Focus()
		}
		return nil
	}
	if job == nil {
		return nil
	}
	m.busy = id
	m.setStatus(fmt.Sprintf("%s…", id))
	ctx := m.ctx
	return func() tea.Msg {
		return jobDoneMsg{job: job, err: job.Call(ctx)}
	}
}

func (m *Editor) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "a":
		m.phase = phaseEditing
		return m, nil
	case "enter":
		item, ok := m.menu.SelectedItem().(MenuItem)
		m.phase = phaseEditing
		if !ok {
			return m, nil
		}
		return m, m.trigger(item.ID, "a")
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Editor) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.modal.Confirm):
		id := m.pending
		m.pending, m.prompt = "", ""
		return m, m.start(id)
	case key.Matches(msg, m.modal.Cancel):
		m.setError(fmt.Errorf("%s: %w", m.pending, actions.ErrAborted))
		m.pending, m.prompt = "", ""
		m.phase = phaseEditing
	}
	return m, nil
}

func (m *Editor) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dlg.Close()
		m.phase = phaseEditing
		return m, nil
	case "enter":
		if m.dlg.kind == dialogRename {
			if title := m.dlg.Value(); title != "" {
				m.sess.Document().Rename(title)
				m.thumbs.SetTitle(m.title())
				m.setStatus(fmt.Sprintf("renamed to %q", title))
			}
		}
		m.dlg.Close()
		m.phase = phaseEditing
		return m, nil
	}
	if m.dlg.kind == dialogRename {
		var cmd tea.Cmd
		m.dlg.input, cmd = m.dlg.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Editor) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Editor) setError(err error) {
	m.statusErr = true
	switch {
	case errors.Is(err, actions.ErrAborted):
		m.status = "cancelled"
		m.statusErr = false
	case api.IsTransient(err):
		m.status = err.Error() + " (retry)"
	default:
		m.status = err.Error()
	}
}

func (m *Editor) title() string {
	node := m.sess.Document().Node()
	if node.Title == "" {
		return fmt.Sprintf("Document %s", node.ID)
	}
	return node.Title
}

func (m *Editor) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h, v := StyleBorder.GetFrameSize()
	bodyH := m.height - v - 2
	left := m.width / 3
	m.thumbs.SetSize(left-h, bodyH)
	m.pages.SetSize(m.width-left-h*2, bodyH)
}

// View implements tea.Model.
func (m *Editor) View() string {
	switch m.phase {
	case phaseLoading:
		return modal(StyleHeader.Render("Loading document…"))
	case phaseFailed:
		return modal(StyleError.Render(fmt.Sprintf("Could not load document: %v", m.loadErr)) +
			"\n\n" + StyleHelp.Render("Press q to quit"))
	case phaseMenu:
		return modal(m.menu.View() + "\n" + RenderFooterBar([]ShortcutEntry{
			{Key: "enter", Label: "enter run"},
			{Key: "esc", Label: "esc close"},
		}, m.activeCmd))
	case phaseConfirm:
		return modal(StyleHeader.Render(m.prompt) + "\n\n" +
			RenderFooterBar(Shortcuts([]key.Binding{m.modal.Confirm, m.modal.Cancel}), ""))
	case phaseDialog:
		return m.dlg.view()
	}

	thumbStyle, pageStyle := StyleFocused, StyleBorder
	if m.focus == focusPages {
		thumbStyle, pageStyle = StyleBorder, StyleFocused
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		thumbStyle.Render(m.thumbs.View()),
		pageStyle.Render(m.pages.View()),
	)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		style := StyleHelp
		if m.statusErr {
			style = StyleError
		}
		b.WriteString(style.Render(" " + m.status))
		b.WriteString("\n")
	}
	b.WriteString(RenderFooterBar(Shortcuts(m.keys.ShortHelp()), m.activeCmd))
	return b.String()
}

// Status returns the last status line.
func (m *Editor) Status() string { return m.status }

// Run starts the editor as a full-screen program.
func Run(ctx context.Context, m *Editor) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
