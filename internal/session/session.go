// Package session orchestrates one document editing session: it owns the
// page set, selection and clipboard, routes view events, and runs actions
// from the actions menu.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/blackwell-systems/pagectl/internal/document"
	"go.uber.org/zap"
)

const (
	DefaultZoom = 3
	MaxZoom     = 10
)

// ThumbnailView is the thumbnail panel collaborator.
type ThumbnailView interface {
	actions.View
	RemoveHighlights()
	MarkHighlight(num int)
}

// PageView is the page panel collaborator.
type PageView interface {
	actions.View
	ScrollTo(num int)
	SetZoom(zoom int)
	HighlightText(terms []string)
}

// Options configures a session. It replaces reading parameters from the
// viewer's location.
type Options struct {
	DocID document.ID
	// StartPage is scrolled to and highlighted once the document is loaded.
	StartPage int
	// Text lists terms to highlight in the page panel.
	Text []string

	DefaultZoom int
	MaxZoom     int

	ClearClipboardOnPaste bool

	// Confirm is used by Run. A nil Confirmer approves every prompt.
	Confirm actions.Confirmer
	Dialogs actions.Dialogs
	Logger  *zap.Logger
}

// Session is the editing session for one document. It is not safe for
// concurrent use: all methods except Job.Call must run on the event loop.
type Session struct {
	opts     Options
	backend  actions.Backend
	registry *actions.Registry
	thumbs   ThumbnailView
	pages    PageView
	log      *zap.Logger

	doc         *document.Document
	sel         *document.Selection
	clip        *document.Clipboard
	highlighted int
	zoom        int
}

// New creates a session. Views may be nil when running headless.
func New(backend actions.Backend, thumbs ThumbnailView, pages PageView, opts Options) *Session {
	if opts.DefaultZoom <= 0 {
		opts.DefaultZoom = DefaultZoom
	}
	if opts.MaxZoom <= 0 {
		opts.MaxZoom = MaxZoom
	}
	if opts.MaxZoom < opts.DefaultZoom {
		opts.MaxZoom = opts.DefaultZoom
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		opts:     opts,
		backend:  backend,
		registry: actions.Default(),
		thumbs:   thumbs,
		pages:    pages,
		log:      log.With(zap.Stringer("doc", opts.DocID)),
		doc:      document.New(document.Node{ID: opts.DocID}, nil),
		sel:      document.NewSelection(),
		clip:     document.NewClipboard(),
		zoom:     opts.DefaultZoom,
	}
}

// Document returns the live page set.
func (s *Session) Document() *document.Document { return s.doc }

// Selection returns the current selection.
func (s *Session) Selection() *document.Selection { return s.sel }

// Clipboard returns the clipboard.
func (s *Session) Clipboard() *document.Clipboard { return s.clip }

// Registry returns the actions menu.
func (s *Session) Registry() *actions.Registry { return s.registry }

// Highlighted returns the highlighted page num, or 0.
func (s *Session) Highlighted() int { return s.highlighted }

// Zoom returns the current zoom level.
func (s *Session) Zoom() int { return s.zoom }

// Fetch loads the document from the server. It performs I/O only and may
// run off the event loop; pass the result to Attach.
func (s *Session) Fetch(ctx context.Context) (*document.Document, error) {
	return s.backend.Document(ctx, s.opts.DocID)
}

// Attach installs a freshly fetched document, loads both views and applies
// the start page, zoom and text highlights.
func (s *Session) Attach(doc *document.Document) {
	s.doc = doc
	s.sel.Clear()
	s.highlighted = 0
	for _, v := range s.views() {
		v.Load(doc.Pages())
	}
	if s.pages != nil {
		s.pages.SetZoom(s.zoom)
		if len(s.opts.Text) > 0 {
			s.pages.HighlightText(s.opts.Text)
		}
	}
	if s.opts.StartPage > 0 {
		s.ScrollTo(s.opts.StartPage)
	}
	s.log.Info("document loaded", zap.Int("pages", doc.Len()))
}

// Open fetches and attaches the document.
func (s *Session) Open(ctx context.Context) error {
	doc, err := s.Fetch(ctx)
	if err != nil {
		return err
	}
	s.Attach(doc)
	return nil
}

// ScrollTo highlights num in the thumbnail panel and scrolls the page panel
// to it. At most one page is highlighted at a time. It returns false if the
// document has no such page.
func (s *Session) ScrollTo(num int) bool {
	if s.doc.Page(num) == nil {
		return false
	}
	if s.thumbs != nil {
		s.thumbs.RemoveHighlights()
		s.thumbs.MarkHighlight(num)
	}
	if s.pages != nil {
		s.pages.ScrollTo(num)
	}
	s.highlighted = num
	return true
}

func (s *Session) clearHighlight() {
	if s.highlighted == 0 {
		return
	}
	if s.thumbs != nil {
		s.thumbs.RemoveHighlights()
	}
	s.highlighted = 0
}

// OnZoomChange sets a new zoom level. Non-positive values select the
// default zoom; values above the maximum are clamped.
func (s *Session) OnZoomChange(value int) {
	s.zoom = s.normalizeZoom(value)
	if s.pages != nil {
		s.pages.SetZoom(s.zoom)
	}
}

func (s *Session) normalizeZoom(value int) int {
	switch {
	case value <= 0:
		return s.opts.DefaultZoom
	case value > s.opts.MaxZoom:
		return s.opts.MaxZoom
	}
	return value
}

// OnResize re-applies the current zoom after the viewport changed.
func (s *Session) OnResize() {
	if s.pages != nil {
		s.pages.SetZoom(s.zoom)
	}
}

// OnThumbnailClick makes num the only selected page.
func (s *Session) OnThumbnailClick(num int) {
	if p := s.doc.Page(num); p != nil {
		s.sel.Replace(p)
	}
}

// OnThumbnailToggle adds num to or removes it from the selection.
func (s *Session) OnThumbnailToggle(num int) {
	if p := s.doc.Page(num); p != nil {
		s.sel.Toggle(p)
	}
}

// OnThumbnailDoubleClick scrolls to num.
func (s *Session) OnThumbnailDoubleClick(num int) {
	s.ScrollTo(num)
}

// OnPageMoveUp moves page num one slot earlier.
func (s *Session) OnPageMoveUp(num int, docID document.ID, pageID string) bool {
	return s.move(num, docID, pageID, document.Up)
}

// OnPageMoveDown moves page num one slot later.
func (s *Session) OnPageMoveDown(num int, docID document.ID, pageID string) bool {
	return s.move(num, docID, pageID, document.Down)
}

// move clears the selection everywhere before validating the target or
// touching the order.
func (s *Session) move(num int, docID document.ID, pageID string, dir document.Direction) bool {
	s.sel.Clear()
	if s.thumbs != nil {
		s.thumbs.ClearSelections()
	}

	if docID != 0 && docID != s.doc.ID() {
		s.log.Warn("move for another document ignored", zap.Stringer("target", docID))
		return false
	}
	p := s.doc.Page(num)
	if p == nil || (pageID != "" && p.ID != pageID) {
		s.log.Warn("move for unknown page ignored", zap.Int("num", num), zap.String("page_id", pageID))
		return false
	}

	swapped, ok := s.doc.Move(num, dir)
	if !ok {
		return false
	}
	if s.highlighted == num || s.highlighted == swapped.Num {
		s.clearHighlight()
	}
	for _, v := range s.views() {
		v.Load(s.doc.Pages())
	}
	s.log.Debug("page moved",
		zap.Int("num", num),
		zap.Stringer("direction", dir),
		zap.Bool("pending", s.doc.Pending()))
	return true
}

// Handle dispatches a view event.
func (s *Session) Handle(ev Event) error {
	switch ev.Kind {
	case ThumbnailClick:
		s.OnThumbnailClick(ev.Num)
	case ThumbnailDoubleClick:
		s.OnThumbnailDoubleClick(ev.Num)
	case ThumbnailToggle:
		s.OnThumbnailToggle(ev.Num)
	case MoveUp:
		s.OnPageMoveUp(ev.Num, ev.DocID, ev.PageID)
	case MoveDown:
		s.OnPageMoveDown(ev.Num, ev.DocID, ev.PageID)
	case ZoomChange:
		s.OnZoomChange(ev.Zoom)
	case Resize:
		s.OnResize()
	default:
		return fmt.Errorf("unhandled event %v", ev.Kind)
	}
	return nil
}

// Env returns the action environment for the current state.
func (s *Session) Env() *actions.Env {
	return &actions.Env{
		Doc:                   s.doc,
		Selection:             s.sel,
		Clipboard:             s.clip,
		Thumbnails:            s.thumbs,
		Pages:                 s.pages,
		Dialogs:               s.opts.Dialogs,
		Backend:               s.backend,
		ClearClipboardOnPaste: s.opts.ClearClipboardOnPaste,
		Log:                   s.log,
	}
}

// Actions evaluates the actions menu against the current state.
func (s *Session) Actions() []actions.State {
	return s.registry.Evaluate(s.Env())
}

// Prompt returns the confirmation prompt for id, or "".
func (s *Session) Prompt(id actions.ID) string {
	return s.registry.Prompt(id, s.Env())
}

// Invoke runs the synchronous part of action id. The returned job, if any,
// must be completed with Job.Call and then Settle.
func (s *Session) Invoke(id actions.ID, confirm actions.Confirmer) (*actions.Job, error) {
	job, err := s.registry.Run(id, s.Env(), confirm)
	if err != nil {
		s.log.Info("action not run", zap.String("action", string(id)), zap.Error(err))
		return nil, err
	}
	s.log.Debug("action started", zap.String("action", string(id)))
	return job, nil
}

// Settle applies the outcome of a job's backend call.
func (s *Session) Settle(job *actions.Job, callErr error) error {
	err := job.Settle(callErr)
	if s.highlighted != 0 && s.doc.Page(s.highlighted) == nil {
		s.clearHighlight()
	}
	if err != nil {
		s.log.Warn("action failed", zap.String("action", string(job.Action)), zap.Error(err))
		return fmt.Errorf("%s: %w", job.Action, err)
	}
	s.log.Info("action completed", zap.String("action", string(job.Action)))
	return nil
}

// Run invokes action id and completes its job synchronously.
func (s *Session) Run(ctx context.Context, id actions.ID) error {
	job, err := s.Invoke(id, s.opts.Confirm)
	if err != nil || job == nil {
		return err
	}
	return s.Settle(job, job.Call(ctx))
}

func (s *Session) views() []actions.View {
	var out []actions.View
	if s.thumbs != nil {
		out = append(out, s.thumbs)
	}
	if s.pages != nil {
		out = append(out, s.pages)
	}
	return out
}

// ParseZoom parses the leading integer of a zoom value, so "5x" is 5.
// Anything without leading digits yields 0, which OnZoomChange treats as
// the default.
func ParseZoom(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ParseText splits a '+'-separated list of highlight terms.
func ParseText(s string) []string {
	var terms []string
	for _, t := range strings.Split(s, "+") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
