// Package actions implements the document actions menu: each action pairs
// an enablement predicate over the editing state with an effect.
package actions

import (
	"context"
	"errors"

	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/document"
	"go.uber.org/zap"
)

// ID names an action. IDs double as menu keys.
type ID string

const (
	Rename          ID = "rename"
	DeletePage      ID = "delete-page"
	CutPage         ID = "cut-page"
	PastePage       ID = "paste-page"
	PastePageBefore ID = "paste-page-before"
	PastePageAfter  ID = "paste-page-after"
	Metadata        ID = "metadata"
	ApplyReorder    ID = "apply-reorder-changes"
)

var (
	// ErrActionDisabled is returned when an action is run while its
	// predicate is false. The effect is never executed.
	ErrActionDisabled = errors.New("action is disabled")
	// ErrAborted is returned when the user declines the confirmation.
	ErrAborted = errors.New("aborted by user")
	// ErrUnknownAction is returned for an ID that is not registered.
	ErrUnknownAction = errors.New("unknown action")
)

// Action is one entry of the actions menu.
type Action interface {
	ID() ID
	Label() string
	Enabled(env *Env) bool
	// Run performs the synchronous part of the action against env and
	// returns the backend job, if any. It is only called when Enabled
	// returned true.
	Run(env *Env) (*Job, error)
}

// Confirming is implemented by actions that must be confirmed first.
type Confirming interface {
	Prompt(env *Env) string
}

// Backend is the request surface actions call. *api.Client satisfies it.
type Backend interface {
	Document(ctx context.Context, id document.ID) (*document.Document, error)
	DeletePages(ctx context.Context, id document.ID, nums []int) error
	CutPages(ctx context.Context, id document.ID, nums []int) error
	Paste(ctx context.Context, target document.ID, at api.Placement) error
	ApplyReorder(ctx context.Context, id document.ID, entries []document.ReorderEntry) error
}

// View is the part of a page view collaborator that actions mutate.
type View interface {
	DeleteSelected(sel *document.Selection)
	ClearSelections()
	Load(pages []*document.Page)
}

// Dialogs opens the modal forms some actions hand off to.
type Dialogs interface {
	Rename(node document.Node)
	Metadata(page *document.Page)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed approves every prompt. Use it once the user has already agreed.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// Env is the state an action is evaluated and run against.
type Env struct {
	Doc       *document.Document
	Selection *document.Selection
	Clipboard *document.Clipboard

	Thumbnails View
	Pages      View
	Dialogs    Dialogs
	Backend    Backend

	// ClearClipboardOnPaste empties the clipboard after a successful paste.
	ClearClipboardOnPaste bool

	Log *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// views returns the non-nil view collaborators.
func (e *Env) views() []View {
	var out []View
	for _, v := range []View{e.Thumbnails, e.Pages} {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Job is the backend half of an action. Call performs the request and may
// run off the event loop; Settle applies the outcome and must run on it.
type Job struct {
	Action ID
	call   func(ctx context.Context) error
	settle func(err error) error
}

// Call performs the backend request.
func (j *Job) Call(ctx context.Context) error {
	if j.call == nil {
		return nil
	}
	return j.call(ctx)
}

// Settle applies the result of Call to local state and returns the error
// to report, if any.
func (j *Job) Settle(err error) error {
	if j.settle == nil {
		return err
	}
	return j.settle(err)
}
