package actions

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/document"
	"go.uber.org/zap"
)

// Builtins returns the standard actions in menu order.
func Builtins() []Action {
	return []Action{
		renameAction{},
		deletePageAction{},
		cutPageAction{},
		pastePageAction{},
		pasteBeforeAction{},
		pasteAfterAction{},
		metadataAction{},
		applyReorderAction{},
	}
}

type renameAction struct{}

func (renameAction) ID() ID { return Rename }
func (renameAction) Label() string { return "Rename" }
func (renameAction) Enabled(_ *Env) bool { return true }

func (renameAction) Run(env *Env) (*Job, error) {
	if env.Dialogs != nil {
		env.Dialogs.Rename(env.Doc.Node())
	}
	return nil, nil
}

// deletePageAction removes the selected pages. Deleting is by num, so it is
// refused while any selected page has an unapplied order change.
type deletePageAction struct{}

func (deletePageAction) ID() ID { return DeletePage }
func (deletePageAction) Label() string { return "Delete" }

func (deletePageAction) Enabled(env *Env) bool {
	return env.Selection.Len() > 0 && !env.Selection.AnyReordered()
}

func (deletePageAction) Prompt(env *Env) string {
	return fmt.Sprintf("Delete %d page(s)? Are you sure?", env.Selection.Len())
}

func (deletePageAction) Run(env *Env) (*Job, error) {
	docID := ownerOf(env)
	nums := env.Selection.Nums()

	// Local state is updated before the request; settle undoes it on failure.
	for _, v := range env.views() {
		v.DeleteSelected(env.Selection)
	}
	removed := env.Doc.Remove(nums)
	env.Selection.Clear()

	return &Job{
		Action: DeletePage,
		call: func(ctx context.Context) error {
			return env.Backend.DeletePages(ctx, docID, nums)
		},
		settle: func(err error) error {
			if err == nil {
				return nil
			}
			env.logger().Warn("delete failed, restoring pages",
				zap.Ints("pages", nums), zap.Error(err))
			env.Doc.Restore(removed)
			for _, v := range env.views() {
				v.Load(env.Doc.Pages())
			}
			return err
		},
	}, nil
}

// cutPageAction sends the selection to the server clipboard and remembers
// what was sent once the server accepted it.
type cutPageAction struct{}

func (cutPageAction) ID() ID { return CutPage }
func (cutPageAction) Label() string { return "Cut" }

func (cutPageAction) Enabled(env *Env) bool {
	return env.Selection.Len() > 0
}

func (cutPageAction) Run(env *Env) (*Job, error) {
	docID := ownerOf(env)
	nums := env.Selection.Nums()
	return &Job{
		Action: CutPage,
		call: func(ctx context.Context) error {
			return env.Backend.CutPages(ctx, docID, nums)
		},
		settle: func(err error) error {
			if err != nil {
				return err
			}
			env.Clipboard.Store(docID, nums)
			return nil
		},
	}, nil
}

type pastePageAction struct{}

func (pastePageAction) ID() ID { return PastePage }
func (pastePageAction) Label() string { return "Paste" }
func (pastePageAction) Enabled(_ *Env) bool { return true }

func (pastePageAction) Run(env *Env) (*Job, error) {
	return pasteJob(env, PastePage, api.Placement{}), nil
}

type pasteBeforeAction struct{}

func (pasteBeforeAction) ID() ID { return PastePageBefore }
func (pasteBeforeAction) Label() string { return "Paste before" }

func (pasteBeforeAction) Enabled(env *Env) bool {
	return env.Selection.Len() == 1
}

func (pasteBeforeAction) Run(env *Env) (*Job, error) {
	at := api.Placement{Anchor: api.AnchorBefore, Num: env.Selection.First().Num}
	return pasteJob(env, PastePageBefore, at), nil
}

type pasteAfterAction struct{}

func (pasteAfterAction) ID() ID { return PastePageAfter }
func (pasteAfterAction) Label() string { return "Paste after" }

func (pasteAfterAction) Enabled(env *Env) bool {
	return env.Selection.Len() == 1
}

func (pasteAfterAction) Run(env *Env) (*Job, error) {
	at := api.Placement{Anchor: api.AnchorAfter, Num: env.Selection.First().Num}
	return pasteJob(env, PastePageAfter, at), nil
}

// pasteJob pastes into the current document and then re-reads its pages:
// only the server knows where the pasted pages landed.
func pasteJob(env *Env, id ID, at api.Placement) *Job {
	target := env.Doc.ID()
	var (
		fresh     *document.Document
		reloadErr error
	)
	return &Job{
		Action: id,
		call: func(ctx context.Context) error {
			if err := env.Backend.Paste(ctx, target, at); err != nil {
				return err
			}
			fresh, reloadErr = env.Backend.Document(ctx, target)
			return nil
		},
		settle: func(err error) error {
			if err != nil {
				return err
			}
			if env.ClearClipboardOnPaste {
				env.Clipboard.Clear()
			}
			if reloadErr != nil {
				return fmt.Errorf("pasted, but reloading pages failed: %w", reloadErr)
			}
			if env.Doc.Pending() {
				// A reload would discard the staged order.
				env.logger().Warn("skipping reload after paste, reorder pending",
					zap.Stringer("doc", target))
				return nil
			}
			env.Doc.Replace(fresh.Pages())
			env.Selection.Prune(env.Doc)
			for _, v := range env.views() {
				v.Load(env.Doc.Pages())
			}
			return nil
		},
	}
}

type metadataAction struct{}

func (metadataAction) ID() ID { return Metadata }
func (metadataAction) Label() string { return "Metadata" }

func (metadataAction) Enabled(env *Env) bool {
	return env.Selection.Len() == 1
}

func (metadataAction) Run(env *Env) (*Job, error) {
	if env.Dialogs != nil {
		env.Dialogs.Metadata(env.Selection.First())
	}
	return nil, nil
}

// applyReorderAction submits the staged order of every page. Local nums only
// change once the server confirmed; at most one request is in flight.
type applyReorderAction struct{}

func (applyReorderAction) ID() ID { return ApplyReorder }
func (applyReorderAction) Label() string { return "Apply reorder changes" }

func (applyReorderAction) Enabled(env *Env) bool {
	return !env.Doc.Applying() && env.Doc.Pending()
}

func (applyReorderAction) Prompt(_ *Env) string {
	return "Apply the new page order? Are you sure?"
}

func (applyReorderAction) Run(env *Env) (*Job, error) {
	if !env.Doc.BeginApply() {
		return nil, ErrActionDisabled
	}
	docID := env.Doc.ID()
	entries := env.Doc.ReorderPayload()
	return &Job{
		Action: ApplyReorder,
		call: func(ctx context.Context) error {
			return env.Backend.ApplyReorder(ctx, docID, entries)
		},
		settle: func(err error) error {
			env.Doc.EndApply()
			if err != nil {
				return err
			}
			env.Doc.CommitReorder(entries)
			env.Selection.Clear()
			for _, v := range env.views() {
				v.ClearSelections()
				v.Load(env.Doc.Pages())
			}
			return nil
		},
	}, nil
}

// ownerOf returns the document the selected pages belong to.
func ownerOf(env *Env) document.ID {
	if p := env.Selection.First(); p != nil && p.DocID != 0 {
		return p.DocID
	}
	return env.Doc.ID()
}
