package app

import (
	"fmt"

	"github.com/blackwell-systems/pagectl/internal/session"
	"github.com/blackwell-systems/pagectl/internal/tui"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var (
		startPage int
		text      string
		zoom      string
	)

	cmd := &cobra.Command{
		Use:   "edit <doc-id>",
		Short: "Open the interactive page editor",
		Long: `Open a document in the interactive editor.

The left panel lists pages; the right panel shows their text. Select
pages with enter/space, move them with J/K, and press 'a' for the
actions menu. Moves stay local until applied with 's'.

Examples:
  pagectl edit 42
  pagectl edit 42 --page 7 --text "invoice+total"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocID(args[0])
			if err != nil {
				return err
			}
			if !tui.Interactive() {
				return fmt.Errorf("edit needs a terminal; use pages, delete, cut, paste or reorder in scripts")
			}

			thumbs := tui.NewThumbnailPanel("Pages")
			pages := tui.NewPagePanel()
			dialogs := tui.NewDialogs()
			sess := session.New(client, thumbs, pages, session.Options{
				DocID:                 id,
				StartPage:             startPage,
				Text:                  session.ParseText(text),
				DefaultZoom:           cfg.Editor.EffectiveZoom(),
				MaxZoom:               cfg.Editor.EffectiveMaxZoom(),
				ClearClipboardOnPaste: cfg.Editor.ClearClipboardOnPaste,
				Dialogs:               dialogs,
				Logger:                logger,
			})
			if zoom != "" {
				sess.OnZoomChange(session.ParseZoom(zoom))
			}

			m := tui.NewEditor(cmd.Context(), sess, thumbs, pages, dialogs, tui.EditorOptions{
				Confirm: cfg.Editor.Confirm,
			})
			return tui.Run(cmd.Context(), m)
		},
	}

	cmd.Flags().IntVar(&startPage, "page", 0, "Page to scroll to and highlight")
	cmd.Flags().StringVar(&text, "text", "", "Terms to highlight, separated by '+'")
	cmd.Flags().StringVar(&zoom, "zoom", "", "Initial zoom level")
	return cmd
}
