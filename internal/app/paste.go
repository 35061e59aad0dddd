package app

import (
	"fmt"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/spf13/cobra"
)

func newPasteCmd() *cobra.Command {
	var before, after int

	cmd := &cobra.Command{
		Use:   "paste <doc-id>",
		Short: "Paste the server clipboard into a document",
		Long: `Paste the pages on the server clipboard into a document.

Without flags the server picks the position. --before and --after place
the pages next to the given page.

Examples:
  pagectl paste 43
  pagectl paste 43 --after 5
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if before > 0 && after > 0 {
				return fmt.Errorf("--before and --after are mutually exclusive")
			}
			id, err := parseDocID(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), headlessOptions(id, true))
			if err != nil {
				return explain(err)
			}

			action := actions.PastePage
			switch {
			case before > 0:
				action = actions.PastePageBefore
				err = selectPages(s, []int{before})
			case after > 0:
				action = actions.PastePageAfter
				err = selectPages(s, []int{after})
			}
			if err != nil {
				return err
			}

			if err := s.Run(cmd.Context(), action); err != nil {
				return explain(err)
			}
			ok("Pasted into document %s (%d pages)", id, s.Document().Len())
			return nil
		},
	}

	cmd.Flags().IntVar(&before, "before", 0, "Paste before this page")
	cmd.Flags().IntVar(&after, "after", 0, "Paste after this page")
	return cmd
}
