package app

import (
	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/spf13/cobra"
)

func newCutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cut <doc-id> <page>...",
		Short: "Move pages to the server clipboard",
		Long: `Cut pages from a document onto the server clipboard. Paste them
into any document with 'pagectl paste'.

Examples:
  pagectl cut 42 2 4-6
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocID(args[0])
			if err != nil {
				return err
			}
			nums, err := parseNums(args[1:])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), headlessOptions(id, true))
			if err != nil {
				return explain(err)
			}
			if err := selectPages(s, nums); err != nil {
				return err
			}
			if err := s.Run(cmd.Context(), actions.CutPage); err != nil {
				return explain(err)
			}
			if b, has := s.Clipboard().Batch(); has {
				ok("Cut pages %v of document %s", b.Nums, b.DocID)
			}
			return nil
		},
	}
}
