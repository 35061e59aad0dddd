package app

import (
	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <doc-id> <page>...",
		Short: "Delete pages from a document",
		Long: `Delete pages from a document.

Pages are given by number; ranges like 3-5 are accepted.

Examples:
  pagectl delete 42 3
  pagectl delete 42 3-5 9 --yes
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

			s, err := openSession(cmd.Context(), headlessOptions(id, skipConfirm))
			if err != nil {
				return explain(err)
			}
			if err := selectPages(s, nums); err != nil {
				return err
			}
			if err := s.Run(cmd.Context(), actions.DeletePage); err != nil {
				return explain(err)
			}
			ok("Deleted %d page(s) from document %s", len(nums), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}
