package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/blackwell-systems/pagectl/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// move is one NUM:up or NUM:down step.
type move struct {
	num int
	dir document.Direction
}

func parseMoves(args []string) ([]move, error) {
	out := make([]move, 0, len(args))
	for _, a := range args {
		n, d, found := strings.Cut(a, ":")
		num, err := strconv.Atoi(n)
		if !found || err != nil || num <= 0 {
			return nil, fmt.Errorf("invalid move %q, want NUM:up or NUM:down", a)
		}
		switch strings.ToLower(d) {
		case "up", "u":
			out = append(out, move{num, document.Up})
		case "down", "d":
			out = append(out, move{num, document.Down})
		default:
			return nil, fmt.Errorf("invalid direction in %q, want up or down", a)
		}
	}
	return out, nil
}

func newReorderCmd() *cobra.Command {
	var (
		dryRun      bool
		skipConfirm bool
	)

	cmd := &cobra.Command{
		Use:   "reorder <doc-id> <num:up|down>...",
		Short: "Move pages and apply the new order",
		Long: `Move pages one slot at a time, then submit the resulting order.

Moves are applied left to right; page numbers refer to the pages as
loaded.

Examples:
  pagectl reorder 42 3:up 3:up
  pagectl reorder 42 1:down --dry-run
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseDocID(args[0])
			if err != nil {
				return err
			}
			moves, err := parseMoves(args[1:])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), headlessOptions(id, skipConfirm))
			if err != nil {
				return explain(err)
			}
			for _, mv := range moves {
				kind := session.MoveDown
				if mv.dir == document.Up {
					kind = session.MoveUp
				}
				p := s.Document().Page(mv.num)
				if p == nil {
					return fmt.Errorf("document %s has no page %d", id, mv.num)
				}
				if err := s.Handle(session.PageEvent(kind, p)); err != nil {
					return err
				}
			}

			if !s.Document().Pending() {
				warn("moves leave the order unchanged, nothing to apply")
				return nil
			}
			if dryRun {
				header("Reorder payload for document %s", id)
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(s.Document().ReorderPayload())
			}

			if err := s.Run(cmd.Context(), actions.ApplyReorder); err != nil {
				return explain(err)
			}
			ok("Applied new page order to document %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the payload instead of sending it")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}
