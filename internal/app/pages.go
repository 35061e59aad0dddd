package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/document"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// documentListing is the -o yaml/json shape of one document.
type documentListing struct {
	ID    document.ID      `json:"id" yaml:"id"`
	Title string           `json:"title" yaml:"title"`
	Pages []*document.Page `json:"pages" yaml:"pages"`
}

func newPagesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pages <doc-id>...",
		Short: "List the pages of one or more documents",
		Example: `  pagectl pages 42
  pagectl pages 42 43 -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]document.ID, len(args))
			for i, a := range args {
				id, err := parseDocID(a)
				if err != nil {
					return err
				}
				ids[i] = id
			}

			docs := make([]*document.Document, len(ids))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(4)
			for i, id := range ids {
				g.Go(func() error {
					doc, err := client.Document(ctx, id)
					if err != nil {
						return err
					}
					docs[i] = doc
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return explain(err)
			}

			listings := make([]documentListing, len(docs))
			for i, d := range docs {
				listings[i] = documentListing{ID: d.ID(), Title: d.Node().Title, Pages: d.Pages()}
			}
			return printListings(cmd.OutOrStdout(), output, listings)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, yaml or json")
	return cmd
}

func printListings(w io.Writer, format string, listings []documentListing) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listings); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	case "table", "":
		for i, l := range listings {
			if i > 0 {
				fmt.Fprintln(w)
			}
			title := l.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintln(w, color.CyanString("Document %s: %s (%d pages)", l.ID, title, len(l.Pages)))
			fmt.Fprintf(w, "  %-5s %-5s %-12s %s\n", "NUM", "ORDER", "ID", "TEXT")
			for _, p := range l.Pages {
				first, _, _ := strings.Cut(strings.TrimSpace(p.Text), "\n")
				first = xansi.Truncate(first, 48, "…")
				fmt.Fprintf(w, "  %-5d %-5d %-12s %s\n", p.Num, p.Order, p.ID, first)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
