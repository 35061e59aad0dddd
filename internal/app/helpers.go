package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/blackwell-systems/pagectl/internal/session"
	"github.com/fatih/color"
)

// parseDocID parses a document id argument.
func parseDocID(s string) (document.ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid document id %q", s)
	}
	return document.ID(n), nil
}

// parseNums parses page num arguments. "2-4" expands to 2, 3, 4.
func parseNums(args []string) ([]int, error) {
	var out []int
	for _, a := range args {
		lo, hi, isRange := strings.Cut(a, "-")
		from, err := strconv.Atoi(lo)
		if err != nil || from <= 0 {
			return nil, fmt.Errorf("invalid page number %q", a)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(hi); err != nil || to < from {
				return nil, fmt.Errorf("invalid page range %q", a)
			}
		}
		for n := from; n <= to; n++ {
			out = append(out, n)
		}
	}
	return out, nil
}

// promptConfirm asks a y/n question on stdin.
func promptConfirm(in io.Reader) actions.Confirmer {
	r := bufio.NewReader(in)
	return actions.ConfirmFunc(func(prompt string) bool {
		fmt.Print(color.YellowString(prompt) + " (y/n): ")
		line, _ := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}

// headlessOptions are the session options of a single-action command.
func headlessOptions(id document.ID, yes bool) session.Options {
	opts := session.Options{
		DocID:                 id,
		DefaultZoom:           cfg.Editor.EffectiveZoom(),
		MaxZoom:               cfg.Editor.EffectiveMaxZoom(),
		ClearClipboardOnPaste: cfg.Editor.ClearClipboardOnPaste,
		Logger:                logger,
	}
	if cfg.Editor.Confirm && !yes {
		opts.Confirm = promptConfirm(os.Stdin)
	}
	return opts
}

// openSession loads a document without views.
func openSession(ctx context.Context, opts session.Options) (*session.Session, error) {
	s := session.New(client, nil, nil, opts)
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// selectPages adds every num to the session selection.
func selectPages(s *session.Session, nums []int) error {
	for _, n := range nums {
		if s.Document().Page(n) == nil {
			return fmt.Errorf("document %s has no page %d", s.Document().ID(), n)
		}
		if !s.Selection().Has(n) {
			s.OnThumbnailToggle(n)
		}
	}
	return nil
}

// explain adds a hint for the error classes a user can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, actions.ErrAborted):
		warn("cancelled")
		return nil
	case errors.Is(err, api.ErrMissingCSRFToken):
		return fmt.Errorf("%w (set PAGECTL_CSRF_TOKEN)", err)
	case api.IsTransient(err):
		return fmt.Errorf("%w (server unavailable, try again)", err)
	}
	return err
}
