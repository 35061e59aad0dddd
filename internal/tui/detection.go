package tui

import (
	"os"

	"github.com/blackwell-systems/pagectl/internal/util"
)

// Interactive reports whether both stdin and stdout are terminals, which
// the full-screen editor needs.
func Interactive() bool {
	return util.IsTTY() && util.IsTerminal(os.Stdin)
}
