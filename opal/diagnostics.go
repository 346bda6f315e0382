// diagnostics.go — non-fatal warning sink.
//
// The teacher gates verbose diagnostics behind a DebuggingMode flag read
// from MSGDEBUG (debug_spans.go) and writes plain fmt.Fprintf lines to
// os.Stderr. This core keeps an env-var-seeded flag (VerboseDiagnostics)
// but does not gate warnings on it, and renders
// through github.com/pterm/pterm (grounded on npillmayer-gorgo, which
// uses pterm throughout its own diagnostic output) so a warning reads as
// a warning and a fatal error path never has to share a writer with it.
//
// Warnings never abort translation; only a panic'd *TranslateError does
// that.
package opal

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// VerboseDiagnostics mirrors the teacher's DebuggingMode: seeded from the
// OPAL_DEBUG environment variable at process start, overridable by
// hosts/tests. Nothing in this package reads it: warn delivers every
// warning to the configured Warner whatever its value.
var VerboseDiagnostics = os.Getenv("OPAL_DEBUG") != ""

// Warner receives non-fatal diagnostics. Tests substitute a capturing
// Warner; the default prints through pterm.
type Warner interface {
	Warn(file string, line int, message string)
}

type pTermWarner struct{}

func (pTermWarner) Warn(file string, line int, message string) {
	pterm.Warning.Printfln("%s :%s:%d", message, file, line)
}

// DefaultWarner is used whenever Options.Warner is left nil.
var DefaultWarner Warner = pTermWarner{}

// warn reports a single-line, non-fatal diagnostic through the Emitter's
// configured Warner, without aborting translation.
func (e *Emitter) warn(line int, format string, args ...any) {
	w := e.opts.Warner
	if w == nil {
		w = DefaultWarner
	}
	w.Warn(e.opts.File, line, fmt.Sprintf(format, args...))
}

// CollectingWarner is a Warner that records messages instead of printing
// them; used by tests that assert on warning content/order.
type CollectingWarner struct {
	Messages []string
}

func (c *CollectingWarner) Warn(file string, line int, message string) {
	c.Messages = append(c.Messages, fmt.Sprintf("%s :%s:%d", message, file, line))
}
