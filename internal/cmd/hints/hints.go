// Package hints provides actionable user guidance for CLI operations.
package hints

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/bomtally/internal/cmd/emoji"
	"github.com/agentstation/bomtally/internal/report"
)

// Hint represents actionable user guidance.
type Hint struct {
	Message string // Human-readable guidance message
	Command string // Optional specific command to run
}

// New creates a new hint with the given message.
func New(message string) *Hint {
	return &Hint{Message: message}
}

// NewCommand creates a new hint with a specific command.
func NewCommand(message, command string) *Hint {
	return &Hint{Message: message, Command: command}
}

// String renders the hint on one or two lines.
func (h *Hint) String() string {
	if h.Command == "" {
		return h.Message
	}
	return h.Message + "\n    " + h.Command
}

// ForReport returns the follow-ups a finished run suggests.
func ForReport(r *report.Report, unmatchedFile string) []*Hint {
	var out []*Hint
	if len(r.Unmatched) > 0 {
		msg := fmt.Sprintf("%d assembly codes have no lookup row and contributed nothing to the totals", len(r.Unmatched))
		if unmatchedFile != "" {
			out = append(out, NewCommand(msg+"; add them to the lookup table:", "cat "+unmatchedFile))
		} else {
			out = append(out, New(msg))
		}
	}
	if r.CountStats.NonNumeric > 0 {
		out = append(out, New(fmt.Sprintf("%d count rows had a non-numeric quantity and were skipped", r.CountStats.NonNumeric)))
	}
	if len(r.Totals) == 0 && r.CountStats.Kept > 0 {
		out = append(out, NewCommand("No material totals were produced; check the lookup columns:", "bomtally inspect <lookup-file>"))
	}
	return out
}

// Render writes hints to w, one block per hint.
func Render(w io.Writer, hs []*Hint) {
	for _, h := range hs {
		lines := strings.Split(h.String(), "\n")
		fmt.Fprintf(w, "%s %s\n", emoji.Info, lines[0])
		for _, l := range lines[1:] {
			fmt.Fprintln(w, l)
		}
	}
}
