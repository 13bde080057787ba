// Package report formats solver verdicts in the DIMACS-adjacent textual
// convention used by SAT competition tooling: a single "s" status line,
// an optional "v" value line listing the model, and "c" comment lines
// for statistics.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kalbasit/cdclsat/internal/sat"
)

// Stats holds the counters surfaced as "c" comment lines.
type Stats struct {
	Decisions    int
	Propagations int
	Conflicts    int
	Elapsed      string
}

// Write formats status, an optional model, and stats to w.
func Write(w io.Writer, status sat.Status, model []bool, stats Stats) error {
	if _, err := fmt.Fprintf(w, "c decisions:    %d\n", stats.Decisions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "c propagations: %d\n", stats.Propagations); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "c conflicts:    %d\n", stats.Conflicts); err != nil {
		return err
	}
	if stats.Elapsed != "" {
		if _, err := fmt.Fprintf(w, "c time:         %s\n", stats.Elapsed); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "s %s\n", statusLine(status)); err != nil {
		return err
	}

	if status == sat.Satisfiable {
		if _, err := fmt.Fprintf(w, "v %s\n", modelLine(model)); err != nil {
			return err
		}
	}
	return nil
}

// statusLine maps a Status to the three-way verdict spec §7 requires:
// SAT and UNSAT are definite answers, anything else (internal error,
// interruption) is reported as indeterminate rather than silently folded
// into UNSATISFIABLE.
func statusLine(status sat.Status) string {
	switch status {
	case sat.Satisfiable:
		return "SATISFIABLE"
	case sat.Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "INDETERMINATE"
	}
}

// WriteModel writes just a "v ..." model line, with no status or stats
// lines. Used when --all prints more than one model: only the first gets
// the full header.
func WriteModel(w io.Writer, model []bool) error {
	_, err := fmt.Fprintf(w, "v %s\n", modelLine(model))
	return err
}

func modelLine(model []bool) string {
	lits := make([]string, len(model))
	for v, val := range model {
		if val {
			lits[v] = fmt.Sprintf("%d", v+1)
		} else {
			lits[v] = fmt.Sprintf("-%d", v+1)
		}
	}
	return strings.Join(lits, " ") + " 0"
}
