package report

import (
	"fmt"
	"io"

	"github.com/pmlr/bibcheck/app/check"
)

// Reporter writes diagnostics to the operator-facing output, grouped by
// entry for readability. It never alters program flow; the returned count
// is the caller's exit-status signal.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Run emits every diagnostic plus a summary line and returns the number
// of diagnostics emitted
func (r *Reporter) Run(entryCount int, diags []check.Diagnostic) int {
	if len(diags) == 0 {
		fmt.Fprintf(r.out, "Checked %d entries, no problems found\n", entryCount)
		return 0
	}

	// Group by entry, preserving first-seen order
	var order []string
	grouped := make(map[string][]check.Diagnostic)
	for _, diag := range diags {
		key := diag.EntryID
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], diag)
	}

	for _, key := range order {
		label := key
		if label == "" {
			label = "(file)"
		}
		fmt.Fprintf(r.out, "%s:\n", label)
		for _, diag := range grouped[key] {
			fmt.Fprintf(r.out, "  - %s\n", diag.Message)
		}
	}

	fmt.Fprintf(r.out, "\nChecked %d entries, found %d problem(s)\n", entryCount, len(diags))
	return len(diags)
}
