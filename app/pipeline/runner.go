package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pmlr/bibcheck/app/bib"
	"github.com/pmlr/bibcheck/app/check"
	"github.com/pmlr/bibcheck/app/fix"
	"github.com/pmlr/bibcheck/app/rules"
)

// Result holds everything one run produced. Output is only meaningful
// when the run returned no error; a parse failure produces no output at all.
type Result struct {
	Entries     int
	Diagnostics []check.Diagnostic
	Renames     []fix.Rename
	Output      string
	Duration    time.Duration
}

// Runner owns the parse -> validate -> fix -> write sequence for one
// input. Validation never halts the pipeline: diagnostics are collected
// and carried in the Result so the operator sees every problem in one
// run. In strict mode a structural problem (zero or multiple proceedings
// entries) aborts before any fixing or output.
type Runner struct {
	parser    *bib.Parser
	validator *check.Validator
	fixer     *fix.Fixer
	writer    *bib.Writer
	strict    bool
}

// NewRunner creates a runner using the given rule set
func NewRunner(ruleSet *rules.Set, strict bool) *Runner {
	return &Runner{
		parser:    bib.NewParser(),
		validator: check.NewValidator(ruleSet),
		fixer:     fix.NewFixer(ruleSet),
		writer:    bib.NewWriter(),
		strict:    strict,
	}
}

// Run processes one input start to finish. Only an unparseable input (or
// a strict-mode structural problem) is an error; everything else is a
// diagnostic in the Result.
func (r *Runner) Run(ctx context.Context, input io.Reader) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	start := time.Now()

	entries, err := r.parser.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	diags := r.validator.Run(entries)

	if r.strict {
		for _, diag := range diags {
			if diag.Kind == check.KindStructural {
				return nil, fmt.Errorf("structural problem: %s", diag.Message)
			}
		}
	}

	r.fixer.Run(entries)
	renames := fix.NewIDNormalizer().Run(entries)

	result := &Result{
		Entries:     len(entries),
		Diagnostics: diags,
		Renames:     renames,
		Output:      r.writer.Run(entries),
		Duration:    time.Since(start),
	}

	slog.Info("Run completed",
		"entries", result.Entries,
		"diagnostics", len(result.Diagnostics),
		"renamed_ids", len(result.Renames),
		"duration", result.Duration)

	return result, nil
}
