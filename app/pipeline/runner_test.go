package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/pmlr/bibcheck/app/check"
	"github.com/pmlr/bibcheck/app/rules"
)

const testProceedings = `@Proceedings{corl2024,
  booktitle = {Conference on Robot Learning},
  name = {Conference on Robot Learning},
  shortname = {CoRL},
  year = {2024},
  editor = {Some Editor},
  volume = {1},
  start = {2024-01-01},
  end = {2024-01-05},
  address = {Virtual Conference},
  conference_url = {https://corl2024.org},
}

`

func newRunner(strict bool) *Runner {
	return NewRunner(rules.Defaults(), strict)
}

func TestRunnerCleanFile(t *testing.T) {
	input := testProceedings + `@InProceedings{smith24,
  title = {A Study of Things},
  author = {Smith, Jane},
  pages = {1-10},
  abstract = {We study things.},
}`

	result, err := newRunner(false).Run(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if result.Entries != 2 {
		t.Errorf("Expected 2 entries, got %d", result.Entries)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", result.Diagnostics)
	}
	if len(result.Renames) != 0 {
		t.Errorf("Expected no renames, got %v", result.Renames)
	}
	if !strings.Contains(result.Output, "@Proceedings{corl2024,") {
		t.Errorf("Output missing proceedings entry:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "title = {A Study of Things},") {
		t.Errorf("Output missing title:\n%s", result.Output)
	}
}

func TestRunnerFixesAndDiagnoses(t *testing.T) {
	input := testProceedings + `@InProceedings{mueller24,
  title = {Über den Glühwürmchen},
  author = {Müller, Jürgen},
  abstract = {An em dash — at 50% rate},
}`

	result, err := newRunner(false).Run(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	// Missing pages is reported, processing continues
	var missing []check.Diagnostic
	for _, diag := range result.Diagnostics {
		if diag.Kind == check.KindMissingField {
			missing = append(missing, diag)
		}
	}
	if len(missing) != 1 || missing[0].Field != "pages" {
		t.Errorf("Expected one missing-field diagnostic for 'pages', got %v", result.Diagnostics)
	}

	// Title and abstract are fixed, the author field is untouched
	if !strings.Contains(result.Output, `title = {{\"{U}}ber den Gl{\"{u}}hw{\"{u}}rmchen},`) {
		t.Errorf("Title not fixed in output:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, `abstract = {An em dash --- at 50\% rate},`) {
		t.Errorf("Abstract not fixed in output:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "author = {Müller, Jürgen},") {
		t.Errorf("Author field must pass through untouched:\n%s", result.Output)
	}
}

func TestRunnerParseFailure(t *testing.T) {
	_, err := newRunner(false).Run(context.Background(), strings.NewReader("@InProceedings{broken"))
	if err == nil {
		t.Fatal("Expected error for unparseable input")
	}
}

func TestRunnerStrictMode(t *testing.T) {
	input := `@InProceedings{smith24,
  title = {A Study},
  author = {Smith},
  pages = {1-10},
  abstract = {Abstract.},
}`

	// Non-strict: diagnostic, run succeeds
	result, err := newRunner(false).Run(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != check.KindStructural {
		t.Errorf("Expected one structural diagnostic, got %v", result.Diagnostics)
	}

	// Strict: structural problem aborts the run
	if _, err := newRunner(true).Run(context.Background(), strings.NewReader(input)); err == nil {
		t.Error("Expected strict mode to fail on missing proceedings entry")
	}
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newRunner(false).Run(ctx, strings.NewReader(testProceedings)); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
