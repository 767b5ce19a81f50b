package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithoutFile(t *testing.T) {
	loader := NewLoader("")
	set, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	if len(set.Required["proceedings"]) == 0 {
		t.Error("Expected built-in proceedings required fields")
	}
	if len(set.Substitutions) == 0 {
		t.Error("Expected built-in substitution table")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	tempDir := t.TempDir()

	content := `
required:
  inproceedings:
    - title
    - author
    - pages
    - abstract
    - video

substitutions:
  - from: "†"
    to: "$\\dagger$"
`

	path := filepath.Join(tempDir, "rules.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	set, err := loader.Load()
	if err != nil {
		t.Fatal(err)
	}

	inproceedings := set.Required["inproceedings"]
	if len(inproceedings) != 5 {
		t.Fatalf("Expected 5 inproceedings required fields, got %d", len(inproceedings))
	}
	if inproceedings[4] != "video" {
		t.Errorf("Expected last required field 'video', got '%s'", inproceedings[4])
	}

	// Proceedings list stays untouched
	if len(set.Required["proceedings"]) != 10 {
		t.Errorf("Expected 10 proceedings required fields, got %d", len(set.Required["proceedings"]))
	}

	// File substitutions are appended after the built-in table
	last := set.Substitutions[len(set.Substitutions)-1]
	if last.From != "†" || last.To != `$\dagger$` {
		t.Errorf("Expected appended substitution for dagger, got %q -> %q", last.From, last.To)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader("/nonexistent/rules.yml")
	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for missing rules file")
	}
}

func TestLoadInvalidOverrides(t *testing.T) {
	tempDir := t.TempDir()

	content := `
required:
  inproceedings: []
`

	path := filepath.Join(tempDir, "rules.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for empty required field list")
	}
}

func TestLoadUnparseableFile(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "rules.yml")
	if err := os.WriteFile(path, []byte("required: [not: valid"), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(path)
	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for unparseable YAML")
	}
}
