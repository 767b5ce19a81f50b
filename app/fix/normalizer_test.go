package fix

import (
	"testing"

	"github.com/pmlr/bibcheck/app/bib"
)

func inproceedingsWithID(id string) *bib.Entry {
	return &bib.Entry{
		Type:   "inproceedings",
		ID:     id,
		Fields: map[string]string{"title": "Test Title"},
	}
}

func TestIDNormalizer_Unicode(t *testing.T) {
	entries := []*bib.Entry{
		inproceedingsWithID("müller24"),
		inproceedingsWithID("größe24"),
	}

	renames := NewIDNormalizer().Run(entries)

	if len(renames) != 2 {
		t.Fatalf("Expected 2 renames, got %d", len(renames))
	}
	if entries[0].ID != "muller24" {
		t.Errorf("Expected 'muller24', got '%s'", entries[0].ID)
	}
	if entries[1].ID != "grosse24" {
		t.Errorf("Expected 'grosse24', got '%s'", entries[1].ID)
	}
	if renames[0].From != "müller24" || renames[0].To != "muller24" {
		t.Errorf("Unexpected rename record: %+v", renames[0])
	}
}

func TestIDNormalizer_ASCIIUntouched(t *testing.T) {
	entries := []*bib.Entry{
		inproceedingsWithID("smith24"),
		inproceedingsWithID("el-agroudi24"),
	}

	renames := NewIDNormalizer().Run(entries)

	if len(renames) != 0 {
		t.Errorf("Expected no renames, got %d", len(renames))
	}
	if entries[0].ID != "smith24" || entries[1].ID != "el-agroudi24" {
		t.Error("ASCII IDs must not change")
	}
}

func TestIDNormalizer_ClashGetsSuffix(t *testing.T) {
	entries := []*bib.Entry{
		inproceedingsWithID("muller24"),
		inproceedingsWithID("müller24"),
	}

	renames := NewIDNormalizer().Run(entries)

	if len(renames) != 1 {
		t.Fatalf("Expected 1 rename, got %d", len(renames))
	}
	if entries[1].ID != "muller24_1" {
		t.Errorf("Expected 'muller24_1', got '%s'", entries[1].ID)
	}
}

func TestIDNormalizer_SkipsProceedings(t *testing.T) {
	entry := &bib.Entry{
		Type:   "proceedings",
		ID:     "jürgen2024",
		Fields: map[string]string{},
	}

	renames := NewIDNormalizer().Run([]*bib.Entry{entry})

	if len(renames) != 0 {
		t.Errorf("Expected no renames for proceedings entry, got %d", len(renames))
	}
	if entry.ID != "jürgen2024" {
		t.Errorf("Proceedings ID must not change, got '%s'", entry.ID)
	}
}

func TestIDNormalizer_StripsUndecomposableRunes(t *testing.T) {
	entries := []*bib.Entry{inproceedingsWithID("jørgensen24")}

	NewIDNormalizer().Run(entries)

	// ø has no combining-mark decomposition and is dropped entirely
	if entries[0].ID != "jrgensen24" {
		t.Errorf("Expected 'jrgensen24', got '%s'", entries[0].ID)
	}
}
