package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pmlr/bibcheck/app/bib"
	"github.com/pmlr/bibcheck/app/rules"
)

// citeKeyPattern excludes only the characters that would break BibTeX
var citeKeyPattern = regexp.MustCompile(`^[^,{}()="#%~\\\s]+$`)

// softwareURLPattern requires a single http(s) URL with no whitespace or commas
var softwareURLPattern = regexp.MustCompile(`^https?://[^\s,]+$`)

// Validator checks entries against the required-field table. It is a pure
// function over its input: entries are never mutated, dropped, or skipped,
// and every failure becomes a Diagnostic.
type Validator struct {
	rules *rules.Set
}

// NewValidator creates a new validator using the given rule set
func NewValidator(ruleSet *rules.Set) *Validator {
	return &Validator{rules: ruleSet}
}

// Run validates the entry sequence and returns all diagnostics in report order
func (v *Validator) Run(entries []*bib.Entry) []Diagnostic {
	var diags []Diagnostic

	var proceedings []*bib.Entry
	for _, entry := range entries {
		if entry.Type == "proceedings" {
			proceedings = append(proceedings, entry)
		}
	}

	// Exactly one proceedings entry is expected per file. With more than
	// one, field checks run against the first in file order.
	switch {
	case len(proceedings) == 0:
		diags = append(diags, Diagnostic{
			Kind:    KindStructural,
			Message: "No proceedings entry found",
		})
	case len(proceedings) > 1:
		diags = append(diags, Diagnostic{
			Kind:    KindStructural,
			Message: fmt.Sprintf("Found %d proceedings entries, expected 1", len(proceedings)),
		})
	}

	if len(proceedings) > 0 {
		diags = append(diags, v.checkRequiredFields(proceedings[0])...)
	}

	for _, entry := range entries {
		if entry.Type != "inproceedings" {
			continue
		}
		diags = append(diags, v.checkRequiredFields(entry)...)
		diags = append(diags, v.checkCiteKey(entry)...)
		diags = append(diags, v.checkSoftwareURL(entry)...)
	}

	return diags
}

func (v *Validator) checkRequiredFields(entry *bib.Entry) []Diagnostic {
	var diags []Diagnostic

	for _, field := range v.rules.Required[entry.Type] {
		if strings.TrimSpace(entry.Get(field)) != "" {
			continue
		}
		diags = append(diags, Diagnostic{
			Kind:    KindMissingField,
			EntryID: entry.ID,
			Field:   field,
			Message: fmt.Sprintf("Missing or empty required field '%s' in entry %s", field, entry.Label()),
		})
	}

	return diags
}

func (v *Validator) checkCiteKey(entry *bib.Entry) []Diagnostic {
	if entry.ID == "" || citeKeyPattern.MatchString(entry.ID) {
		return nil
	}
	return []Diagnostic{{
		Kind:    KindBadID,
		EntryID: entry.ID,
		Message: fmt.Sprintf("Invalid ID format (contains illegal characters): %s", entry.ID),
	}}
}

func (v *Validator) checkSoftwareURL(entry *bib.Entry) []Diagnostic {
	software := entry.Get("software")
	if software == "" || softwareURLPattern.MatchString(strings.TrimSpace(software)) {
		return nil
	}
	return []Diagnostic{{
		Kind:    KindBadURL,
		EntryID: entry.ID,
		Field:   "software",
		Message: fmt.Sprintf("Software field should contain a single valid URL in entry %s", entry.Label()),
	}}
}
