package fix

import (
	"strings"

	"github.com/pmlr/bibcheck/app/bib"
	"github.com/pmlr/bibcheck/app/rules"
)

// targetFields are the free-text fields rewritten by the fixer. Other
// fields pass through unmodified, as does the proceedings entry.
var targetFields = []string{"title", "abstract"}

// Fixer rewrites Unicode characters and typographic punctuation in
// inproceedings titles and abstracts into LaTeX-safe equivalents and
// escapes reserved characters. It is total over any string input and
// idempotent: a second pass over fixed text is a no-op.
type Fixer struct {
	rules *rules.Set
}

// NewFixer creates a new fixer using the given rule set
func NewFixer(ruleSet *rules.Set) *Fixer {
	return &Fixer{rules: ruleSet}
}

// Run applies the substitution tables to the target fields of every
// inproceedings entry, mutating the entries in place
func (f *Fixer) Run(entries []*bib.Entry) {
	for _, entry := range entries {
		if entry.Type != "inproceedings" {
			continue
		}
		for _, field := range targetFields {
			value, ok := entry.Fields[field]
			if !ok {
				continue
			}
			entry.Set(field, f.FixValue(value))
		}
	}
}

// FixValue transforms a single field value: whitespace is collapsed, the
// substitution and ligature tables are applied in order as plain substring
// replacement, then reserved characters are escaped. Each pair runs in a
// single non-recursive pass, but its output is seen by later pairs, so
// table order is part of the contract.
func (f *Fixer) FixValue(value string) string {
	value = collapseWhitespace(value)

	for _, pair := range f.rules.Substitutions {
		value = strings.ReplaceAll(value, pair.From, pair.To)
	}
	for _, pair := range f.rules.Ligatures {
		value = strings.ReplaceAll(value, pair.From, pair.To)
	}

	return escapeReserved(value)
}

// collapseWhitespace folds runs of whitespace, including the newlines
// BibTeX sources use to wrap long values, into single spaces
func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// escapeReserved prefixes every % and & not already preceded by a
// backslash with one. Already-escaped characters are left alone, which
// keeps the whole fixer idempotent.
func escapeReserved(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	var prev rune
	for _, r := range value {
		if (r == '%' || r == '&') && prev != '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
		prev = r
	}

	return b.String()
}
