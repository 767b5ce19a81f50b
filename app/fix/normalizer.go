package fix

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pmlr/bibcheck/app/bib"
)

// Rename records one cite key change so the operator can rename any
// paper/supplementary files that carry the old key
type Rename struct {
	From string
	To   string
}

// IDNormalizer rewrites inproceedings cite keys containing non-ASCII
// runes to their closest ASCII form, suffixing with _1, _2, ... when the
// normalized key clashes with one already in the file.
type IDNormalizer struct {
	seen map[string]bool
}

// NewIDNormalizer creates a new normalizer for one entry sequence
func NewIDNormalizer() *IDNormalizer {
	return &IDNormalizer{seen: make(map[string]bool)}
}

// Run normalizes cite keys in place and returns the renames performed
func (n *IDNormalizer) Run(entries []*bib.Entry) []Rename {
	var renames []Rename

	for _, entry := range entries {
		if entry.Type != "inproceedings" || isASCII(entry.ID) {
			n.seen[entry.ID] = true
			continue
		}

		normalized := normalizeID(entry.ID)
		if normalized != entry.ID && normalized != "" {
			if n.seen[normalized] {
				unique := n.unique(normalized)
				slog.Warn("ID clash detected", "from", entry.ID, "to", unique)
				normalized = unique
			}
			slog.Warn("Normalized entry ID", "from", entry.ID, "to", normalized)
			renames = append(renames, Rename{From: entry.ID, To: normalized})
			entry.ID = normalized
		}
		n.seen[entry.ID] = true
	}

	return renames
}

// normalizeID decomposes the key with NFKD, strips combining marks, and
// drops whatever non-ASCII runes remain (those with no decomposition).
// The German eszett has no combining-mark decomposition and is mapped to
// "ss" up front.
func normalizeID(id string) string {
	id = strings.ReplaceAll(id, "ß", "ss")

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(t, id)
	if err != nil {
		return id
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (n *IDNormalizer) unique(base string) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !n.seen[candidate] {
			return candidate
		}
	}
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
