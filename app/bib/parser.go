package bib

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nickng/bibtex"
)

// Parser handles parsing of BibTeX entry files
type Parser struct{}

// NewParser creates a new BibTeX parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses BibTeX data and returns the entries in file order.
// A syntax error is fatal to the run: no entries are returned.
func (p *Parser) Parse(r io.Reader) ([]*Entry, error) {
	bt, err := bibtex.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bibtex: %w", err)
	}

	entries := make([]*Entry, 0, len(bt.Entries))
	for _, raw := range bt.Entries {
		entry := &Entry{
			Type:   strings.ToLower(raw.Type),
			ID:     raw.CiteName,
			Fields: make(map[string]string, len(raw.Fields)),
		}
		for name, value := range raw.Fields {
			entry.Fields[strings.ToLower(name)] = value.String()
		}
		entries = append(entries, entry)
	}

	slog.Debug("Parsed bibtex input", "entries", len(entries))
	return entries, nil
}
