package bib

import (
	"bytes"
	"fmt"
	"sort"
)

// proceedingsFieldOrder is the display order for proceedings entries,
// matching the layout expected by the publishing pipeline.
var proceedingsFieldOrder = []string{
	"booktitle",
	"name",
	"shortname",
	"year",
	"editor",
	"volume",
	"start",
	"end",
	"published",
	"address",
	"conference_url",
	"conference_number",
}

// inproceedingsFieldOrder is the display order for inproceedings entries.
// Optional fields (section onwards) come after the required ones.
var inproceedingsFieldOrder = []string{
	"title",
	"author",
	"pages",
	"abstract",
	"section",
	"openreview",
	"software",
	"video",
}

var displayTypes = map[string]string{
	"proceedings":   "Proceedings",
	"inproceedings": "InProceedings",
}

// Writer serializes entries back to BibTeX text
type Writer struct{}

// NewWriter creates a new BibTeX writer
func NewWriter() *Writer {
	return &Writer{}
}

// Run serializes the entries in order, one blank line between them.
// Fields are written in the fixed display order for the entry type,
// then any remaining fields sorted by name.
func (w *Writer) Run(entries []*Entry) string {
	var buf bytes.Buffer

	for i, entry := range entries {
		if i > 0 {
			buf.WriteString("\n")
		}
		w.writeEntry(&buf, entry)
	}

	return buf.String()
}

func (w *Writer) writeEntry(buf *bytes.Buffer, entry *Entry) {
	buf.WriteString(fmt.Sprintf("@%s{%s,\n", w.displayType(entry.Type), entry.ID))

	written := make(map[string]bool, len(entry.Fields))
	for _, name := range w.fieldOrder(entry.Type) {
		if value, ok := entry.Fields[name]; ok {
			buf.WriteString(fmt.Sprintf("    %s = {%s},\n", name, value))
			written[name] = true
		}
	}

	// Remaining fields in sorted order for deterministic output
	remaining := make([]string, 0, len(entry.Fields))
	for name := range entry.Fields {
		if !written[name] {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(remaining)
	for _, name := range remaining {
		buf.WriteString(fmt.Sprintf("    %s = {%s},\n", name, entry.Fields[name]))
	}

	buf.WriteString("}\n")
}

func (w *Writer) fieldOrder(entryType string) []string {
	if entryType == "proceedings" {
		return proceedingsFieldOrder
	}
	return inproceedingsFieldOrder
}

func (w *Writer) displayType(entryType string) string {
	if display, ok := displayTypes[entryType]; ok {
		return display
	}
	return entryType
}
