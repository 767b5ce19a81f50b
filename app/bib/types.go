package bib

// Entry represents a single bibliographic record
type Entry struct {
	Type   string            // entry type tag, lower-cased ("proceedings", "inproceedings")
	ID     string            // cite key
	Fields map[string]string // field name (lower-cased) -> value
}

// Get returns the value of a field, or "" when absent
func (e *Entry) Get(name string) string {
	return e.Fields[name]
}

// Set replaces the value of a field in place
func (e *Entry) Set(name, value string) {
	e.Fields[name] = value
}

// Label returns an identifier suitable for operator-facing messages,
// preferring the cite key and falling back to the title
func (e *Entry) Label() string {
	if e.ID != "" {
		return e.ID
	}
	if title := e.Fields["title"]; title != "" {
		return title
	}
	return "unknown"
}
