package check

// Kind classifies a diagnostic for reporting and run history
type Kind string

const (
	// KindStructural covers file-level problems: zero or multiple proceedings entries
	KindStructural Kind = "structural"
	// KindMissingField covers a required field that is absent or blank
	KindMissingField Kind = "missing_field"
	// KindBadID covers cite keys containing characters that break BibTeX
	KindBadID Kind = "bad_id"
	// KindBadURL covers fields expected to hold a single http(s) URL
	KindBadURL Kind = "bad_url"
)

// Diagnostic is one validation failure. Diagnostics are advisory: they are
// collected and reported, never raised as errors, so a single run always
// surfaces every problem in the file.
type Diagnostic struct {
	Kind    Kind
	EntryID string // cite key of the affected entry, empty for file-level problems
	Field   string // offending field, if any
	Message string
}
