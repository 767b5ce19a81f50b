package rules

// Pair is one literal substring substitution. Pairs are applied as plain
// string replacement in table order, not as regular expressions.
type Pair struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Set holds the active validation and substitution rules for a run
type Set struct {
	Required      map[string][]string // entry type -> required field names, in report order
	Substitutions []Pair              // Unicode -> LaTeX escape sequences
	Ligatures     []Pair              // PDF ligatures -> ASCII expansions
}
