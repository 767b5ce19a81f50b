package rules

// requiredFields lists the fields every entry of a given type must carry
// before the file is accepted by the publishing pipeline. Order is the
// order diagnostics are reported in.
var requiredFields = map[string][]string{
	"proceedings": {
		"booktitle",
		"name",
		"shortname",
		"year",
		"editor",
		"volume",
		"start",
		"end",
		"address",
		"conference_url",
	},
	"inproceedings": {
		"title",
		"author",
		"pages",
		"abstract",
	},
}

// substitutions maps Unicode characters and typographic punctuation to
// LaTeX escape sequences or ASCII equivalents. Applied in order as plain
// substring replacement; every replacement is pure ASCII while every
// source contains a non-ASCII rune, so no pair can ever re-match the
// output of another (covered by a test).
var substitutions = []Pair{
	// Diaeresis
	{"ä", `{\"{a}}`},
	{"ë", `{\"{e}}`},
	{"ï", `{\"{i}}`},
	{"ö", `{\"{o}}`},
	{"ü", `{\"{u}}`},
	{"ÿ", `{\"{y}}`},
	{"Ä", `{\"{A}}`},
	{"Ë", `{\"{E}}`},
	{"Ï", `{\"{I}}`},
	{"Ö", `{\"{O}}`},
	{"Ü", `{\"{U}}`},
	{"Ÿ", `{\"{Y}}`},
	{"ß", `\ss{}`},

	// Acute accents
	{"á", `{\'{a}}`},
	{"é", `{\'{e}}`},
	{"í", `{\'{i}}`},
	{"ó", `{\'{o}}`},
	{"ú", `{\'{u}}`},
	{"ý", `{\'{y}}`},
	{"Á", `{\'{A}}`},
	{"É", `{\'{E}}`},
	{"Í", `{\'{I}}`},
	{"Ó", `{\'{O}}`},
	{"Ú", `{\'{U}}`},
	{"Ý", `{\'{Y}}`},

	// Grave accents
	{"à", "{\\`{a}}"},
	{"è", "{\\`{e}}"},
	{"ì", "{\\`{i}}"},
	{"ò", "{\\`{o}}"},
	{"ù", "{\\`{u}}"},
	{"À", "{\\`{A}}"},
	{"È", "{\\`{E}}"},
	{"Ì", "{\\`{I}}"},
	{"Ò", "{\\`{O}}"},
	{"Ù", "{\\`{U}}"},

	// Circumflex
	{"â", `{\^{a}}`},
	{"ê", `{\^{e}}`},
	{"î", `{\^{i}}`},
	{"ô", `{\^{o}}`},
	{"û", `{\^{u}}`},
	{"Â", `{\^{A}}`},
	{"Ê", `{\^{E}}`},
	{"Î", `{\^{I}}`},
	{"Ô", `{\^{O}}`},
	{"Û", `{\^{U}}`},

	// Tilde
	{"ã", `{\~{a}}`},
	{"ñ", `{\~{n}}`},
	{"õ", `{\~{o}}`},
	{"Ã", `{\~{A}}`},
	{"Ñ", `{\~{N}}`},
	{"Õ", `{\~{O}}`},

	// Polish
	{"ą", `\k{a}`},
	{"ę", `\k{e}`},
	{"ć", `\'c`},
	{"ł", `\l{}`},
	{"ń", `\'n`},
	{"ś", `\'s`},
	{"ź", `\'z`},
	{"ż", `\.z`},
	{"Ą", `\k{A}`},
	{"Ę", `\k{E}`},
	{"Ć", `\'C`},
	{"Ł", `\L{}`},
	{"Ń", `\'N`},
	{"Ś", `\'S`},
	{"Ź", `\'Z`},
	{"Ż", `\.Z`},

	// Czech/Slovak
	{"ř", `\v{r}`},
	{"š", `\v{s}`},
	{"ť", `\v{t}`},
	{"ď", `\v{d}`},
	{"Ř", `\v{R}`},
	{"Š", `\v{S}`},
	{"Ť", `\v{T}`},
	{"Ď", `\v{D}`},

	// Danish/Norwegian
	{"ø", `\o{}`},
	{"å", `\aa{}`},
	{"Ø", `\O{}`},
	{"Å", `\AA{}`},

	// Quotation marks and dashes
	{"“", "``"}, // left double quote
	{"”", "''"}, // right double quote
	{"‘", "`"},  // left single quote
	{"’", "'"},  // right single quote
	{"‚", ","},  // low single quote
	{"„", ",,"}, // low double quote
	{"–", "--"}, // en-dash
	{"—", "---"}, // em-dash
	{"−", "-"},  // minus sign

	// Ligature vowels and inverted punctuation
	{"æ", `\ae{}`},
	{"Æ", `\AE{}`},
	{"œ", `\oe{}`},
	{"Œ", `\OE{}`},
	{"¡", "!`"},
	{"¿", "?`"},

	// Greek
	{"λ", `\lambda`},

	// Other characters seen in submitted abstracts
	{" ", " "}, // non-breaking space
	{"ç", `\c{c}`},
	{"ğ", `\u{g}`},
	{"≥", `$\geq$`},
}

// ligatures maps single-rune ligatures that PDF extraction merges back to
// their ASCII letter sequences
var ligatures = []Pair{
	{"ﬁ", "fi"},
	{"ﬂ", "fl"},
	{"ﬀ", "ff"},
	{"ﬃ", "ffi"},
	{"ﬄ", "ffl"},
	{"ﬅ", "ft"},
	{"ﬆ", "st"},
	{"Ꜳ", "AA"},
	{"ꜳ", "aa"},
	{"Ꜵ", "AO"},
	{"ꜵ", "ao"},
	{"Ꜷ", "AU"},
	{"ꜷ", "au"},
	{"Ꜹ", "AV"},
	{"ꜹ", "av"},
	{"Ꜻ", "AY"},
	{"ꜻ", "ay"},
	{"Ꜽ", "OO"},
	{"ꜽ", "oo"},
}

// Defaults returns a fresh copy of the built-in rule set, safe to extend
// with file overrides without touching the package tables
func Defaults() *Set {
	required := make(map[string][]string, len(requiredFields))
	for entryType, fields := range requiredFields {
		required[entryType] = append([]string(nil), fields...)
	}

	return &Set{
		Required:      required,
		Substitutions: append([]Pair(nil), substitutions...),
		Ligatures:     append([]Pair(nil), ligatures...),
	}
}
