package cfg

type Cfg struct {
	// File mode
	InputFile  string
	OutputFile string

	// Rules and behavior
	RulesFile string
	Strict    bool

	// Run history
	HistoryDB string

	// Serve mode
	Serve        bool
	Port         string
	APIAccessKey string

	// Application metadata
	Debug   bool
	Version string
}
