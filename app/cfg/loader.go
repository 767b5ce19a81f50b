package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Rules and behavior
	RulesFile string `long:"rules" env:"RULES_FILE" description:"YAML file overriding the built-in validation and substitution rules"`
	Strict    bool   `long:"strict" env:"STRICT" description:"Abort on structural problems instead of continuing with partial checks"`

	// Run history
	HistoryDB string `long:"history-db" env:"HISTORY_DB" description:"SQLite database recording run history (optional)"`

	// Serve mode
	Serve        bool   `long:"serve" env:"SERVE" description:"Run the HTTP validation service instead of processing files"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the run history endpoint (optional)"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		Input  string `positional-arg-name:"INPUT" description:"Input BibTeX file"`
		Output string `positional-arg-name:"OUTPUT" description:"Output BibTeX file"`
	} `positional-args:"yes"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Positional arguments are only required in file mode
	if !raw.Serve && (raw.Args.Input == "" || raw.Args.Output == "") {
		return nil, fmt.Errorf("both INPUT and OUTPUT file arguments are required")
	}

	cfg := &Cfg{
		InputFile:    raw.Args.Input,
		OutputFile:   raw.Args.Output,
		RulesFile:    raw.RulesFile,
		Strict:       raw.Strict,
		HistoryDB:    raw.HistoryDB,
		Serve:        raw.Serve,
		Port:         raw.Port,
		APIAccessKey: raw.APIAccessKey,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
