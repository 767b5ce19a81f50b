package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pmlr/bibcheck/app/api"
	"github.com/pmlr/bibcheck/app/cfg"
	"github.com/pmlr/bibcheck/app/database"
	"github.com/pmlr/bibcheck/app/pipeline"
	"github.com/pmlr/bibcheck/app/report"
	"github.com/pmlr/bibcheck/app/rules"
)

func main() {
	// os.Exit skips deferred calls, so the work happens in run
	os.Exit(run())
}

func run() int {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return 0
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ruleSet, err := rules.NewLoader(appCfg.RulesFile).Load()
	if err != nil {
		log.Fatal("Failed to load rules: ", err)
	}

	var runRepo database.RunRepository
	if appCfg.HistoryDB != "" {
		db, err := database.NewConnection(appCfg.HistoryDB)
		if err != nil {
			log.Fatal("Failed to open history database: ", err)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			log.Fatal("Failed to run migrations: ", err)
		}
		log.Printf("History database ready (schema version %d, dirty: %t)", version, dirty)

		runRepo = database.NewRunRepository(db)
	}

	runner := pipeline.NewRunner(ruleSet, appCfg.Strict)

	if appCfg.Serve {
		runServer(runner, runRepo, appCfg)
		return 0
	}

	return runFile(runner, runRepo, appCfg)
}

// runFile processes one input file start to finish and returns the
// process exit code: non-zero when any diagnostic was emitted, so the
// tool is directly usable as a CI gate.
func runFile(runner *pipeline.Runner, runRepo database.RunRepository, appCfg *cfg.Cfg) int {
	log.Printf("Starting to process %s", appCfg.InputFile)

	input, err := os.Open(appCfg.InputFile)
	if err != nil {
		log.Fatal("Failed to open input file: ", err)
	}

	result, err := runner.Run(context.Background(), input)
	input.Close()
	if err != nil {
		// Parse failures are fatal: no output file is written
		log.Fatal("Run failed: ", err)
	}

	if runRepo != nil {
		run := database.Run{
			InputFile:       appCfg.InputFile,
			EntryCount:      result.Entries,
			DiagnosticCount: len(result.Diagnostics),
			RenamedIDCount:  len(result.Renames),
			DurationMs:      result.Duration.Milliseconds(),
		}
		if _, err := runRepo.RecordRun(run, result.Diagnostics); err != nil {
			log.Printf("Warning: Failed to record run history: %v", err)
		}
	}

	reporter := report.NewReporter(os.Stdout)
	problems := reporter.Run(result.Entries, result.Diagnostics)

	for _, rename := range result.Renames {
		fmt.Printf("Renamed entry ID: %s -> %s\n", rename.From, rename.To)
	}

	// An empty file has nothing worth writing; treat it like a failed run
	if result.Entries == 0 {
		log.Printf("No entries parsed, output file not written")
		return 1
	}

	if err := os.WriteFile(appCfg.OutputFile, []byte(result.Output), 0644); err != nil {
		log.Fatal("Failed to write output file: ", err)
	}
	log.Printf("Fixed BibTeX written to %s", appCfg.OutputFile)

	if problems > 0 {
		return 1
	}
	return 0
}

// runServer starts the HTTP validation service and blocks until shutdown
func runServer(runner *pipeline.Runner, runRepo database.RunRepository, appCfg *cfg.Cfg) {
	log.Println("Initializing HTTP server...")
	handler := api.NewHandler(runner, runRepo)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Check:         http://localhost:%s/check (POST)", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)
		log.Printf("  Run history:   http://localhost:%s/runs", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}
}
