package database

import (
	"fmt"

	"github.com/pmlr/bibcheck/app/check"
)

// RunRepositoryImpl handles database operations for run history
type RunRepositoryImpl struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepositoryImpl {
	return &RunRepositoryImpl{db: db}
}

// RecordRun inserts one run summary plus its diagnostics and returns the run ID
func (r *RunRepositoryImpl) RecordRun(run Run, diags []check.Diagnostic) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (input_file, entry_count, diagnostic_count, renamed_id_count, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`, run.InputFile, run.EntryCount, run.DiagnosticCount, run.RenamedIDCount, run.DurationMs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, diag := range diags {
		_, err := tx.Exec(`
			INSERT INTO diagnostics (run_id, entry_id, field, kind, message)
			VALUES (?, ?, ?, ?, ?)
		`, runID, diag.EntryID, diag.Field, string(diag.Kind), diag.Message)
		if err != nil {
			return 0, fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// GetRecentRuns returns the most recent runs, newest first
func (r *RunRepositoryImpl) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, input_file, entry_count, diagnostic_count, renamed_id_count, duration_ms, created_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.InputFile, &run.EntryCount,
			&run.DiagnosticCount, &run.RenamedIDCount, &run.DurationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRunCount returns the total number of recorded runs
func (r *RunRepositoryImpl) GetRunCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// GetDiagnostics returns the diagnostics recorded for one run
func (r *RunRepositoryImpl) GetDiagnostics(runID int64) ([]RunDiagnostic, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, entry_id, field, kind, message
		FROM diagnostics
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []RunDiagnostic
	for rows.Next() {
		var diag RunDiagnostic
		if err := rows.Scan(&diag.ID, &diag.RunID, &diag.EntryID,
			&diag.Field, &diag.Kind, &diag.Message); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		diags = append(diags, diag)
	}

	return diags, rows.Err()
}
