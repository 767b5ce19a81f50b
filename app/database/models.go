package database

import (
	"time"
)

// Run represents one recorded validation run
type Run struct {
	ID              int64
	InputFile       string
	EntryCount      int
	DiagnosticCount int
	RenamedIDCount  int
	DurationMs      int64
	CreatedAt       time.Time
}

// RunDiagnostic represents one diagnostic recorded for a run
type RunDiagnostic struct {
	ID      int64
	RunID   int64
	EntryID string
	Field   string
	Kind    string
	Message string
}
