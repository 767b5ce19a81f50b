package database

import (
	"github.com/pmlr/bibcheck/app/check"
)

// RunRepository is the persistence surface for run history. A nil
// repository means history recording is disabled for the invocation.
type RunRepository interface {
	RecordRun(run Run, diags []check.Diagnostic) (int64, error)
	GetRecentRuns(limit int) ([]Run, error)
	GetRunCount() (int, error)
	GetDiagnostics(runID int64) ([]RunDiagnostic, error)
}

var _ RunRepository = (*RunRepositoryImpl)(nil)
