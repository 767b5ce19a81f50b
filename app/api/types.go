package api

import (
	"context"
	"io"

	"github.com/pmlr/bibcheck/app/database"
	"github.com/pmlr/bibcheck/app/pipeline"
)

type RunnerInterface interface {
	Run(ctx context.Context, input io.Reader) (*pipeline.Result, error)
}

var _ RunnerInterface = (*pipeline.Runner)(nil)

type Handler struct {
	runner  RunnerInterface
	runRepo database.RunRepository // nil when history recording is disabled
}

// CheckResponse is the JSON body returned by POST /check
type CheckResponse struct {
	Entries     int                  `json:"entries"`
	Diagnostics []DiagnosticResponse `json:"diagnostics"`
	RenamedIDs  map[string]string    `json:"renamed_ids,omitempty"`
	Fixed       string               `json:"fixed"`
}

// DiagnosticResponse is one diagnostic in a CheckResponse
type DiagnosticResponse struct {
	Kind    string `json:"kind"`
	EntryID string `json:"entry_id,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}
