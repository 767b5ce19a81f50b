package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pmlr/bibcheck/app/cfg"
	"github.com/pmlr/bibcheck/app/database"
)

func NewHandler(runner RunnerInterface, runRepo database.RunRepository) *Handler {
	return &Handler{
		runner:  runner,
		runRepo: runRepo,
	}
}

// Check validates and fixes the BibTeX file in the request body. A parse
// failure is the only 400; validation problems come back as diagnostics
// alongside the fixed text, mirroring the CLI's collect-everything policy.
func (h *Handler) Check(c *gin.Context) {
	result, err := h.runner.Run(c.Request.Context(), c.Request.Body)
	if err != nil {
		slog.Error("Check failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := CheckResponse{
		Entries:     result.Entries,
		Diagnostics: make([]DiagnosticResponse, 0, len(result.Diagnostics)),
		Fixed:       result.Output,
	}
	for _, diag := range result.Diagnostics {
		response.Diagnostics = append(response.Diagnostics, DiagnosticResponse{
			Kind:    string(diag.Kind),
			EntryID: diag.EntryID,
			Field:   diag.Field,
			Message: diag.Message,
		})
	}
	if len(result.Renames) > 0 {
		response.RenamedIDs = make(map[string]string, len(result.Renames))
		for _, rename := range result.Renames {
			response.RenamedIDs[rename.From] = rename.To
		}
	}

	if h.runRepo != nil {
		run := database.Run{
			InputFile:       "http:" + c.ClientIP(),
			EntryCount:      result.Entries,
			DiagnosticCount: len(result.Diagnostics),
			RenamedIDCount:  len(result.Renames),
			DurationMs:      result.Duration.Milliseconds(),
		}
		if _, err := h.runRepo.RecordRun(run, result.Diagnostics); err != nil {
			slog.Error("Failed to record run", "error", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
	}

	if h.runRepo != nil {
		if runCount, err := h.runRepo.GetRunCount(); err == nil {
			health["runs"] = runCount
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.runRepo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Run history not configured",
			"message": "Start with --history-db to record runs",
		})
		return
	}

	runs, err := h.runRepo.GetRecentRuns(50)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_runs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		response = append(response, map[string]interface{}{
			"id":          run.ID,
			"input_file":  run.InputFile,
			"entries":     run.EntryCount,
			"diagnostics": run.DiagnosticCount,
			"renamed_ids": run.RenamedIDCount,
			"duration_ms": run.DurationMs,
			"created_at":  run.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"runs": response})
}
