package model

import "time"

// RunStatus tracks a consolidation run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSummary aggregates a corpus run: how many extractor files fed it,
// how many documents came out, and the combined per-document diagnostics.
type RunSummary struct {
	Extractors   int         `json:"extractors"`
	SkippedFiles int         `json:"skipped_files"`
	Documents    int         `json:"documents"`
	Entities     int         `json:"entities"`
	Triples      int         `json:"triples"`
	Diagnostics  Diagnostics `json:"diagnostics"`
}

// Run records one corpus-level consolidation invocation.
type Run struct {
	ID        string      `json:"id"`
	Manifest  string      `json:"manifest"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
