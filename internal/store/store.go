// Package store persists consolidation runs and the doc-keyed results
// artifact. Results are the one shared resource of a parallel corpus run;
// writes are upserts keyed by document id.
package store

import (
	"context"

	"github.com/sells-group/kg-ensemble/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the consolidation pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, manifest string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	CompleteRun(ctx context.Context, runID string, summary *model.RunSummary) error
	FailRun(ctx context.Context, runID string, runErr error) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Results, keyed by document id. SaveResult upserts: a later run
	// overwrites the document's previous consolidation.
	SaveResult(ctx context.Context, runID string, result *model.DocumentResult) error
	GetResult(ctx context.Context, docID string) (*model.DocumentResult, error)
	ListResults(ctx context.Context) ([]model.DocumentResult, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
