package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kg-ensemble/internal/model"
	"github.com/sells-group/kg-ensemble/internal/store"
)

// MetricsSnapshot holds a point-in-time view of the consolidation corpus.
type MetricsSnapshot struct {
	RunsTotal    int `json:"runs_total"`
	RunsComplete int `json:"runs_complete"`
	RunsFailed   int `json:"runs_failed"`
	RunsActive   int `json:"runs_active"`

	Documents int `json:"documents"`
	Entities  int `json:"entities"`
	Triples   int `json:"triples"`

	CollectedAt time.Time `json:"collected_at"`
}

// Collector gathers metrics from the store.
type Collector struct {
	store store.Store
}

// NewCollector creates a metrics collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// Collect gathers a snapshot of run history and result totals.
func (c *Collector) Collect(ctx context.Context) (*MetricsSnapshot, error) {
	snap := &MetricsSnapshot{CollectedAt: time.Now().UTC()}

	runs, err := c.store.ListRuns(ctx, store.RunFilter{Limit: 10000})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list runs")
	}
	snap.RunsTotal = len(runs)
	for _, r := range runs {
		switch r.Status {
		case model.RunStatusComplete:
			snap.RunsComplete++
		case model.RunStatusFailed:
			snap.RunsFailed++
		default:
			snap.RunsActive++
		}
	}

	results, err := c.store.ListResults(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: list results")
	}
	snap.Documents = len(results)
	for _, r := range results {
		snap.Entities += len(r.Entities)
		snap.Triples += len(r.Triples)
	}

	return snap, nil
}
