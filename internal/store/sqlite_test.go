package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kg-ensemble/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "extractors.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning))

	summary := &model.RunSummary{
		Extractors: 3,
		Documents:  10,
		Entities:   42,
		Triples:    17,
		Diagnostics: model.Diagnostics{
			Extractors:        3,
			UnresolvedTriples: 2,
		},
	}
	require.NoError(t, s.CompleteRun(ctx, run.ID, summary))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, "extractors.yaml", got.Manifest)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 10, got.Summary.Documents)
	assert.Equal(t, 2, got.Summary.Diagnostics.UnresolvedTriples)
}

func TestSQLiteStore_FailRun(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "extractors.yaml")
	require.NoError(t, err)

	require.NoError(t, s.FailRun(ctx, run.ID, eris.New("corpus unreadable")))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Contains(t, got.Error, "corpus unreadable")
}

func TestSQLiteStore_UpdateMissingRun(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	err := s.UpdateRunStatus(ctx, "nonexistent", model.RunStatusRunning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = s.CompleteRun(ctx, "nonexistent", &model.RunSummary{})
	require.Error(t, err)
}

func TestSQLiteStore_ListRuns_FilterAndLimit(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx, "a.yaml")
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "b.yaml")
	require.NoError(t, err)

	require.NoError(t, s.CompleteRun(ctx, a.ID, &model.RunSummary{}))

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStore_SaveResult_UpsertByDocID(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run1, err := s.CreateRun(ctx, "a.yaml")
	require.NoError(t, err)
	run2, err := s.CreateRun(ctx, "b.yaml")
	require.NoError(t, err)

	first := &model.DocumentResult{
		DocID: "doc-1",
		Title: "First Pass",
		Entities: []model.ConsolidatedEntity{
			{Mentions: []string{"Paris"}, Type: "location", Support: 1},
		},
	}
	require.NoError(t, s.SaveResult(ctx, run1.ID, first))

	second := &model.DocumentResult{
		DocID: "doc-1",
		Title: "Second Pass",
		Entities: []model.ConsolidatedEntity{
			{Mentions: []string{"Paris"}, Type: "location", Support: 2},
			{Mentions: []string{"France"}, Type: "location", Support: 2},
		},
	}
	require.NoError(t, s.SaveResult(ctx, run2.ID, second))

	got, err := s.GetResult(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Second Pass", got.Title)
	assert.Len(t, got.Entities, 2)

	all, err := s.ListResults(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStore_GetResult_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	got, err := s.GetResult(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_ListResults_SortedByDocID(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "a.yaml")
	require.NoError(t, err)

	for _, docID := range []string{"doc-b", "doc-a", "doc-c"} {
		require.NoError(t, s.SaveResult(ctx, run.ID, &model.DocumentResult{DocID: docID}))
	}

	results, err := s.ListResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "doc-a", results[0].DocID)
	assert.Equal(t, "doc-b", results[1].DocID)
	assert.Equal(t, "doc-c", results[2].DocID)
}
