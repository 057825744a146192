package monitoring

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kg-ensemble/internal/model"
	"github.com/sells-group/kg-ensemble/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestCollector_Collect(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	complete, err := st.CreateRun(ctx, "a.yaml")
	require.NoError(t, err)
	require.NoError(t, st.CompleteRun(ctx, complete.ID, &model.RunSummary{Documents: 2}))

	failed, err := st.CreateRun(ctx, "b.yaml")
	require.NoError(t, err)
	require.NoError(t, st.FailRun(ctx, failed.ID, eris.New("boom")))

	_, err = st.CreateRun(ctx, "c.yaml")
	require.NoError(t, err)

	require.NoError(t, st.SaveResult(ctx, complete.ID, &model.DocumentResult{
		DocID: "doc-1",
		Entities: []model.ConsolidatedEntity{
			{Mentions: []string{"Paris"}, Type: "location", Support: 1},
			{Mentions: []string{"France"}, Type: "location", Support: 1},
		},
		Triples: []model.ConsolidatedTriple{
			{Head: 0, Relation: "capital of", Tail: 1, Support: 2},
		},
	}))
	require.NoError(t, st.SaveResult(ctx, complete.ID, &model.DocumentResult{DocID: "doc-2"}))

	snap, err := NewCollector(st).Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.RunsTotal)
	assert.Equal(t, 1, snap.RunsComplete)
	assert.Equal(t, 1, snap.RunsFailed)
	assert.Equal(t, 1, snap.RunsActive)
	assert.Equal(t, 2, snap.Documents)
	assert.Equal(t, 2, snap.Entities)
	assert.Equal(t, 1, snap.Triples)
	assert.False(t, snap.CollectedAt.IsZero())
}

func TestCollector_EmptyStore(t *testing.T) {
	snap, err := NewCollector(newTestStore(t)).Collect(context.Background())
	require.NoError(t, err)

	assert.Zero(t, snap.RunsTotal)
	assert.Zero(t, snap.Documents)
}
