package snapshot_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/intel-watcher/internal/domain"
	"github.com/jonesrussell/north-cloud/intel-watcher/internal/snapshot"
)

func testRecords(ids ...string) []domain.NormalizedIntelRecord {
	records := make([]domain.NormalizedIntelRecord, 0, len(ids))
	for _, id := range ids {
		records = append(records, domain.NormalizedIntelRecord{
			ID:             id,
			Title:          "title " + id,
			Source:         "src",
			Classification: domain.ClassificationInternal,
			RelevanceScore: 50,
			Priority:       domain.PriorityMedium,
			Tags:           []string{"tag"},
			CollectedAt:    time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC),
		})
	}
	return records
}

func TestFileStore_GetMissingKeyReturnsNotFound(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())

	_, err := store.Get(context.Background(), "intel/normalized/agent", "2025-01-10")
	require.ErrorIs(t, err, snapshot.ErrNotFound)
}

func TestFileStore_PutOverwrites(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "ns", "key", []byte("first")))
	require.NoError(t, store.Put(ctx, "ns", "key", []byte("second")))

	data, err := store.Get(ctx, "ns", "key")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSnapshots_LoadMissingDayIsEmptyNotError(t *testing.T) {
	snaps := snapshot.New(snapshot.NewFileStore(t.TempDir()))

	records, err := snaps.Load(context.Background(), "licensing-watch", "2025-01-10")
	require.NoError(t, err, "nothing collected yet is not an error")
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSnapshots_PersistLoadRoundTrip(t *testing.T) {
	snaps := snapshot.New(snapshot.NewFileStore(t.TempDir()))
	ctx := context.Background()
	records := testRecords("a", "b")

	require.NoError(t, snaps.PersistNormalized(ctx, "licensing-watch", "2025-01-10", records))

	loaded, err := snaps.Load(ctx, "licensing-watch", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestSnapshots_RepersistReplacesDay(t *testing.T) {
	snaps := snapshot.New(snapshot.NewFileStore(t.TempDir()))
	ctx := context.Background()

	require.NoError(t, snaps.PersistNormalized(ctx, "a", "2025-01-10", testRecords("one")))
	require.NoError(t, snaps.PersistNormalized(ctx, "a", "2025-01-10", testRecords("one", "two")))

	loaded, err := snaps.Load(ctx, "a", "2025-01-10")
	require.NoError(t, err)
	require.Len(t, loaded, 2, "second persist overwrites the day, it does not append")
}

func TestSnapshots_AgentsAndDaysDoNotCollide(t *testing.T) {
	snaps := snapshot.New(snapshot.NewFileStore(t.TempDir()))
	ctx := context.Background()

	require.NoError(t, snaps.PersistNormalized(ctx, "agent-a", "2025-01-10", testRecords("a")))
	require.NoError(t, snaps.PersistNormalized(ctx, "agent-b", "2025-01-10", testRecords("b1", "b2")))
	require.NoError(t, snaps.PersistNormalized(ctx, "agent-a", "2025-01-11", testRecords("a", "b", "c")))

	dayOne, err := snaps.Load(ctx, "agent-a", "2025-01-10")
	require.NoError(t, err)
	assert.Len(t, dayOne, 1)

	other, err := snaps.Load(ctx, "agent-b", "2025-01-10")
	require.NoError(t, err)
	assert.Len(t, other, 2)

	dayTwo, err := snaps.Load(ctx, "agent-a", "2025-01-11")
	require.NoError(t, err)
	assert.Len(t, dayTwo, 3)
}

func TestSnapshots_ReportRoundTrip(t *testing.T) {
	snaps := snapshot.New(snapshot.NewFileStore(t.TempDir()))
	ctx := context.Background()

	report := &domain.DashboardReport{
		DateStamp:   "2025-01-10",
		GeneratedAt: time.Date(2025, 1, 10, 7, 0, 0, 0, time.UTC),
		Agents: []domain.AgentDashboardSummary{
			domain.EmptyAgentSummary("licensing-watch", "2025-01-10"),
		},
		Totals: domain.ReportTotals{Records: 0, Alerts: 0},
	}

	require.NoError(t, snaps.PersistReport(ctx, report))

	loaded, err := snaps.LoadReport(ctx, "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
}

func TestSQLiteStore_PutGetAndNotFound(t *testing.T) {
	store, err := snapshot.NewSQLiteStore(filepath.Join(t.TempDir(), "intel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()

	_, err = store.Get(ctx, "ns", "missing")
	require.ErrorIs(t, err, snapshot.ErrNotFound)

	require.NoError(t, store.Put(ctx, "ns", "key", []byte("v1")))
	require.NoError(t, store.Put(ctx, "ns", "key", []byte("v2")))

	data, err := store.Get(ctx, "ns", "key")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}
